package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidshare/internal/pagination"
)

// cachedSearchService decorates a SearchService with a cache-aside
// layer. Concurrent identical queries are collapsed through
// singleflight so a cold key triggers at most one database round trip.
type cachedSearchService struct {
	inner  SearchService
	cache  repository.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func NewCachedSearchService(inner SearchService, cache repository.Cache, ttl time.Duration, logger *slog.Logger) SearchService {
	return &cachedSearchService{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *cachedSearchService) SearchByWords(ctx context.Context, query, cursor string, pageSize int) (*SearchPage, error) {
	size := pagination.ClampPageSize(pageSize)
	key := wordSearchKey(query, cursor, size)
	return s.lookup(ctx, key, func() (*SearchPage, error) {
		return s.inner.SearchByWords(ctx, query, cursor, size)
	})
}

func (s *cachedSearchService) SearchByTags(ctx context.Context, tags []string, cursor string, pageSize int) (*SearchPage, error) {
	size := pagination.ClampPageSize(pageSize)
	key := tagSearchKey(normalizeTags(tags), cursor, size)
	return s.lookup(ctx, key, func() (*SearchPage, error) {
		return s.inner.SearchByTags(ctx, tags, cursor, size)
	})
}

func (s *cachedSearchService) lookup(ctx context.Context, key string, fetch func() (*SearchPage, error)) (*SearchPage, error) {
	result, err, shared := s.group.Do(key, func() (any, error) {
		if data, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("search cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		} else if data != nil {
			var page SearchPage
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
			s.logger.Warn("search cache entry corrupt", slog.String("key", key))
		}

		page, err := fetch()
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				s.logger.Warn("search cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		}
		return page, nil
	})
	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}
	if err != nil {
		return nil, err
	}
	return result.(*SearchPage), nil
}
