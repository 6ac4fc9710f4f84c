package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

type TagService interface {
	Create(ctx context.Context, name string) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
}

type tagService struct {
	tags        repository.TagRepository
	cache       repository.Cache
	ttl         time.Duration
	invalidator *CacheInvalidator
	logger      *slog.Logger
}

func NewTagService(
	tags repository.TagRepository,
	cache repository.Cache,
	ttl time.Duration,
	invalidator *CacheInvalidator,
	logger *slog.Logger,
) TagService {
	return &tagService{tags: tags, cache: cache, ttl: ttl, invalidator: invalidator, logger: logger}
}

func (s *tagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := model.NewTag(name)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	if err := s.invalidator.OnTagMutated(ctx); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) List(ctx context.Context) ([]*model.Tag, error) {
	if data, err := s.cache.Get(ctx, tagListKey); err != nil {
		s.logger.Warn("tag cache read failed", slog.String("error", err.Error()))
	} else if data != nil {
		var tags []*model.Tag
		if err := json.Unmarshal(data, &tags); err == nil {
			return tags, nil
		}
	}

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	if data, err := json.Marshal(tags); err == nil {
		if err := s.cache.Set(ctx, tagListKey, data, s.ttl); err != nil {
			s.logger.Warn("tag cache write failed", slog.String("error", err.Error()))
		}
	}
	return tags, nil
}
