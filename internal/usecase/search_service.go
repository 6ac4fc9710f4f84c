package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
	"github.com/hszk-dev/vidshare/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidshare/internal/pagination"
	"github.com/hszk-dev/vidshare/internal/slug"
)

// ErrInvalidQuery is returned when a search request carries no usable
// words or tags.
var ErrInvalidQuery = errors.New("invalid search query")

// SearchResult pairs a video with how it matched. MatchedWords is zero
// for tag searches; Tags is empty for word searches.
type SearchResult struct {
	Video        *model.Video
	MatchedWords int
	Tags         []string
}

type SearchPage struct {
	Results    []SearchResult
	NextCursor string
}

// SearchService finds published videos either by free-text words
// matched against indexed slug words, or by an exact tag set where
// every requested tag must be present on the video.
type SearchService interface {
	SearchByWords(ctx context.Context, query, cursor string, pageSize int) (*SearchPage, error)
	SearchByTags(ctx context.Context, tags []string, cursor string, pageSize int) (*SearchPage, error)
}

type searchService struct {
	words repository.WordIndexRepository
	tags  repository.TagRepository
}

func NewSearchService(words repository.WordIndexRepository, tags repository.TagRepository) SearchService {
	return &searchService{words: words, tags: tags}
}

func (s *searchService) SearchByWords(ctx context.Context, query, cursor string, pageSize int) (*SearchPage, error) {
	// Normalizing the query through the slug rules guarantees the same
	// vocabulary on both sides of the index.
	queryWords := slug.Words(slug.Make(query))
	if len(queryWords) == 0 {
		return nil, ErrInvalidQuery
	}

	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, err
	}
	size := pagination.ClampPageSize(pageSize)

	matches, err := s.words.FindByWords(ctx, queryWords, cur.Offset, size+1)
	if err != nil {
		return nil, fmt.Errorf("find by words: %w", err)
	}
	metrics.SearchRequestsTotal.WithLabelValues(metrics.SearchModeWords).Inc()

	page := &SearchPage{Results: make([]SearchResult, 0, len(matches))}
	limited := matches
	if len(matches) > size {
		limited = matches[:size]
		page.NextCursor = pagination.Cursor{Offset: cur.Offset + size}.Encode()
	}
	for _, m := range limited {
		page.Results = append(page.Results, SearchResult{Video: m.Video, MatchedWords: m.Matches})
	}
	return page, nil
}

func (s *searchService) SearchByTags(ctx context.Context, tagNames []string, cursor string, pageSize int) (*SearchPage, error) {
	wanted := normalizeTags(tagNames)
	if len(wanted) == 0 {
		return nil, ErrInvalidQuery
	}

	cur, err := pagination.Decode(cursor)
	if err != nil {
		return nil, err
	}
	size := pagination.ClampPageSize(pageSize)

	candidates, err := s.tags.FindVideosByAnyTag(ctx, wanted)
	if err != nil {
		return nil, fmt.Errorf("find by tags: %w", err)
	}
	metrics.SearchRequestsTotal.WithLabelValues(metrics.SearchModeTags).Inc()

	if len(candidates) == 0 {
		return &SearchPage{Results: []SearchResult{}}, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, v := range candidates {
		ids[i] = v.ID
	}
	tagsByVideo, err := s.tags.TagsForVideos(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load video tags: %w", err)
	}

	// A candidate matched at least one tag; the result set keeps only
	// videos carrying every requested tag.
	results := make([]SearchResult, 0, len(candidates))
	for _, v := range candidates {
		have := tagsByVideo[v.ID]
		if hasAllTags(have, wanted) {
			results = append(results, SearchResult{Video: v, Tags: have})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return videoLess(results[j].Video, results[i].Video)
	})

	paged := pagination.Slice(results, cur, size)
	return &SearchPage{Results: paged.Items, NextCursor: paged.NextCursor}, nil
}

// videoLess orders by publication time ascending with never-published
// videos first, ties broken by id. Callers invert it for newest-first.
func videoLess(a, b *model.Video) bool {
	switch {
	case a.PublishedAt == nil && b.PublishedAt == nil:
		return a.ID.String() < b.ID.String()
	case a.PublishedAt == nil:
		return true
	case b.PublishedAt == nil:
		return false
	case a.PublishedAt.Equal(*b.PublishedAt):
		return a.ID.String() < b.ID.String()
	default:
		return a.PublishedAt.Before(*b.PublishedAt)
	}
}

func normalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func hasAllTags(have, wanted []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range wanted {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
