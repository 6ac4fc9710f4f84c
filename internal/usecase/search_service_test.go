package usecase

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

func publishedVideo(t *testing.T, mediaID string, publishedAt time.Time) *model.Video {
	t.Helper()
	video := testVideo(t, mediaID, "")
	video.PublishedAt = &publishedAt
	video.IsPublished = true
	return video
}

func TestSearchService_SearchByWords(t *testing.T) {
	now := time.Now()
	best := publishedVideo(t, "media-best", now)
	second := publishedVideo(t, "media-second", now)

	var gotWords []string
	words := &mockWordIndexRepository{
		FindByWordsFunc: func(ctx context.Context, ws []string, offset, limit int) ([]repository.WordMatch, error) {
			gotWords = ws
			return []repository.WordMatch{
				{Video: best, Matches: 2},
				{Video: second, Matches: 1},
			}, nil
		},
	}

	svc := NewSearchService(words, &mockTagRepository{})
	page, err := svc.SearchByWords(context.Background(), "Alpha, BETA!", "", 10)
	if err != nil {
		t.Fatalf("SearchByWords() error = %v", err)
	}

	wantWords := []string{"alpha", "beta"}
	if len(gotWords) != len(wantWords) {
		t.Fatalf("queried words = %v, want %v", gotWords, wantWords)
	}
	for i := range wantWords {
		if gotWords[i] != wantWords[i] {
			t.Errorf("queried words[%d] = %q, want %q", i, gotWords[i], wantWords[i])
		}
	}

	if len(page.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(page.Results))
	}
	if page.Results[0].Video.MediaID != "media-best" || page.Results[0].MatchedWords != 2 {
		t.Errorf("first result = %s (%d matches), want media-best (2)", page.Results[0].Video.MediaID, page.Results[0].MatchedWords)
	}
	if page.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty", page.NextCursor)
	}
}

// TestSearchService_SearchByWords_RankingOrder exercises ranking over
// three indexed slugs. Videos matching more query words come first;
// equal counts fall back to publication recency.
func TestSearchService_SearchByWords_RankingOrder(t *testing.T) {
	now := time.Now()
	entries := []struct {
		video *model.Video
		words map[string]bool
	}{
		{publishedVideo(t, "media-alpha-beta", now), map[string]bool{"alpha": true, "beta": true}},
		{publishedVideo(t, "media-alpha-gamma", now.Add(time.Hour)), map[string]bool{"alpha": true, "gamma": true}},
		{publishedVideo(t, "media-alpha-beta-zeta", now.Add(-time.Hour)), map[string]bool{"alpha": true, "beta": true, "zeta": true}},
	}

	words := &mockWordIndexRepository{
		FindByWordsFunc: func(ctx context.Context, ws []string, offset, limit int) ([]repository.WordMatch, error) {
			var ranked []repository.WordMatch
			for _, e := range entries {
				matches := 0
				for _, w := range ws {
					if e.words[w] {
						matches++
					}
				}
				if matches > 0 {
					ranked = append(ranked, repository.WordMatch{Video: e.video, Matches: matches})
				}
			}
			sort.SliceStable(ranked, func(i, j int) bool {
				if ranked[i].Matches != ranked[j].Matches {
					return ranked[i].Matches > ranked[j].Matches
				}
				return ranked[i].Video.PublishedAt.After(*ranked[j].Video.PublishedAt)
			})
			if offset >= len(ranked) {
				return nil, nil
			}
			if end := offset + limit; end < len(ranked) {
				ranked = ranked[:end]
			}
			return ranked[offset:], nil
		},
	}

	svc := NewSearchService(words, &mockTagRepository{})
	page, err := svc.SearchByWords(context.Background(), "alpha beta", "", 10)
	if err != nil {
		t.Fatalf("SearchByWords() error = %v", err)
	}

	want := []struct {
		mediaID string
		matches int
	}{
		{"media-alpha-beta", 2},
		{"media-alpha-beta-zeta", 2},
		{"media-alpha-gamma", 1},
	}
	if len(page.Results) != len(want) {
		t.Fatalf("got %d results, want %d", len(page.Results), len(want))
	}
	for i, w := range want {
		got := page.Results[i]
		if got.Video.MediaID != w.mediaID || got.MatchedWords != w.matches {
			t.Errorf("results[%d] = %s (%d matches), want %s (%d)", i, got.Video.MediaID, got.MatchedWords, w.mediaID, w.matches)
		}
	}
}

func TestSearchService_SearchByWords_EmptyQuery(t *testing.T) {
	svc := NewSearchService(&mockWordIndexRepository{}, &mockTagRepository{})

	for _, query := range []string{"", "   ", "!!! ---"} {
		if _, err := svc.SearchByWords(context.Background(), query, "", 10); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("SearchByWords(%q) error = %v, want ErrInvalidQuery", query, err)
		}
	}
}

func TestSearchService_SearchByWords_Paginates(t *testing.T) {
	now := time.Now()
	matches := make([]repository.WordMatch, 0, 3)
	for _, id := range []string{"media-1", "media-2", "media-3"} {
		matches = append(matches, repository.WordMatch{Video: publishedVideo(t, id, now), Matches: 1})
	}

	words := &mockWordIndexRepository{
		FindByWordsFunc: func(ctx context.Context, ws []string, offset, limit int) ([]repository.WordMatch, error) {
			if offset >= len(matches) {
				return nil, nil
			}
			end := offset + limit
			if end > len(matches) {
				end = len(matches)
			}
			return matches[offset:end], nil
		},
	}

	svc := NewSearchService(words, &mockTagRepository{})

	first, err := svc.SearchByWords(context.Background(), "alpha", "", 2)
	if err != nil {
		t.Fatalf("SearchByWords() error = %v", err)
	}
	if len(first.Results) != 2 || first.NextCursor == "" {
		t.Fatalf("first page: %d results, cursor %q; want 2 results and a cursor", len(first.Results), first.NextCursor)
	}

	second, err := svc.SearchByWords(context.Background(), "alpha", first.NextCursor, 2)
	if err != nil {
		t.Fatalf("SearchByWords() second page error = %v", err)
	}
	if len(second.Results) != 1 || second.NextCursor != "" {
		t.Errorf("second page: %d results, cursor %q; want 1 result and no cursor", len(second.Results), second.NextCursor)
	}
	if second.Results[0].Video.MediaID != "media-3" {
		t.Errorf("second page starts at %s, want media-3", second.Results[0].Video.MediaID)
	}
}

func TestSearchService_SearchByTags_SupersetOnly(t *testing.T) {
	now := time.Now()
	both := publishedVideo(t, "media-both", now.Add(-time.Hour))
	musicOnly := publishedVideo(t, "media-music", now)
	extra := publishedVideo(t, "media-extra", now.Add(-2*time.Hour))

	tags := &mockTagRepository{
		FindVideosByAnyTagFunc: func(ctx context.Context, ts []string) ([]*model.Video, error) {
			return []*model.Video{both, musicOnly, extra}, nil
		},
		TagsForVideosFunc: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
			return map[uuid.UUID][]string{
				both.ID:      {"music", "live"},
				musicOnly.ID: {"music"},
				extra.ID:     {"music", "live", "jazz"},
			}, nil
		},
	}

	svc := NewSearchService(&mockWordIndexRepository{}, tags)
	page, err := svc.SearchByTags(context.Background(), []string{"music", "live"}, "", 10)
	if err != nil {
		t.Fatalf("SearchByTags() error = %v", err)
	}

	if len(page.Results) != 2 {
		t.Fatalf("got %d results, want 2 (superset matches only)", len(page.Results))
	}
	// Newest publication first.
	if page.Results[0].Video.MediaID != "media-both" {
		t.Errorf("first result = %s, want media-both", page.Results[0].Video.MediaID)
	}
	if page.Results[1].Video.MediaID != "media-extra" {
		t.Errorf("second result = %s, want media-extra", page.Results[1].Video.MediaID)
	}
}

func TestSearchService_SearchByTags_EmptyInput(t *testing.T) {
	svc := NewSearchService(&mockWordIndexRepository{}, &mockTagRepository{})

	for _, tags := range [][]string{nil, {}, {"", "  "}} {
		if _, err := svc.SearchByTags(context.Background(), tags, "", 10); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("SearchByTags(%v) error = %v, want ErrInvalidQuery", tags, err)
		}
	}
}

func TestSearchService_SearchByTags_NoCandidates(t *testing.T) {
	tags := &mockTagRepository{
		FindVideosByAnyTagFunc: func(ctx context.Context, ts []string) ([]*model.Video, error) {
			return nil, nil
		},
	}

	svc := NewSearchService(&mockWordIndexRepository{}, tags)
	page, err := svc.SearchByTags(context.Background(), []string{"unknown"}, "", 10)
	if err != nil {
		t.Fatalf("SearchByTags() error = %v", err)
	}
	if len(page.Results) != 0 || page.NextCursor != "" {
		t.Errorf("got %d results, cursor %q; want empty page", len(page.Results), page.NextCursor)
	}
}

func TestSearchService_InvalidCursor(t *testing.T) {
	svc := NewSearchService(&mockWordIndexRepository{}, &mockTagRepository{})

	if _, err := svc.SearchByWords(context.Background(), "alpha", "not-a-cursor", 10); err == nil {
		t.Error("SearchByWords() with bad cursor: expected error")
	}
}
