package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// WordMatch pairs a candidate video with the number of distinct query
// words its slug contains.
type WordMatch struct {
	Video   *model.Video
	Matches int
}

// WordIndexRepository maintains the word->video inverted index derived
// from video slugs.
type WordIndexRepository interface {
	// ReplaceWords atomically replaces the full word association set for
	// a video: missing words are created, stale associations removed,
	// new ones added. Calling it again with the same word set is a no-op.
	// Words orphaned by the removal are retained.
	ReplaceWords(ctx context.Context, videoID uuid.UUID, words []string) error

	// FindByWords returns videos whose slug contains at least one of the
	// given words, ordered by descending distinct-match count, then by
	// descending publication time with never-published videos last.
	// offset/limit window the ranked ordering.
	FindByWords(ctx context.Context, words []string, offset, limit int) ([]WordMatch, error)

	// WordsForVideo returns the indexed words for a video.
	WordsForVideo(ctx context.Context, videoID uuid.UUID) ([]string, error)
}
