package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// TagRepository maintains the explicit tag registry and the tag<->video
// association set.
type TagRepository interface {
	// Create registers a new tag.
	// Returns ErrDuplicateTag if the tag string already exists.
	Create(ctx context.Context, tag *model.Tag) error

	// List returns all tags in alphabetical order.
	List(ctx context.Context) ([]*model.Tag, error)

	// GetByNames resolves tag strings to tag entities. Unknown names are
	// simply absent from the result.
	GetByNames(ctx context.Context, names []string) ([]*model.Tag, error)

	// ReplaceVideoTags atomically replaces the full tag set of a video.
	ReplaceVideoTags(ctx context.Context, videoID uuid.UUID, tagIDs []uuid.UUID) error

	// FindVideosByAnyTag returns distinct videos carrying at least one of
	// the given tags, ordered by descending publication time with
	// never-published videos last. This is the broad first pass; callers
	// needing superset semantics must filter via TagsForVideos.
	FindVideosByAnyTag(ctx context.Context, tags []string) ([]*model.Video, error)

	// TagsForVideos returns the tag names attached to each of the given
	// videos.
	TagsForVideos(ctx context.Context, videoIDs []uuid.UUID) (map[uuid.UUID][]string, error)
}
