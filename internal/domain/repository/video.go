package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// TempLinkUpdate stages a renewed temporary URL for one video. A slice
// of these is persisted in a single bulk write per renewal page.
type TempLinkUpdate struct {
	VideoID  uuid.UUID
	TempLink string
}

// VideoRepository defines the interface for video persistence operations.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type VideoRepository interface {
	// Create persists a new video entity.
	// Returns ErrDuplicateVideo if a video with the same media ID exists.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its internal identifier.
	// Returns nil and ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// GetByMediaID retrieves a video by its external media identifier.
	GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error)

	// GetBySlug retrieves a video by its unique slug.
	GetBySlug(ctx context.Context, slug string) (*model.Video, error)

	// Update persists changes to an existing video entity.
	Update(ctx context.Context, video *model.Video) error

	// Delete removes a video and its index associations.
	Delete(ctx context.Context, id uuid.UUID) error

	// SlugExists reports whether any video other than excludeID already
	// uses the given slug. Backs unique slug assignment.
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// ListPublished returns published videos ordered newest-first,
	// optionally restricted to a set of uploader IDs.
	ListPublished(ctx context.Context, uploaderIDs []int64, offset, limit int) ([]*model.Video, error)

	// ListByUploader returns all of one uploader's videos, published or
	// not, ordered newest-first.
	ListByUploader(ctx context.Context, uploaderID int64, offset, limit int) ([]*model.Video, error)

	// ListPage returns up to limit videos with IDs greater than afterID,
	// in primary-key order. Used by the renewal batcher to sweep the
	// whole catalog in stable fixed-size pages.
	ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*model.Video, error)

	// BulkUpdateTempLinks persists all staged link renewals for one page
	// in a single write.
	BulkUpdateTempLinks(ctx context.Context, updates []TempLinkUpdate) error

	// IncrementViewCount adds one view to a video.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// AddStar adds one star to a video and returns the new total.
	AddStar(ctx context.Context, id uuid.UUID) (int64, error)
}
