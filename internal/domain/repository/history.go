package repository

import (
	"context"
	"time"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// WatchEntry is one row of a user's history listing: the video together
// with the most recent time the user watched it.
type WatchEntry struct {
	Video     *model.Video
	WatchedAt time.Time
}

// HistoryRepository stores watch events.
type HistoryRepository interface {
	// Add appends a watch event.
	Add(ctx context.Context, event *model.WatchEvent) error

	// ListByUser returns the user's watched videos, most recent first,
	// each video appearing once with its latest watch time.
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*WatchEntry, error)
}
