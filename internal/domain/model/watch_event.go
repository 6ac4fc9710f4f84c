package model

import (
	"time"

	"github.com/google/uuid"
)

// WatchEvent records that a user watched a video.
type WatchEvent struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	UserID    int64
	WatchedAt time.Time
}

// NewWatchEvent creates a watch-history entry.
func NewWatchEvent(videoID uuid.UUID, userID int64) (*WatchEvent, error) {
	if userID <= 0 {
		return nil, ErrInvalidTelegramID
	}

	return &WatchEvent{
		ID:        uuid.New(),
		VideoID:   videoID,
		UserID:    userID,
		WatchedAt: time.Now(),
	}, nil
}
