package repository

import (
	"context"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create persists a new user.
	// Returns ErrDuplicateUser if the telegram ID is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByTelegramID retrieves a user by their messenger ID.
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)

	// CountVideos returns how many videos the user has uploaded.
	CountVideos(ctx context.Context, telegramID int64) (int64, error)

	// RefreshStarsCount recomputes the user's aggregated star total from
	// their videos and persists it.
	RefreshStarsCount(ctx context.Context, telegramID int64) error
}
