package repository

import (
	"context"

	"github.com/hszk-dev/vidshare/internal/domain/model"
)

// SubscriptionRepository stores follow edges between users.
type SubscriptionRepository interface {
	// Create persists a follow edge.
	// Returns ErrDuplicateSubscription if the edge already exists.
	Create(ctx context.Context, sub *model.Subscription) error

	// Delete removes a follow edge.
	// Returns ErrSubscriptionNotFound if the edge does not exist.
	Delete(ctx context.Context, fromUser, toUser int64) error

	// ListFrom returns all subscriptions originating from a user.
	ListFrom(ctx context.Context, fromUser int64) ([]*model.Subscription, error)
}
