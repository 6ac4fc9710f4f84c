package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// SubscriptionRepository implements repository.SubscriptionRepository using PostgreSQL.
type SubscriptionRepository struct {
	db DBTX
}

// NewSubscriptionRepository creates a new SubscriptionRepository instance.
func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create persists a follow edge.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	const query = `
		INSERT INTO subscriptions (from_user, to_user, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, sub.FromUser, sub.ToUser, sub.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateSubscription
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// Delete removes a follow edge.
func (r *SubscriptionRepository) Delete(ctx context.Context, fromUser, toUser int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE from_user = $1 AND to_user = $2`,
		fromUser, toUser,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// ListFrom returns all subscriptions originating from a user.
func (r *SubscriptionRepository) ListFrom(ctx context.Context, fromUser int64) ([]*model.Subscription, error) {
	const query = `
		SELECT from_user, to_user, created_at
		FROM subscriptions
		WHERE from_user = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, fromUser)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		var sub model.Subscription
		if err := rows.Scan(&sub.FromUser, &sub.ToUser, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// Compile-time verification that SubscriptionRepository implements repository.SubscriptionRepository.
var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
