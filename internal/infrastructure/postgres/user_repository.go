package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (id, telegram_id, full_name, stars_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.TelegramID,
		user.FullName,
		user.StarsCount,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByTelegramID retrieves a user by their messenger ID.
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	const query = `
		SELECT id, telegram_id, full_name, stars_count, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.FullName,
		&user.StarsCount,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CountVideos returns how many videos the user has uploaded.
func (r *UserRepository) CountVideos(ctx context.Context, telegramID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM videos WHERE uploader_id = $1`,
		telegramID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}

	return count, nil
}

// RefreshStarsCount recomputes the user's aggregated star total from
// their videos.
func (r *UserRepository) RefreshStarsCount(ctx context.Context, telegramID int64) error {
	const query = `
		UPDATE users
		SET stars_count = (SELECT coalesce(sum(stars), 0) FROM videos WHERE uploader_id = $1)
		WHERE telegram_id = $1
	`

	tag, err := r.db.Exec(ctx, query, telegramID)
	if err != nil {
		return fmt.Errorf("failed to refresh stars count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Compile-time verification that UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
