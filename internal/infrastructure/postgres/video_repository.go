package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// DBTX abstracts pgxpool.Pool, pgx.Tx and pgxmock for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

const videoColumns = `id, media_id, uploader_id, title, slug, description, temp_link, is_published, view_count, stars, created_at, published_at`

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a new video entity.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, media_id, uploader_id, title, slug, description, temp_link, is_published, view_count, stars, created_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.MediaID,
		video.UploaderID,
		nullString(video.Title),
		video.Slug,
		nullString(video.Description),
		nullString(video.TempLink),
		video.IsPublished,
		video.ViewCount,
		video.Stars,
		video.CreatedAt,
		video.PublishedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateVideo
		}
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetByID retrieves a video by its internal identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)
	return r.getOne(ctx, query, id)
}

// GetByMediaID retrieves a video by its external media identifier.
func (r *VideoRepository) GetByMediaID(ctx context.Context, mediaID string) (*model.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE media_id = $1`, videoColumns)
	return r.getOne(ctx, query, mediaID)
}

// GetBySlug retrieves a video by its unique slug.
func (r *VideoRepository) GetBySlug(ctx context.Context, slug string) (*model.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE slug = $1 AND slug <> ''`, videoColumns)
	return r.getOne(ctx, query, slug)
}

func (r *VideoRepository) getOne(ctx context.Context, query string, arg any) (*model.Video, error) {
	video, err := scanVideo(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// Update persists changes to an existing video entity.
func (r *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	const query = `
		UPDATE videos
		SET title = $2, slug = $3, description = $4, temp_link = $5, is_published = $6, published_at = $7
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		video.ID,
		nullString(video.Title),
		video.Slug,
		nullString(video.Description),
		nullString(video.TempLink),
		video.IsPublished,
		video.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Delete removes a video. Index and tag associations go with it via
// ON DELETE CASCADE.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// SlugExists reports whether any video other than excludeID uses the slug.
func (r *VideoRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM videos WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// ListPublished returns published videos ordered newest-first, optionally
// restricted to a set of uploaders.
func (r *VideoRepository) ListPublished(ctx context.Context, uploaderIDs []int64, offset, limit int) ([]*model.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE is_published
		  AND (cardinality($1::bigint[]) = 0 OR uploader_id = ANY($1))
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`, videoColumns)

	if uploaderIDs == nil {
		uploaderIDs = []int64{}
	}

	return r.list(ctx, query, uploaderIDs, offset, limit)
}

// ListByUploader returns all of one uploader's videos, published or not.
func (r *VideoRepository) ListByUploader(ctx context.Context, uploaderID int64, offset, limit int) ([]*model.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE uploader_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3
	`, videoColumns)

	return r.list(ctx, query, uploaderID, offset, limit)
}

// ListPage returns the next page of the catalog in primary-key order.
// Used by the renewal batcher's full sweep.
func (r *VideoRepository) ListPage(ctx context.Context, afterID uuid.UUID, limit int) ([]*model.Video, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM videos
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`, videoColumns)

	return r.list(ctx, query, afterID, limit)
}

func (r *VideoRepository) list(ctx context.Context, query string, args ...any) ([]*model.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// BulkUpdateTempLinks persists all staged link renewals in one statement.
func (r *VideoRepository) BulkUpdateTempLinks(ctx context.Context, updates []repository.TempLinkUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(updates))
	links := make([]string, len(updates))
	for i, u := range updates {
		ids[i] = u.VideoID
		links[i] = u.TempLink
	}

	const query = `
		UPDATE videos AS v
		SET temp_link = u.temp_link
		FROM (SELECT unnest($1::uuid[]) AS id, unnest($2::text[]) AS temp_link) AS u
		WHERE v.id = u.id
	`

	if _, err := r.db.Exec(ctx, query, ids, links); err != nil {
		return fmt.Errorf("failed to bulk update temp links: %w", err)
	}

	return nil
}

// IncrementViewCount adds one view to a video.
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `UPDATE videos SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// AddStar adds one star to a video and keeps the uploader's aggregated
// stars_count in step, in one transaction.
func (r *VideoRepository) AddStar(ctx context.Context, id uuid.UUID) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var (
		stars      int64
		uploaderID int64
	)
	err = tx.QueryRow(ctx,
		`UPDATE videos SET stars = stars + 1 WHERE id = $1 RETURNING stars, uploader_id`,
		id,
	).Scan(&stars, &uploaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrVideoNotFound
		}
		return 0, fmt.Errorf("failed to add star: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET stars_count = stars_count + 1 WHERE telegram_id = $1`,
		uploaderID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update uploader stars count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit star transaction: %w", err)
	}

	return stars, nil
}

// scanVideo scans a single row into a Video model.
func scanVideo(row pgx.Row) (*model.Video, error) {
	var (
		video       model.Video
		title       *string
		description *string
		tempLink    *string
	)

	err := row.Scan(
		&video.ID,
		&video.MediaID,
		&video.UploaderID,
		&title,
		&video.Slug,
		&description,
		&tempLink,
		&video.IsPublished,
		&video.ViewCount,
		&video.Stars,
		&video.CreatedAt,
		&video.PublishedAt,
	)
	if err != nil {
		return nil, err
	}

	if title != nil {
		video.Title = *title
	}
	if description != nil {
		video.Description = *description
	}
	if tempLink != nil {
		video.TempLink = *tempLink
	}

	return &video, nil
}

// nullString returns nil for empty strings, otherwise returns a pointer to the string.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
