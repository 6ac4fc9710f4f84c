package postgres

import (
	"context"
	"fmt"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// HistoryRepository implements repository.HistoryRepository using PostgreSQL.
type HistoryRepository struct {
	db DBTX
}

// NewHistoryRepository creates a new HistoryRepository instance.
func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add appends a watch event.
func (r *HistoryRepository) Add(ctx context.Context, event *model.WatchEvent) error {
	const query = `
		INSERT INTO watch_history (id, video_id, user_id, watched_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, event.ID, event.VideoID, event.UserID, event.WatchedAt)
	if err != nil {
		return fmt.Errorf("failed to add watch event: %w", err)
	}

	return nil
}

// ListByUser returns the user's watched videos most-recent-first, each
// video once with its latest watch time.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*repository.WatchEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, h.watched_at
		FROM videos v
		JOIN (
			SELECT video_id, max(watched_at) AS watched_at
			FROM watch_history
			WHERE user_id = $1
			GROUP BY video_id
		) h ON h.video_id = v.id
		ORDER BY h.watched_at DESC
		OFFSET $2 LIMIT $3
	`, prefixedVideoColumns("v"))

	rows, err := r.db.Query(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query watch history: %w", err)
	}
	defer rows.Close()

	var entries []*repository.WatchEntry
	for rows.Next() {
		var (
			video       model.Video
			title       *string
			description *string
			tempLink    *string
			entry       repository.WatchEntry
		)

		err := rows.Scan(
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
			&entry.WatchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watch entry: %w", err)
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

		entry.Video = &video
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watch history: %w", err)
	}

	return entries, nil
}

// Compile-time verification that HistoryRepository implements repository.HistoryRepository.
var _ repository.HistoryRepository = (*HistoryRepository)(nil)
