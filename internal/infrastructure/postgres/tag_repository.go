package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// TagRepository implements repository.TagRepository using PostgreSQL.
type TagRepository struct {
	db DBTX
}

// NewTagRepository creates a new TagRepository instance.
func NewTagRepository(db DBTX) *TagRepository {
	return &TagRepository{db: db}
}

// Create registers a new tag.
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tags (id, name) VALUES ($1, $2)`, tag.ID, tag.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicateTag
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}

	return nil
}

// List returns all tags alphabetically.
func (r *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// GetByNames resolves tag strings to tag entities. Unknown names are
// absent from the result.
func (r *TagRepository) GetByNames(ctx context.Context, names []string) ([]*model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM tags WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags by name: %w", err)
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// ReplaceVideoTags atomically replaces the full tag set of a video.
func (r *TagRepository) ReplaceVideoTags(ctx context.Context, videoID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if tagIDs == nil {
		tagIDs = []uuid.UUID{}
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM video_tags
		WHERE video_id = $1 AND tag_id <> ALL($2::uuid[])
	`, videoID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to remove stale tag associations: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO video_tags (video_id, tag_id)
		SELECT $1, t FROM unnest($2::uuid[]) AS t
		ON CONFLICT DO NOTHING
	`, videoID, tagIDs)
	if err != nil {
		return fmt.Errorf("failed to add tag associations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tag transaction: %w", err)
	}

	return nil
}

// FindVideosByAnyTag returns distinct videos carrying at least one of the
// given tags. Callers needing superset semantics filter afterwards.
func (r *TagRepository) FindVideosByAnyTag(ctx context.Context, tags []string) ([]*model.Video, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (v.id) %s
		FROM videos v
		JOIN video_tags vt ON vt.video_id = v.id
		JOIN tags t ON t.id = vt.tag_id
		WHERE t.name = ANY($1)
		ORDER BY v.id
	`, prefixedVideoColumns("v"))

	rows, err := r.db.Query(ctx, query, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos by tags: %w", err)
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

// TagsForVideos returns the tag names attached to each of the given videos.
func (r *TagRepository) TagsForVideos(ctx context.Context, videoIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	const query = `
		SELECT vt.video_id, t.name
		FROM video_tags vt
		JOIN tags t ON t.id = vt.tag_id
		WHERE vt.video_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, videoIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query video tags: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]string, len(videoIDs))
	for rows.Next() {
		var (
			videoID uuid.UUID
			name    string
		)
		if err := rows.Scan(&videoID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan video tag: %w", err)
		}
		result[videoID] = append(result[videoID], name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video tags: %w", err)
	}

	return result, nil
}

// Compile-time verification that TagRepository implements repository.TagRepository.
var _ repository.TagRepository = (*TagRepository)(nil)
