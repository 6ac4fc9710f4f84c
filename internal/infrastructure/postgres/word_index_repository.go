package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/vidshare/internal/domain/model"
	"github.com/hszk-dev/vidshare/internal/domain/repository"
)

// WordIndexRepository implements repository.WordIndexRepository using the
// slug_words / video_slug_words join tables.
type WordIndexRepository struct {
	db DBTX
}

// NewWordIndexRepository creates a new WordIndexRepository instance.
func NewWordIndexRepository(db DBTX) *WordIndexRepository {
	return &WordIndexRepository{db: db}
}

// ReplaceWords atomically replaces the video's word associations. Words
// are upserted first so the whole word set exists before associations
// are swapped; orphaned words left behind by the delete are retained.
func (r *WordIndexRepository) ReplaceWords(ctx context.Context, videoID uuid.UUID, words []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if words == nil {
		words = []string{}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO slug_words (id, word)
		SELECT gen_random_uuid(), w FROM unnest($1::text[]) AS w
		ON CONFLICT (word) DO NOTHING
	`, words)
	if err != nil {
		return fmt.Errorf("failed to upsert words: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM video_slug_words
		WHERE video_id = $1
		  AND word_id NOT IN (SELECT id FROM slug_words WHERE word = ANY($2))
	`, videoID, words)
	if err != nil {
		return fmt.Errorf("failed to remove stale word associations: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO video_slug_words (video_id, word_id)
		SELECT $1, id FROM slug_words WHERE word = ANY($2)
		ON CONFLICT DO NOTHING
	`, videoID, words)
	if err != nil {
		return fmt.Errorf("failed to add word associations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit word index transaction: %w", err)
	}

	return nil
}

// FindByWords returns candidate videos ranked by descending distinct-match
// count, then by publication recency with never-published videos last.
func (r *WordIndexRepository) FindByWords(ctx context.Context, words []string, offset, limit int) ([]repository.WordMatch, error) {
	query := fmt.Sprintf(`
		SELECT %s, count(DISTINCT w.word) AS matches
		FROM videos v
		JOIN video_slug_words vw ON vw.video_id = v.id
		JOIN slug_words w ON w.id = vw.word_id
		WHERE w.word = ANY($1)
		GROUP BY v.id
		ORDER BY matches DESC, v.published_at DESC NULLS LAST, v.id
		OFFSET $2 LIMIT $3
	`, prefixedVideoColumns("v"))

	rows, err := r.db.Query(ctx, query, words, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query word matches: %w", err)
	}
	defer rows.Close()

	var results []repository.WordMatch
	for rows.Next() {
		match, err := scanWordMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan word match: %w", err)
		}
		results = append(results, match)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating word matches: %w", err)
	}

	return results, nil
}

// WordsForVideo returns the indexed words for a video.
func (r *WordIndexRepository) WordsForVideo(ctx context.Context, videoID uuid.UUID) ([]string, error) {
	const query = `
		SELECT w.word
		FROM slug_words w
		JOIN video_slug_words vw ON vw.word_id = w.id
		WHERE vw.video_id = $1
		ORDER BY w.word
	`

	rows, err := r.db.Query(ctx, query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query video words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating words: %w", err)
	}

	return words, nil
}

// scanWordMatch scans a video row with a trailing match count.
func scanWordMatch(rows pgx.Rows) (repository.WordMatch, error) {
	var (
		video       model.Video
		title       *string
		description *string
		tempLink    *string
		matches     int
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
		&matches,
	)
	if err != nil {
		return repository.WordMatch{}, err
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

	return repository.WordMatch{Video: &video, Matches: matches}, nil
}

// prefixedVideoColumns qualifies the shared video column list with a
// table alias for use in joins.
func prefixedVideoColumns(alias string) string {
	return fmt.Sprintf(
		`%[1]s.id, %[1]s.media_id, %[1]s.uploader_id, %[1]s.title, %[1]s.slug, %[1]s.description, %[1]s.temp_link, %[1]s.is_published, %[1]s.view_count, %[1]s.stars, %[1]s.created_at, %[1]s.published_at`,
		alias,
	)
}

// Compile-time verification that WordIndexRepository implements repository.WordIndexRepository.
var _ repository.WordIndexRepository = (*WordIndexRepository)(nil)
