package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aditya-niranjan/smart-summarizer/errors"
	"github.com/aditya-niranjan/smart-summarizer/models"
)

const (
	upsertQuery = `
		INSERT INTO transcripts (video_id, url, title, source, text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			source = excluded.source,
			text = excluded.text,
			updated_at = excluded.updated_at`

	findQuery = `
		SELECT video_id, url, title, source, text, created_at, updated_at
		FROM transcripts WHERE video_id = ?`
)

type Repository struct {
	db     *sql.DB
	config DBConfig
}

func NewRepository(db *sql.DB, config DBConfig) (*Repository, error) {
	return &Repository{db: db, config: config}, nil
}

func (r *Repository) Save(ctx context.Context, transcript *models.Transcript) error {
	const op = "SQLiteRepository.Save"

	now := time.Now().UTC()
	if transcript.CreatedAt.IsZero() {
		transcript.CreatedAt = now
	}
	transcript.UpdatedAt = now

	for i := 0; i < r.config.MaxRetries; i++ { // Simple retry logic
		err := r.save(ctx, transcript)
		if err == nil {
			return nil
		}
		if !isLockError(err) {
			return errors.Internal(op, err, "Failed to save transcript")
		}
		time.Sleep(r.config.RetryDelay * time.Duration(i+1))
	}
	return errors.Internal(op, nil, "Failed after retries")
}

func (r *Repository) save(ctx context.Context, transcript *models.Transcript) error {
	_, err := r.db.ExecContext(ctx, upsertQuery,
		transcript.VideoID,
		transcript.URL,
		transcript.Title,
		transcript.Source,
		transcript.Text,
		transcript.CreatedAt,
		transcript.UpdatedAt,
	)
	return err
}

func (r *Repository) Find(ctx context.Context, videoID string) (*models.Transcript, error) {
	const op = "SQLiteRepository.Find"

	transcript := &models.Transcript{}

	err := r.db.QueryRowContext(ctx, findQuery, videoID).Scan(
		&transcript.VideoID,
		&transcript.URL,
		&transcript.Title,
		&transcript.Source,
		&transcript.Text,
		&transcript.CreatedAt,
		&transcript.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound(op, nil, "Transcript not found")
	}
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query transcript")
	}

	return transcript, nil
}

func isLockError(err error) bool {
	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "busy")
}
