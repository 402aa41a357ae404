package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

// ThemeRepository defines the interface for the queue of themes waiting to be exported
type ThemeRepository interface {
	GetReadyToGenerate(ctx context.Context) (*domain.ThemeJob, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	UpdateArchivePath(ctx context.Context, id int, path string) error
}

// Schema creates the queue table when it does not exist yet
const Schema = `
	CREATE TABLE IF NOT EXISTS cursor_themes (
		id           SERIAL PRIMARY KEY,
		theme        TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'ReadyToGenerate',
		archive_path TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresThemeRepository implements ThemeRepository for PostgreSQL
type PostgresThemeRepository struct {
	db *sql.DB
}

// NewPostgresThemeRepository creates a new PostgreSQL theme repository
func NewPostgresThemeRepository(db *sql.DB) *PostgresThemeRepository {
	return &PostgresThemeRepository{db: db}
}

// EnsureSchema creates the cursor_themes table
func (r *PostgresThemeRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, Schema)
	return err
}

// GetReadyToGenerate retrieves the oldest theme waiting for generation, or nil when the queue is empty
func (r *PostgresThemeRepository) GetReadyToGenerate(ctx context.Context) (*domain.ThemeJob, error) {
	query := `
		SELECT id, theme, status
		FROM cursor_themes
		WHERE status = $1
		AND theme != ''
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	`

	var job domain.ThemeJob
	err := r.db.QueryRowContext(ctx, query, domain.ThemeStatusReadyToGenerate).Scan(
		&job.ID,
		&job.Theme,
		&job.Status,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateStatus updates the status of a theme job
func (r *PostgresThemeRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	query := `
		UPDATE cursor_themes
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

// UpdateArchivePath records where the exported bundle of a theme job was written
func (r *PostgresThemeRepository) UpdateArchivePath(ctx context.Context, id int, path string) error {
	query := `
		UPDATE cursor_themes
		SET archive_path = $1, updated_at = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, path, time.Now(), id)
	return err
}
