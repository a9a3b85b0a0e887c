// Package source implements the Source repository using PostgreSQL.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Repo provides source persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new source repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

var sourceColumns = []string{
	"id", "title", "author", "file_path", "file_hash",
	"processing_status", "extract_count", "last_error", "created_at", "updated_at",
}

const sourceReturning = `
RETURNING id, title, author, file_path, file_hash,
          processing_status, extract_count, last_error, created_at, updated_at`

const insertIfAbsentSQL = `
INSERT INTO sources (title, author, file_path, file_hash)
VALUES ($1, $2, $3, $4)
ON CONFLICT (file_path) DO NOTHING` + sourceReturning

const getByIDSQL = `
SELECT id, title, author, file_path, file_hash,
       processing_status, extract_count, last_error, created_at, updated_at
FROM sources
WHERE id = $1`

// The status guard is what serializes concurrent runs across processes.
const beginProcessingSQL = `
UPDATE sources
SET processing_status = 'processing', last_error = NULL
WHERE id = $1 AND processing_status <> 'processing'` + sourceReturning

const existsSQL = `SELECT EXISTS(SELECT 1 FROM sources WHERE id = $1)`

const markDoneSQL = `
UPDATE sources
SET processing_status = 'done', extract_count = extract_count + $2, last_error = NULL
WHERE id = $1` + sourceReturning

const markErrorSQL = `
UPDATE sources
SET processing_status = 'error', last_error = $2
WHERE id = $1`

const resetStuckSQL = `
UPDATE sources
SET processing_status = 'pending'
WHERE processing_status = 'processing' AND updated_at < $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertIfAbsent registers a source unless one with the same file path exists.
// The bool result reports whether a row was inserted.
func (r *Repo) InsertIfAbsent(ctx context.Context, in domain.NewSource) (domain.Source, bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, insertIfAbsentSQL, in.Title, in.Author, in.FilePath, in.FileHash)
	s, err := scanSource(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Source{}, false, nil
	}
	if err != nil {
		return domain.Source{}, false, fmt.Errorf("insert source %s: %w", in.FilePath, postgres.MapError(err, "source", 0))
	}

	return s, true, nil
}

// BeginProcessing moves a source to processing unless a run already holds it.
// Returns domain.ErrNotFound for an unknown id and domain.ErrExtractionInProgress
// when the source is already processing.
func (r *Repo) BeginProcessing(ctx context.Context, id int64) (domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSource(querier.QueryRow(ctx, beginProcessingSQL, id))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Source{}, postgres.MapError(err, "source", id)
	}

	var exists bool
	if err := querier.QueryRow(ctx, existsSQL, id).Scan(&exists); err != nil {
		return domain.Source{}, postgres.MapError(err, "source", id)
	}
	if !exists {
		return domain.Source{}, fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
	}

	return domain.Source{}, fmt.Errorf("source %d: %w", id, domain.ErrExtractionInProgress)
}

// MarkDone finishes a run: status done, extract_count += inserted, last_error cleared.
func (r *Repo) MarkDone(ctx context.Context, id int64, inserted int) (domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSource(querier.QueryRow(ctx, markDoneSQL, id, inserted))
	if err != nil {
		return domain.Source{}, postgres.MapError(err, "source", id)
	}

	return s, nil
}

// MarkError records a failed run. extract_count is left unchanged.
func (r *Repo) MarkError(ctx context.Context, id int64, message string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markErrorSQL, id, message)
	if err != nil {
		return postgres.MapError(err, "source", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ResetStuck flips sources left in processing since before olderThan back to pending.
func (r *Repo) ResetStuck(ctx context.Context, olderThan time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, resetStuckSQL, olderThan)
	if err != nil {
		return 0, fmt.Errorf("reset stuck sources: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a source by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSource(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.Source{}, postgres.MapError(err, "source", id)
	}

	return s, nil
}

// List returns sources, newest first. When statuses is non-empty only sources
// in one of those states are returned.
func (r *Repo) List(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error) {
	query := postgres.Builder().
		Select(sourceColumns...).
		From("sources").
		OrderBy("created_at DESC", "id DESC")

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query = query.Where(squirrel.Eq{"processing_status": values})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sources query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	sources, err := scanSources(rows)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	return sources, nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func scanSource(row pgx.Row) (domain.Source, error) {
	var (
		s            domain.Source
		status       string
		extractCount int32
	)

	if err := row.Scan(&s.ID, &s.Title, &s.Author, &s.FilePath, &s.FileHash,
		&status, &extractCount, &s.LastError, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return domain.Source{}, err
	}

	s.ProcessingStatus = domain.ProcessingStatus(status)
	s.ExtractCount = int(extractCount)

	return s, nil
}

func scanSources(rows pgx.Rows) ([]domain.Source, error) {
	var sources []domain.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if sources == nil {
		sources = []domain.Source{}
	}

	return sources, nil
}
