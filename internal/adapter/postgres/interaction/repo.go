// Package interaction implements the append-only Interaction log using PostgreSQL.
package interaction

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Repo provides interaction persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new interaction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO interactions (extract_id, type, duration_ms, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

const listByExtractSQL = `
SELECT id, extract_id, type, duration_ms, created_at
FROM interactions
WHERE extract_id = $1
ORDER BY created_at ASC, id ASC`

// Create appends one interaction. An unknown extract yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, in domain.Interaction) (domain.Interaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if err := querier.QueryRow(ctx, createSQL,
		in.ExtractID, string(in.Type), in.DurationMs, in.CreatedAt,
	).Scan(&in.ID); err != nil {
		return domain.Interaction{}, postgres.MapError(err, "extract", in.ExtractID)
	}

	return in, nil
}

// ListByExtract returns the interaction log of one extract, oldest first.
func (r *Repo) ListByExtract(ctx context.Context, extractID int64) ([]domain.Interaction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByExtractSQL, extractID)
	if err != nil {
		return nil, fmt.Errorf("list interactions for extract %d: %w", extractID, err)
	}
	defer rows.Close()

	interactions, err := scanInteractions(rows)
	if err != nil {
		return nil, fmt.Errorf("list interactions for extract %d: %w", extractID, err)
	}

	return interactions, nil
}

func scanInteractions(rows pgx.Rows) ([]domain.Interaction, error) {
	var out []domain.Interaction
	for rows.Next() {
		var (
			i          domain.Interaction
			typ        string
			durationMs *int32
		)
		if err := rows.Scan(&i.ID, &i.ExtractID, &typ, &durationMs, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.Type = domain.InteractionType(typ)
		if durationMs != nil {
			v := int(*durationMs)
			i.DurationMs = &v
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if out == nil {
		out = []domain.Interaction{}
	}

	return out, nil
}
