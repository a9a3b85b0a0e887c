// Package extract implements the Extract repository using PostgreSQL.
// The unique index on content_hash is the dedup gate for extraction runs.
package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Repo provides extract persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new extract repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

var extractColumns = []string{
	"e.id", "e.source_id", "e.quote", "e.page_hint", "e.category", "e.context",
	"e.content_hash", "e.show_count", "e.last_shown_at", "e.bookmarked", "e.dismissed", "e.created_at",
}

var extractWithSourceColumns = append(append([]string{}, extractColumns...), "s.title", "s.author")

const insertIfAbsentSQL = `
INSERT INTO extracts (source_id, quote, page_hint, category, context, content_hash)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (content_hash) DO NOTHING`

const getByIDSQL = `
SELECT e.id, e.source_id, e.quote, e.page_hint, e.category, e.context,
       e.content_hash, e.show_count, e.last_shown_at, e.bookmarked, e.dismissed, e.created_at,
       s.title, s.author
FROM extracts e
JOIN sources s ON s.id = e.source_id
WHERE e.id = $1`

const setBookmarkedSQL = `UPDATE extracts SET bookmarked = $2 WHERE id = $1`

const markDismissedSQL = `
UPDATE extracts SET dismissed = true, last_shown_at = $2
WHERE id = $1`

const markViewedSQL = `
UPDATE extracts SET show_count = show_count + 1, last_shown_at = $2
WHERE id = $1
RETURNING id, source_id, quote, page_hint, category, context,
          content_hash, show_count, last_shown_at, bookmarked, dismissed, created_at`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertIfAbsent inserts a quote unless its content hash is already stored.
// The bool result reports whether a row was inserted; a hash collision is not
// an error. Any other constraint violation is returned mapped to a domain error.
func (r *Repo) InsertIfAbsent(ctx context.Context, in domain.NewExtract) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, insertIfAbsentSQL,
		in.SourceID, in.Quote, in.PageHint, string(in.Category), in.Context, in.ContentHash)
	if err != nil {
		return false, fmt.Errorf("insert extract %s: %w", in.ContentHash, postgres.MapError(err, "source", in.SourceID))
	}

	return tag.RowsAffected() == 1, nil
}

// SetBookmarked sets or clears the bookmark flag.
func (r *Repo) SetBookmarked(ctx context.Context, id int64, bookmarked bool) error {
	return r.execOne(ctx, id, setBookmarkedSQL, id, bookmarked)
}

// MarkDismissed sets dismissed and restarts the repetition clock at now.
func (r *Repo) MarkDismissed(ctx context.Context, id int64, now time.Time) error {
	return r.execOne(ctx, id, markDismissedSQL, id, now)
}

// MarkViewed increments show_count and sets last_shown_at to now atomically.
func (r *Repo) MarkViewed(ctx context.Context, id int64, now time.Time) (domain.Extract, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExtract(querier.QueryRow(ctx, markViewedSQL, id, now))
	if err != nil {
		return domain.Extract{}, postgres.MapError(err, "extract", id)
	}

	return e, nil
}

func (r *Repo) execOne(ctx context.Context, id int64, sql string, args ...any) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "extract", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extract %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an extract with its source's title and author.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.ExtractWithSource, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExtractWithSource(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return domain.ExtractWithSource{}, postgres.MapError(err, "extract", id)
	}

	return e, nil
}

// ListFeedCandidates returns extracts that pass the eligibility windows at th.
// The filter mirrors domain.FeedPolicy.IsEligible; callers still apply the
// predicate to the result.
func (r *Repo) ListFeedCandidates(ctx context.Context, th domain.Thresholds) ([]domain.ExtractWithSource, error) {
	query := selectWithSource().
		Where(squirrel.And{
			squirrel.Or{
				squirrel.Eq{"e.dismissed": false},
				squirrel.Lt{"e.last_shown_at": th.DismissBefore},
			},
			squirrel.Or{
				squirrel.Eq{"e.last_shown_at": nil},
				squirrel.Lt{"e.last_shown_at": th.RepeatBefore},
			},
		})

	return r.listWithSource(ctx, query, "list feed candidates")
}

// ListBookmarked returns bookmarked extracts, newest first.
func (r *Repo) ListBookmarked(ctx context.Context) ([]domain.ExtractWithSource, error) {
	query := selectWithSource().
		Where(squirrel.Eq{"e.bookmarked": true}).
		OrderBy("e.created_at DESC", "e.id DESC")

	return r.listWithSource(ctx, query, "list bookmarked extracts")
}

// ListBySource returns all extracts of a source ordered by page hint.
func (r *Repo) ListBySource(ctx context.Context, sourceID int64) ([]domain.Extract, error) {
	sql, args, err := postgres.Builder().
		Select(extractColumns...).
		From("extracts e").
		Where(squirrel.Eq{"e.source_id": sourceID}).
		OrderBy("e.page_hint ASC NULLS LAST", "e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list extracts query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list extracts by source %d: %w", sourceID, err)
	}
	defer rows.Close()

	var extracts []domain.Extract
	for rows.Next() {
		e, err := scanExtract(rows)
		if err != nil {
			return nil, fmt.Errorf("list extracts by source %d: %w", sourceID, err)
		}
		extracts = append(extracts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list extracts by source %d: %w", sourceID, err)
	}

	if extracts == nil {
		extracts = []domain.Extract{}
	}

	return extracts, nil
}

func selectWithSource() squirrel.SelectBuilder {
	return postgres.Builder().
		Select(extractWithSourceColumns...).
		From("extracts e").
		Join("sources s ON s.id = e.source_id")
}

func (r *Repo) listWithSource(ctx context.Context, query squirrel.SelectBuilder, op string) ([]domain.ExtractWithSource, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var extracts []domain.ExtractWithSource
	for rows.Next() {
		e, err := scanExtractWithSource(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		extracts = append(extracts, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if extracts == nil {
		extracts = []domain.ExtractWithSource{}
	}

	return extracts, nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

// extractRow holds the scan targets shared by both extract projections.
type extractRow struct {
	e         domain.Extract
	category  string
	pageHint  *int32
	showCount int32
}

func (r *extractRow) dest() []any {
	return []any{
		&r.e.ID, &r.e.SourceID, &r.e.Quote, &r.pageHint, &r.category, &r.e.Context,
		&r.e.ContentHash, &r.showCount, &r.e.LastShownAt, &r.e.Bookmarked, &r.e.Dismissed, &r.e.CreatedAt,
	}
}

func (r *extractRow) toDomain() domain.Extract {
	e := r.e
	e.Category = domain.Category(r.category)
	e.ShowCount = int(r.showCount)
	if r.pageHint != nil {
		v := int(*r.pageHint)
		e.PageHint = &v
	}
	return e
}

func scanExtract(row pgx.Row) (domain.Extract, error) {
	var r extractRow
	if err := row.Scan(r.dest()...); err != nil {
		return domain.Extract{}, err
	}
	return r.toDomain(), nil
}

func scanExtractWithSource(row pgx.Row) (domain.ExtractWithSource, error) {
	var (
		r      extractRow
		title  string
		author *string
	)
	if err := row.Scan(append(r.dest(), &title, &author)...); err != nil {
		return domain.ExtractWithSource{}, err
	}
	return domain.ExtractWithSource{
		Extract:      r.toDomain(),
		SourceTitle:  title,
		SourceAuthor: author,
	}, nil
}
