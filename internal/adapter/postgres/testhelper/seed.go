package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSource creates a pending source with a unique file path.
func SeedSource(t *testing.T, pool *pgxpool.Pool) domain.Source {
	t.Helper()

	suffix := UniqueSuffix()
	author := "Author " + suffix
	s := domain.Source{
		Title:            "Book " + suffix,
		Author:           &author,
		FilePath:         "/library/book-" + suffix + ".pdf",
		ProcessingStatus: domain.ProcessingStatusPending,
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO sources (title, author, file_path)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		s.Title, s.Author, s.FilePath,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSource: %v", err)
	}

	return s
}

// ExtractOption customizes a seeded extract.
type ExtractOption func(*domain.Extract)

// WithLastShownAt sets last_shown_at on the seeded extract.
func WithLastShownAt(at time.Time) ExtractOption {
	return func(e *domain.Extract) {
		at = at.UTC().Truncate(time.Microsecond)
		e.LastShownAt = &at
	}
}

// WithDismissed marks the seeded extract dismissed.
func WithDismissed() ExtractOption {
	return func(e *domain.Extract) { e.Dismissed = true }
}

// WithBookmarked marks the seeded extract bookmarked.
func WithBookmarked() ExtractOption {
	return func(e *domain.Extract) { e.Bookmarked = true }
}

// SeedExtract creates an extract with a unique quote for the given source.
func SeedExtract(t *testing.T, pool *pgxpool.Pool, sourceID int64, opts ...ExtractOption) domain.Extract {
	t.Helper()

	e := domain.Extract{
		SourceID: sourceID,
		Quote:    "Quote " + uuid.New().String(),
		Category: domain.CategoryInsight,
	}
	for _, opt := range opts {
		opt(&e)
	}
	e.ContentHash = domain.ContentHash(e.Quote)

	err := pool.QueryRow(context.Background(),
		`INSERT INTO extracts (source_id, quote, category, content_hash, last_shown_at, bookmarked, dismissed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		e.SourceID, e.Quote, string(e.Category), e.ContentHash, e.LastShownAt, e.Bookmarked, e.Dismissed,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedExtract: %v", err)
	}

	return e
}

// CountInteractions returns how many interaction rows exist for an extract.
func CountInteractions(t *testing.T, pool *pgxpool.Pool, extractID int64, typ domain.InteractionType) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM interactions WHERE extract_id = $1 AND type = $2`,
		extractID, string(typ),
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountInteractions: %v", err)
	}
	return n
}
