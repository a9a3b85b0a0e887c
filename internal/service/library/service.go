// Package library keeps the source table in sync with the PDF directory and
// serves read access to sources and their extracts.
package library

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

type sourceRepo interface {
	InsertIfAbsent(ctx context.Context, in domain.NewSource) (domain.Source, bool, error)
	GetByID(ctx context.Context, id int64) (domain.Source, error)
	List(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error)
}

type extractRepo interface {
	GetByID(ctx context.Context, id int64) (domain.ExtractWithSource, error)
	ListBySource(ctx context.Context, sourceID int64) ([]domain.Extract, error)
	ListBookmarked(ctx context.Context) ([]domain.ExtractWithSource, error)
}

// metadataReader reads embedded document metadata. Failures are not fatal
// to a scan.
type metadataReader interface {
	Read(ctx context.Context, path string) (domain.DocumentMeta, error)
}

// Service implements library scanning and read operations.
type Service struct {
	sources  sourceRepo
	extracts extractRepo
	meta     metadataReader
	dir      string
	log      *slog.Logger
}

// NewService creates a library service rooted at dir. meta may be nil, in
// which case titles come from file names.
func NewService(log *slog.Logger, sources sourceRepo, extracts extractRepo, meta metadataReader, dir string) *Service {
	return &Service{
		sources:  sources,
		extracts: extracts,
		meta:     meta,
		dir:      dir,
		log:      log.With("service", "library"),
	}
}
