// Package extraction runs documents through the document analyzer and stores
// the resulting quotes behind the content-hash dedup gate.
package extraction

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sourceRepo interface {
	GetByID(ctx context.Context, id int64) (domain.Source, error)
	List(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error)
	BeginProcessing(ctx context.Context, id int64) (domain.Source, error)
	MarkDone(ctx context.Context, id int64, inserted int) (domain.Source, error)
	MarkError(ctx context.Context, id int64, message string) error
	ResetStuck(ctx context.Context, olderThan time.Time) (int64, error)
}

type extractRepo interface {
	InsertIfAbsent(ctx context.Context, in domain.NewExtract) (bool, error)
}

// documentAnalyzer is the submit/poll/fetch protocol of the external
// document-understanding capability.
type documentAnalyzer interface {
	Submit(ctx context.Context, doc domain.Document) (domain.JobHandle, error)
	Poll(ctx context.Context, handle domain.JobHandle) (domain.JobStatus, error)
	Fetch(ctx context.Context, handle domain.JobHandle) ([]domain.CandidateQuote, error)
}

type observer interface {
	ObserveExtraction(outcome string, res domain.ExtractionResult, d time.Duration)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config controls upstream polling.
type Config struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

// Service implements the extraction pipeline.
type Service struct {
	sources  sourceRepo
	extracts extractRepo
	analyzer documentAnalyzer
	metrics  observer
	locks    *keyedLock
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new extraction service. metrics may be nil.
func NewService(
	log *slog.Logger,
	sources sourceRepo,
	extracts extractRepo,
	analyzer documentAnalyzer,
	metrics observer,
	cfg Config,
) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}

	return &Service{
		sources:  sources,
		extracts: extracts,
		analyzer: analyzer,
		metrics:  metrics,
		locks:    newKeyedLock(),
		cfg:      cfg,
		log:      log.With("service", "extraction"),
		now:      time.Now,
	}
}
