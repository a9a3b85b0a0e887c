package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres"
	extractrepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/extract"
	interactionrepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/interaction"
	sourcerepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/source"
	"github.com/heartmarshall/bookfeed-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/bookfeed-backend/internal/adapter/provider/pdfmeta"
	"github.com/heartmarshall/bookfeed-backend/internal/config"
	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/internal/metrics"
	"github.com/heartmarshall/bookfeed-backend/internal/service/extraction"
	"github.com/heartmarshall/bookfeed-backend/internal/service/feed"
	"github.com/heartmarshall/bookfeed-backend/internal/service/interaction"
	"github.com/heartmarshall/bookfeed-backend/internal/service/library"
	"github.com/heartmarshall/bookfeed-backend/migrations"
)

const metricsNamespace = "bookfeed"

// Container holds the wired adapters and services shared by the server and
// the batch command.
type Container struct {
	Pool        *pgxpool.Pool
	Metrics     *metrics.Collector
	Library     *library.Service
	Feed        *feed.Service
	Interaction *interaction.Service
	Extraction  *extraction.Service

	analyzer *claude.Analyzer
}

// NewContainer connects to the database, applies migrations when enabled and
// builds every service.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	sources := sourcerepo.New(pool)
	extracts := extractrepo.New(pool)
	interactions := interactionrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	c := &Container{
		Pool:    pool,
		Metrics: metrics.New(metricsNamespace),
	}

	var analyzer interface {
		Submit(ctx context.Context, doc domain.Document) (domain.JobHandle, error)
		Poll(ctx context.Context, handle domain.JobHandle) (domain.JobStatus, error)
		Fetch(ctx context.Context, handle domain.JobHandle) ([]domain.CandidateQuote, error)
	}
	if cfg.Extraction.HasAnalyzer() {
		c.analyzer = claude.NewAnalyzer(logger, analyzerConfig(cfg.Extraction), c.Metrics)
		analyzer = c.analyzer
	} else {
		logger.Warn("ANTHROPIC_API_KEY is not set; extraction requests will fail")
		analyzer = disabledAnalyzer{}
	}

	c.Library = library.NewService(logger, sources, extracts, pdfmeta.NewReader(logger), cfg.Library.Dir)
	c.Feed = feed.NewService(logger, extracts, cfg.Feed.Policy(), nil)
	c.Interaction = interaction.NewService(logger, extracts, interactions, tx)
	c.Extraction = extraction.NewService(logger, sources, extracts, analyzer, c.Metrics, extraction.Config{
		PollInterval: cfg.Extraction.PollInterval,
		Timeout:      cfg.Extraction.Timeout,
	})

	return c, nil
}

// Close waits for in-flight analyzer jobs and closes the pool.
func (c *Container) Close() {
	if c.analyzer != nil {
		c.analyzer.Wait()
	}
	c.Pool.Close()
}

func analyzerConfig(cfg config.ExtractionConfig) claude.Config {
	return claude.Config{
		APIKey:           cfg.APIKey,
		Model:            cfg.Model,
		MaxTokens:        cfg.MaxTokens,
		MinQuotes:        cfg.MinQuotes,
		MaxQuotes:        cfg.MaxQuotes,
		MaxDocumentBytes: cfg.MaxDocumentBytes(),
		RequestTimeout:   cfg.Timeout,
		Breaker: claude.BreakerConfig{
			MaxRequests:      cfg.Breaker.MaxRequests,
			Interval:         cfg.Breaker.Interval,
			Timeout:          cfg.Breaker.Timeout,
			MinRequests:      cfg.Breaker.MinRequests,
			FailureThreshold: cfg.Breaker.FailureThreshold,
		},
	}
}

// disabledAnalyzer stands in when no API key is configured.
type disabledAnalyzer struct{}

var errAnalyzerDisabled = domain.NewUpstreamFailed("document analyzer is not configured")

func (disabledAnalyzer) Submit(context.Context, domain.Document) (domain.JobHandle, error) {
	return "", errAnalyzerDisabled
}

func (disabledAnalyzer) Poll(context.Context, domain.JobHandle) (domain.JobStatus, error) {
	return domain.JobStatus{}, errAnalyzerDisabled
}

func (disabledAnalyzer) Fetch(context.Context, domain.JobHandle) ([]domain.CandidateQuote, error) {
	return nil, errAnalyzerDisabled
}
