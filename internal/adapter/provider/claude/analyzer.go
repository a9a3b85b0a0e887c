// Package claude implements the document analyzer on top of the Anthropic
// Messages API. Each analysis runs as an in-process job so callers can use
// the submit/poll/fetch protocol.
package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

const breakerName = "claude"

// messenger is the part of anthropic.MessageService the analyzer needs.
type messenger interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type breakerObserver interface {
	SetBreakerState(name string, state int)
}

// BreakerConfig tunes the circuit breaker around API calls.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// Config holds analyzer settings.
type Config struct {
	APIKey           string
	Model            string
	MaxTokens        int64
	MinQuotes        int
	MaxQuotes        int
	MaxDocumentBytes int64
	RequestTimeout   time.Duration
	Breaker          BreakerConfig
}

// Analyzer runs quote extraction jobs against Claude.
type Analyzer struct {
	client  messenger
	cb      *gobreaker.CircuitBreaker
	cfg     Config
	log     *slog.Logger
	jobsMu  sync.Mutex
	jobs    map[domain.JobHandle]*job
	wg      sync.WaitGroup
	now     func() time.Time
	jobsTTL time.Duration
}

// NewAnalyzer builds an analyzer with a real Anthropic client. obs may be nil.
func NewAnalyzer(logger *slog.Logger, cfg Config, obs breakerObserver) *Analyzer {
	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return newAnalyzer(logger, &client.Messages, cfg, obs)
}

func newAnalyzer(logger *slog.Logger, client messenger, cfg Config, obs breakerObserver) *Analyzer {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 8192
	}
	if cfg.MinQuotes <= 0 {
		cfg.MinQuotes = 15
	}
	if cfg.MaxQuotes < cfg.MinQuotes {
		cfg.MaxQuotes = cfg.MinQuotes + 5
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Minute
	}

	log := logger.With("adapter", "claude")

	a := &Analyzer{
		client:  client,
		cfg:     cfg,
		log:     log,
		jobs:    make(map[domain.JobHandle]*job),
		now:     time.Now,
		jobsTTL: time.Hour,
	}

	br := cfg.Breaker
	a.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: br.MaxRequests,
		Interval:    br.Interval,
		Timeout:     br.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			minRequests := br.MinRequests
			if minRequests == 0 {
				minRequests = 3
			}
			if counts.Requests < minRequests {
				return false
			}
			threshold := br.FailureThreshold
			if threshold <= 0 {
				threshold = 0.6
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if obs != nil {
				obs.SetBreakerState(name, int(to))
			}
		},
		// A malformed answer is not an availability problem.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrUpstreamResponseInvalid)
		},
	})
	if obs != nil {
		obs.SetBreakerState(breakerName, int(gobreaker.StateClosed))
	}

	return a
}

// Submit reads the document and starts an analysis job.
func (a *Analyzer) Submit(ctx context.Context, doc domain.Document) (domain.JobHandle, error) {
	data, err := a.readDocument(doc.FilePath)
	if err != nil {
		return "", err
	}

	handle := domain.JobHandle(uuid.NewString())
	j := &job{state: domain.JobStateProcessing, created: a.now()}

	a.jobsMu.Lock()
	a.sweepLocked()
	a.jobs[handle] = j
	a.jobsMu.Unlock()

	a.log.InfoContext(ctx, "analysis submitted",
		slog.String("job", string(handle)),
		slog.Int64("source_id", doc.SourceID),
		slog.Int("bytes", len(data)),
	)

	// The job outlives the submitting request.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.RequestTimeout)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()
		quotes, err := a.analyze(runCtx, doc, data)
		a.finish(handle, quotes, err)
	}()

	return handle, nil
}

// Poll reports the job state. A failed job is forgotten once reported.
func (a *Analyzer) Poll(_ context.Context, handle domain.JobHandle) (domain.JobStatus, error) {
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()

	j, ok := a.jobs[handle]
	if !ok {
		return domain.JobStatus{}, fmt.Errorf("claude: job %s: %w", handle, domain.ErrNotFound)
	}
	if j.state == domain.JobStateFailed {
		delete(a.jobs, handle)
	}
	return domain.JobStatus{State: j.state, Message: j.message}, nil
}

// Fetch returns the quotes of a ready job and forgets it.
func (a *Analyzer) Fetch(_ context.Context, handle domain.JobHandle) ([]domain.CandidateQuote, error) {
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()

	j, ok := a.jobs[handle]
	if !ok {
		return nil, fmt.Errorf("claude: job %s: %w", handle, domain.ErrNotFound)
	}
	if j.state != domain.JobStateReady {
		return nil, fmt.Errorf("claude: job %s is %s", handle, j.state)
	}
	delete(a.jobs, handle)
	if j.err != nil {
		return nil, j.err
	}
	return j.quotes, nil
}

// Wait blocks until all running jobs have finished. Used on shutdown.
func (a *Analyzer) Wait() {
	a.wg.Wait()
}

func (a *Analyzer) readDocument(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewUpstreamFailed(fmt.Sprintf("read document: %v", err))
	}
	if a.cfg.MaxDocumentBytes > 0 && info.Size() > a.cfg.MaxDocumentBytes {
		return nil, domain.NewUpstreamFailed(fmt.Sprintf("document is %d bytes, limit is %d", info.Size(), a.cfg.MaxDocumentBytes))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewUpstreamFailed(fmt.Sprintf("read document: %v", err))
	}
	return data, nil
}

// analyze makes the API call through the breaker and parses the answer.
func (a *Analyzer) analyze(ctx context.Context, doc domain.Document, data []byte) ([]domain.CandidateQuote, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.cfg.Model),
		MaxTokens: a.cfg.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(data),
				}),
				anthropic.NewTextBlock(buildPrompt(doc, a.cfg.MinQuotes, a.cfg.MaxQuotes)),
			),
		},
	}

	started := a.now()
	out, err := a.cb.Execute(func() (interface{}, error) {
		msg, err := a.client.New(ctx, params)
		if err != nil {
			return nil, err
		}
		return parseMessage(msg)
	})
	if err != nil {
		return nil, classify(err)
	}

	quotes := out.([]domain.CandidateQuote)
	a.log.Info("analysis finished",
		slog.Int64("source_id", doc.SourceID),
		slog.Int("quotes", len(quotes)),
		slog.Duration("duration", a.now().Sub(started)),
	)
	return quotes, nil
}

// classify maps breaker and transport errors onto upstream error kinds.
func classify(err error) error {
	var ue *domain.UpstreamError
	switch {
	case errors.As(err, &ue):
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domain.NewUpstreamFailed("analysis temporarily unavailable: " + err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewUpstreamFailed("analysis timed out")
	default:
		return domain.NewUpstreamFailed(err.Error())
	}
}

func (a *Analyzer) finish(handle domain.JobHandle, quotes []domain.CandidateQuote, err error) {
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()

	j, ok := a.jobs[handle]
	if !ok {
		return
	}
	switch {
	case err == nil:
		j.state = domain.JobStateReady
		j.quotes = quotes
	case errors.Is(err, domain.ErrUpstreamResponseInvalid):
		// The job completed; the output is rejected at fetch time.
		j.state = domain.JobStateReady
		j.err = err
	default:
		j.state = domain.JobStateFailed
		j.message = err.Error()
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			j.message = ue.Message
		}
		a.log.Warn("analysis failed", slog.String("job", string(handle)), slog.String("error", err.Error()))
	}
}
