package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/internal/metrics"
)

// Extract runs one extraction for a source and returns the insert counts.
//
// Only one run per source may be active: a concurrent call gets
// domain.ErrExtractionInProgress. On upstream or storage failure the source is
// marked error and extracts inserted before the failure are kept.
func (s *Service) Extract(ctx context.Context, sourceID int64) (domain.ExtractionResult, error) {
	if sourceID <= 0 {
		return domain.ExtractionResult{}, domain.NewValidationError("source_id", "required")
	}

	if !s.locks.TryLock(sourceID) {
		s.observe(metrics.OutcomeInProgress, domain.ExtractionResult{}, 0)
		return domain.ExtractionResult{}, fmt.Errorf("source %d: %w", sourceID, domain.ErrExtractionInProgress)
	}
	defer s.locks.Unlock(sourceID)

	src, err := s.sources.BeginProcessing(ctx, sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionInProgress) {
			s.observe(metrics.OutcomeInProgress, domain.ExtractionResult{}, 0)
		}
		return domain.ExtractionResult{}, err
	}

	started := s.now()
	log := s.log.With(slog.Int64("source_id", src.ID), slog.String("title", src.Title))
	log.InfoContext(ctx, "extraction started")

	result, runErr := s.run(ctx, src)
	if runErr != nil {
		// Record the failure even when the caller has gone away.
		if err := s.sources.MarkError(context.WithoutCancel(ctx), src.ID, runErr.Error()); err != nil {
			log.ErrorContext(ctx, "mark source error", slog.String("error", err.Error()))
		}
		s.observe(metrics.OutcomeError, result, s.now().Sub(started))
		log.WarnContext(ctx, "extraction failed",
			slog.String("error", runErr.Error()),
			slog.Int("inserted_before_failure", result.Extracted),
		)
		return result, fmt.Errorf("extract source %d: %w", src.ID, runErr)
	}

	// The quotes are stored; settle the status even if the caller has gone.
	settleCtx := context.WithoutCancel(ctx)
	if _, err := s.sources.MarkDone(settleCtx, src.ID, result.Extracted); err != nil {
		if mErr := s.sources.MarkError(settleCtx, src.ID, "mark done: "+err.Error()); mErr != nil {
			log.ErrorContext(ctx, "mark source error", slog.String("error", mErr.Error()))
		}
		s.observe(metrics.OutcomeError, result, s.now().Sub(started))
		log.WarnContext(ctx, "extraction failed",
			slog.String("error", err.Error()),
			slog.Int("inserted_before_failure", result.Extracted),
		)
		return result, fmt.Errorf("extract source %d: mark done: %w", src.ID, err)
	}

	s.observe(metrics.OutcomeDone, result, s.now().Sub(started))
	log.InfoContext(ctx, "extraction finished",
		slog.Int("extracted", result.Extracted),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("total", result.Total),
		slog.Duration("duration", s.now().Sub(started)),
	)

	return result, nil
}

// run drives the analyzer protocol and stores the candidates.
func (s *Service) run(ctx context.Context, src domain.Source) (domain.ExtractionResult, error) {
	candidates, err := s.analyze(ctx, src)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	result := domain.ExtractionResult{Total: len(candidates)}
	for _, c := range candidates {
		inserted, err := s.extracts.InsertIfAbsent(ctx, domain.NewExtract{
			SourceID:    src.ID,
			Quote:       c.Quote,
			PageHint:    c.PageHint,
			Category:    c.Category,
			Context:     c.Context,
			ContentHash: domain.ContentHash(c.Quote),
		})
		if err != nil {
			return result, fmt.Errorf("store quote: %w", err)
		}
		if inserted {
			result.Extracted++
		} else {
			result.Duplicates++
		}
	}

	return result, nil
}

// analyze submits the document, waits for the job and fetches validated
// candidates. The whole exchange is bounded by cfg.Timeout.
func (s *Service) analyze(ctx context.Context, src domain.Source) ([]domain.CandidateQuote, error) {
	jobCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	handle, err := s.analyzer.Submit(jobCtx, domain.Document{
		SourceID: src.ID,
		Title:    src.Title,
		Author:   src.Author,
		FilePath: src.FilePath,
	})
	if err != nil {
		return nil, s.upstreamErr(ctx, "submit", err)
	}

	if err := s.wait(ctx, jobCtx, handle); err != nil {
		return nil, err
	}

	candidates, err := s.analyzer.Fetch(jobCtx, handle)
	if err != nil {
		return nil, s.upstreamErr(ctx, "fetch", err)
	}
	if len(candidates) == 0 {
		return nil, domain.NewUpstreamInvalid("no quotes returned")
	}

	// Validate everything before storing anything.
	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, domain.NewUpstreamInvalid(fmt.Sprintf("quote %d: %v", i, err))
		}
	}

	return candidates, nil
}

// wait polls the job on a ticker until it is ready, failed, or jobCtx expires.
func (s *Service) wait(ctx, jobCtx context.Context, handle domain.JobHandle) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		status, err := s.analyzer.Poll(jobCtx, handle)
		if err != nil {
			return s.upstreamErr(ctx, "poll", err)
		}

		switch status.State {
		case domain.JobStateReady:
			return nil
		case domain.JobStateFailed:
			return domain.NewUpstreamFailed(status.Message)
		}

		select {
		case <-jobCtx.Done():
			return s.upstreamErr(ctx, "poll", jobCtx.Err())
		case <-ticker.C:
		}
	}
}

// upstreamErr classifies an analyzer error. Our own timeout becomes
// ErrUpstreamProcessingFailed; cancellation by the caller passes through.
func (s *Service) upstreamErr(ctx context.Context, op string, err error) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s timed out after %s: %w",
			domain.ErrUpstreamProcessingFailed, op, s.cfg.Timeout, context.DeadlineExceeded)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamProcessingFailed, op, err)
}

func (s *Service) observe(outcome string, res domain.ExtractionResult, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveExtraction(outcome, res, d)
	}
}
