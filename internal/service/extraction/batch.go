package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// BatchItem is the outcome of one source in a batch run.
type BatchItem struct {
	Source domain.Source
	Result domain.ExtractionResult
	Err    error
}

// ExtractPending runs Extract sequentially for every pending or errored
// source. A failing source does not stop the batch; cancellation does.
func (s *Service) ExtractPending(ctx context.Context) ([]BatchItem, error) {
	sources, err := s.sources.List(ctx, domain.ProcessingStatusPending, domain.ProcessingStatusError)
	if err != nil {
		return nil, fmt.Errorf("list pending sources: %w", err)
	}

	s.log.InfoContext(ctx, "batch extraction", slog.Int("sources", len(sources)))

	items := make([]BatchItem, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		res, err := s.Extract(ctx, src.ID)
		items = append(items, BatchItem{Source: src, Result: res, Err: err})

		if err != nil && ctx.Err() != nil {
			return items, ctx.Err()
		}
	}

	return items, nil
}

// ResetStuck moves sources that have been processing for longer than the
// upstream timeout back to pending. Such rows are left behind by a process
// that died mid-run.
func (s *Service) ResetStuck(ctx context.Context) (int64, error) {
	n, err := s.sources.ResetStuck(ctx, s.now().Add(-s.cfg.Timeout))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.InfoContext(ctx, "reset stuck sources", slog.Int64("count", n))
	}
	return n, nil
}
