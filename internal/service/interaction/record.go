package interaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// Record appends one interaction. bookmark and dismiss also change the
// extract; the change and the log row commit together or not at all.
func (s *Service) Record(ctx context.Context, input RecordInput) (domain.Interaction, error) {
	if err := input.Validate(); err != nil {
		return domain.Interaction{}, err
	}

	now := s.clock(ctx)

	var created domain.Interaction
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		switch input.Type {
		case domain.InteractionTypeBookmark:
			if err := s.extracts.SetBookmarked(ctx, input.ExtractID, true); err != nil {
				return fmt.Errorf("bookmark: %w", err)
			}
		case domain.InteractionTypeDismiss:
			if err := s.extracts.MarkDismissed(ctx, input.ExtractID, now); err != nil {
				return fmt.Errorf("dismiss: %w", err)
			}
		}

		var err error
		created, err = s.interactions.Create(ctx, domain.Interaction{
			ExtractID:  input.ExtractID,
			Type:       input.Type,
			DurationMs: input.DurationMs,
			CreatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("log interaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Interaction{}, err
	}

	s.log.DebugContext(ctx, "interaction recorded",
		slog.Int64("extract_id", input.ExtractID),
		slog.String("type", input.Type.String()),
	)

	return created, nil
}

// Bookmark sets bookmarked=true and logs a bookmark interaction.
func (s *Service) Bookmark(ctx context.Context, extractID int64) error {
	_, err := s.Record(ctx, RecordInput{ExtractID: extractID, Type: domain.InteractionTypeBookmark})
	return err
}

// Dismiss sets dismissed=true, restarts the repetition clock and logs a
// dismiss interaction.
func (s *Service) Dismiss(ctx context.Context, extractID int64) error {
	_, err := s.Record(ctx, RecordInput{ExtractID: extractID, Type: domain.InteractionTypeDismiss})
	return err
}

// Unbookmark clears the bookmark. It is not an engagement signal and writes
// no interaction row.
func (s *Service) Unbookmark(ctx context.Context, extractID int64) error {
	if extractID <= 0 {
		return domain.NewValidationError("extract_id", "required")
	}
	return s.extracts.SetBookmarked(ctx, extractID, false)
}

// MarkViewed counts one showing of the extract and starts its repetition
// window. No interaction row is written.
func (s *Service) MarkViewed(ctx context.Context, extractID int64) (domain.Extract, error) {
	if extractID <= 0 {
		return domain.Extract{}, domain.NewValidationError("extract_id", "required")
	}

	e, err := s.extracts.MarkViewed(ctx, extractID, s.clock(ctx))
	if err != nil {
		return domain.Extract{}, err
	}

	s.log.DebugContext(ctx, "extract viewed",
		slog.Int64("extract_id", extractID),
		slog.Int("show_count", e.ShowCount),
	)

	return e, nil
}
