package interaction

import "github.com/heartmarshall/bookfeed-backend/internal/domain"

// maxDurationMs caps a single dwell measurement at 10 minutes.
const maxDurationMs = 600_000

// RecordInput holds the parameters for logging one interaction.
type RecordInput struct {
	ExtractID  int64
	Type       domain.InteractionType
	DurationMs *int
}

// Validate checks all fields and collects all errors.
func (i *RecordInput) Validate() error {
	var errs []domain.FieldError

	if i.ExtractID <= 0 {
		errs = append(errs, domain.FieldError{Field: "extract_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be view, pause, expand, bookmark, dismiss, or quick_scroll"})
	}
	if i.DurationMs != nil && *i.DurationMs < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "must be non-negative"})
	}
	if i.DurationMs != nil && *i.DurationMs > maxDurationMs {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "max 10 minutes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
