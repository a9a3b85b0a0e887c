package domain

import "time"

// InteractionType is the kind of reader behaviour being logged.
type InteractionType string

const (
	InteractionTypeView        InteractionType = "view"
	InteractionTypePause       InteractionType = "pause"
	InteractionTypeExpand      InteractionType = "expand"
	InteractionTypeBookmark    InteractionType = "bookmark"
	InteractionTypeDismiss     InteractionType = "dismiss"
	InteractionTypeQuickScroll InteractionType = "quick_scroll"
)

func (t InteractionType) String() string { return string(t) }

func (t InteractionType) IsValid() bool {
	switch t {
	case InteractionTypeView, InteractionTypePause, InteractionTypeExpand,
		InteractionTypeBookmark, InteractionTypeDismiss, InteractionTypeQuickScroll:
		return true
	}
	return false
}

// MutatesExtract reports whether recording this type also changes extract state.
func (t InteractionType) MutatesExtract() bool {
	return t == InteractionTypeBookmark || t == InteractionTypeDismiss
}

// Interaction is an append-only behavioural log entry.
type Interaction struct {
	ID         int64
	ExtractID  int64
	Type       InteractionType
	DurationMs *int
	CreatedAt  time.Time
}
