// Package interaction records reader behaviour and the extract state changes
// that some behaviours imply.
package interaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type extractRepo interface {
	SetBookmarked(ctx context.Context, id int64, bookmarked bool) error
	MarkDismissed(ctx context.Context, id int64, now time.Time) error
	MarkViewed(ctx context.Context, id int64, now time.Time) (domain.Extract, error)
}

type interactionRepo interface {
	Create(ctx context.Context, in domain.Interaction) (domain.Interaction, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the interaction recorder.
type Service struct {
	extracts     extractRepo
	interactions interactionRepo
	tx           txManager
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new interaction service.
func NewService(log *slog.Logger, extracts extractRepo, interactions interactionRepo, tx txManager) *Service {
	return &Service{
		extracts:     extracts,
		interactions: interactions,
		tx:           tx,
		log:          log.With("service", "interaction"),
		now:          time.Now,
	}
}

// clock prefers the time pinned on the request so a view or dismiss lands on
// the same instant the feed was built against.
func (s *Service) clock(ctx context.Context) time.Time {
	if t, ok := ctxutil.RequestTimeFromCtx(ctx); ok {
		return t.UTC()
	}
	return s.now().UTC()
}
