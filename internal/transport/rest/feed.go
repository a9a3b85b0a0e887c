package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/pkg/ctxutil"
)

type feedService interface {
	BuildFeed(ctx context.Context, now time.Time) (domain.Feed, error)
}

type viewMarker interface {
	MarkViewed(ctx context.Context, extractID int64) (domain.Extract, error)
}

// FeedHandler serves the daily feed.
type FeedHandler struct {
	feed   feedService
	viewed viewMarker
	log    *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(feed feedService, viewed viewMarker, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, viewed: viewed, log: logger.With("handler", "feed")}
}

type feedResponse struct {
	Posts       []extractResponse `json:"posts"`
	Count       int               `json:"count"`
	Quota       int               `json:"quota"`
	AllCaughtUp bool              `json:"allCaughtUp"`
}

// Get handles GET /feed.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feed.BuildFeed(r.Context(), ctxutil.NowFromCtx(r.Context()))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, feedResponse{
		Posts:       toPostResponses(feed.Posts),
		Count:       feed.Count,
		Quota:       feed.Quota,
		AllCaughtUp: feed.AllCaughtUp,
	})
}

// View handles POST /feed/{id}/view.
func (h *FeedHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ext, err := h.viewed.MarkViewed(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExtractResponse(ext))
}
