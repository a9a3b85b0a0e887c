package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/internal/service/interaction"
)

type extractReader interface {
	GetExtract(ctx context.Context, id int64) (domain.ExtractWithSource, error)
	ListBookmarked(ctx context.Context) ([]domain.ExtractWithSource, error)
}

type interactionService interface {
	Record(ctx context.Context, input interaction.RecordInput) (domain.Interaction, error)
	Bookmark(ctx context.Context, extractID int64) error
	Unbookmark(ctx context.Context, extractID int64) error
	Dismiss(ctx context.Context, extractID int64) error
}

// ExtractHandler serves extract reads and reader interactions.
type ExtractHandler struct {
	reader       extractReader
	interactions interactionService
	log          *slog.Logger
}

// NewExtractHandler creates an ExtractHandler.
func NewExtractHandler(reader extractReader, interactions interactionService, logger *slog.Logger) *ExtractHandler {
	return &ExtractHandler{
		reader:       reader,
		interactions: interactions,
		log:          logger.With("handler", "extract"),
	}
}

type interactionRequest struct {
	ExtractID  int64  `json:"extractId"`
	Type       string `json:"type"`
	DurationMs *int   `json:"durationMs"`
}

type interactionResponse struct {
	ID         int64     `json:"id"`
	ExtractID  int64     `json:"extractId"`
	Type       string    `json:"type"`
	DurationMs *int      `json:"durationMs,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Get handles GET /extracts/{id}.
func (h *ExtractHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ext, err := h.reader.GetExtract(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toPostResponse(ext))
}

// Bookmarked handles GET /extracts/bookmarked.
func (h *ExtractHandler) Bookmarked(w http.ResponseWriter, r *http.Request) {
	items, err := h.reader.ListBookmarked(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"extracts": toPostResponses(items)})
}

// Bookmark handles POST /extracts/{id}/bookmark.
func (h *ExtractHandler) Bookmark(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.interactions.Bookmark)
}

// Unbookmark handles POST /extracts/{id}/unbookmark.
func (h *ExtractHandler) Unbookmark(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.interactions.Unbookmark)
}

// Dismiss handles POST /extracts/{id}/dismiss.
func (h *ExtractHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.interactions.Dismiss)
}

func (h *ExtractHandler) mutate(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := fn(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Interaction handles POST /extracts/interaction. Only passive signals are
// accepted here; bookmark and dismiss have their own endpoints.
func (h *ExtractHandler) Interaction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t := domain.InteractionType(req.Type)
	if t.MutatesExtract() {
		writeError(w, http.StatusBadRequest, "use the bookmark or dismiss endpoint for "+req.Type)
		return
	}

	created, err := h.interactions.Record(r.Context(), interaction.RecordInput{
		ExtractID:  req.ExtractID,
		Type:       t,
		DurationMs: req.DurationMs,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, interactionResponse{
		ID:         created.ID,
		ExtractID:  created.ExtractID,
		Type:       created.Type.String(),
		DurationMs: created.DurationMs,
		CreatedAt:  created.CreatedAt,
	})
}
