package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleError maps domain errors to HTTP statuses. Upstream failures keep the
// raw message so the reader can see what the analyzer reported.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ue *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrExtractionInProgress):
		writeError(w, http.StatusConflict, "extraction already in progress")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict")
	case errors.As(err, &ue):
		log.WarnContext(r.Context(), "upstream error", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, ue.Error())
	case errors.Is(err, domain.ErrUpstreamProcessingFailed), errors.Is(err, domain.ErrUpstreamResponseInvalid):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// pathID parses the {id} path value. ok is false after a 400 was written.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

type extractResponse struct {
	ID           int64      `json:"id"`
	SourceID     int64      `json:"sourceId"`
	Quote        string     `json:"quote"`
	PageHint     *int       `json:"pageHint,omitempty"`
	Category     string     `json:"category"`
	Context      *string    `json:"context,omitempty"`
	ShowCount    int        `json:"showCount"`
	LastShownAt  *time.Time `json:"lastShownAt,omitempty"`
	Bookmarked   bool       `json:"bookmarked"`
	Dismissed    bool       `json:"dismissed"`
	CreatedAt    time.Time  `json:"createdAt"`
	SourceTitle  string     `json:"sourceTitle,omitempty"`
	SourceAuthor *string    `json:"sourceAuthor,omitempty"`
}

type sourceResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Author           *string   `json:"author,omitempty"`
	FilePath         string    `json:"filePath"`
	ProcessingStatus string    `json:"processingStatus"`
	ExtractCount     int       `json:"extractCount"`
	LastError        *string   `json:"lastError,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toExtractResponse(e domain.Extract) extractResponse {
	return extractResponse{
		ID:          e.ID,
		SourceID:    e.SourceID,
		Quote:       e.Quote,
		PageHint:    e.PageHint,
		Category:    e.Category.String(),
		Context:     e.Context,
		ShowCount:   e.ShowCount,
		LastShownAt: e.LastShownAt,
		Bookmarked:  e.Bookmarked,
		Dismissed:   e.Dismissed,
		CreatedAt:   e.CreatedAt,
	}
}

func toPostResponse(e domain.ExtractWithSource) extractResponse {
	resp := toExtractResponse(e.Extract)
	resp.SourceTitle = e.SourceTitle
	resp.SourceAuthor = e.SourceAuthor
	return resp
}

func toPostResponses(items []domain.ExtractWithSource) []extractResponse {
	out := make([]extractResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toPostResponse(it))
	}
	return out
}

func toSourceResponse(s domain.Source) sourceResponse {
	return sourceResponse{
		ID:               s.ID,
		Title:            s.Title,
		Author:           s.Author,
		FilePath:         s.FilePath,
		ProcessingStatus: s.ProcessingStatus.String(),
		ExtractCount:     s.ExtractCount,
		LastError:        s.LastError,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func toSourceResponses(items []domain.Source) []sourceResponse {
	out := make([]sourceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toSourceResponse(s))
	}
	return out
}
