package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

type libraryService interface {
	ListSources(ctx context.Context) ([]domain.Source, error)
	GetSource(ctx context.Context, id int64) (domain.SourceWithExtracts, error)
	Scan(ctx context.Context) (domain.ScanResult, error)
}

type extractionService interface {
	Extract(ctx context.Context, sourceID int64) (domain.ExtractionResult, error)
}

// SourceHandler serves the document library and on-demand extraction.
type SourceHandler struct {
	library    libraryService
	extraction extractionService
	log        *slog.Logger
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(library libraryService, extraction extractionService, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{
		library:    library,
		extraction: extraction,
		log:        logger.With("handler", "source"),
	}
}

type sourceDetailResponse struct {
	sourceResponse
	Extracts []extractResponse `json:"extracts"`
}

type scanResponse struct {
	Scanned int              `json:"scanned"`
	Added   int              `json:"added"`
	Sources []sourceResponse `json:"sources"`
}

type extractionResponse struct {
	Extracted  int `json:"extracted"`
	Duplicates int `json:"duplicates"`
	Total      int `json:"total"`
}

// List handles GET /sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := h.library.ListSources(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"sources": toSourceResponses(sources)})
}

// Get handles GET /sources/{id}.
func (h *SourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	src, err := h.library.GetSource(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	extracts := make([]extractResponse, 0, len(src.Extracts))
	for _, e := range src.Extracts {
		extracts = append(extracts, toExtractResponse(e))
	}

	writeJSON(w, http.StatusOK, sourceDetailResponse{
		sourceResponse: toSourceResponse(src.Source),
		Extracts:       extracts,
	})
}

// Scan handles POST /sources/scan.
func (h *SourceHandler) Scan(w http.ResponseWriter, r *http.Request) {
	res, err := h.library.Scan(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, scanResponse{
		Scanned: res.Scanned,
		Added:   res.Added,
		Sources: toSourceResponses(res.Sources),
	})
}

// Extract handles POST /sources/{id}/extract. The call blocks until the
// analyzer finishes or the extraction timeout fires.
func (h *SourceHandler) Extract(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := h.extraction.Extract(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extractionResponse{
		Extracted:  res.Extracted,
		Duplicates: res.Duplicates,
		Total:      res.Total,
	})
}
