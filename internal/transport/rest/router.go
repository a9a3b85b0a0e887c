package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *HealthHandler
	Feed    *FeedHandler
	Extract *ExtractHandler
	Source  *SourceHandler
	Metrics http.Handler

	// ExtractLimit wraps POST /sources/{id}/extract. Nil means unlimited.
	ExtractLimit func(http.Handler) http.Handler
}

// NewRouter registers all routes on a fresh ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("GET /feed", h.Feed.Get)
	mux.HandleFunc("POST /feed/{id}/view", h.Feed.View)

	mux.HandleFunc("GET /extracts/bookmarked", h.Extract.Bookmarked)
	mux.HandleFunc("GET /extracts/{id}", h.Extract.Get)
	mux.HandleFunc("POST /extracts/{id}/bookmark", h.Extract.Bookmark)
	mux.HandleFunc("POST /extracts/{id}/unbookmark", h.Extract.Unbookmark)
	mux.HandleFunc("POST /extracts/{id}/dismiss", h.Extract.Dismiss)
	mux.HandleFunc("POST /extracts/interaction", h.Extract.Interaction)

	mux.HandleFunc("GET /sources", h.Source.List)
	mux.HandleFunc("GET /sources/{id}", h.Source.Get)
	mux.HandleFunc("POST /sources/scan", h.Source.Scan)

	var extract http.Handler = http.HandlerFunc(h.Source.Extract)
	if h.ExtractLimit != nil {
		extract = h.ExtractLimit(extract)
	}
	mux.Handle("POST /sources/{id}/extract", extract)

	return mux
}
