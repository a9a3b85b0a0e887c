package middleware

import (
	"net/http"
	"strings"
	"time"
)

type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// unmatchedRoute labels requests no route pattern matched, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics records request count and latency per matched route. It must wrap
// the ServeMux directly (or through middleware that does not replace the
// request), since the mux records the matched pattern on the request.
func Metrics(obs httpObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			obs.ObserveHTTP(r.Method, routeOf(r), sw.status, time.Since(start))
		})
	}
}

// routeOf returns the matched pattern without its method prefix.
func routeOf(r *http.Request) string {
	if r.Pattern == "" {
		return unmatchedRoute
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}
