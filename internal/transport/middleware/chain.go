package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(handler) results in mw1(mw2(handler)), so mw1 runs first.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

// StackDeps are the collaborators of the server middleware stack.
type StackDeps struct {
	Logger  *slog.Logger
	CORS    config.CORSConfig
	Metrics httpObserver
	Now     func() time.Time
}

// Stack returns the middleware every API request passes through, outermost
// first. RequestID sits outside Recovery so panic logs carry the id, and
// Metrics and Logger sit next to the mux so they can read the matched route.
func Stack(d StackDeps) Middleware {
	mws := []Middleware{
		RequestID(),
		Recovery(d.Logger),
		RequestTime(d.Now),
		CORS(d.CORS),
	}
	if d.Metrics != nil {
		mws = append(mws, Metrics(d.Metrics))
	}
	mws = append(mws, Logger(d.Logger))
	return Chain(mws...)
}
