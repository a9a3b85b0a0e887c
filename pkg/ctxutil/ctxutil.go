package ctxutil

import (
	"context"
	"time"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	requestTimeKey ctxKey = "request_time"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithRequestTime pins the instant a request is served at. Every eligibility
// decision made while serving the request uses this value.
func WithRequestTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}

// RequestTimeFromCtx returns the pinned request time and whether one is set.
func RequestTimeFromCtx(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(requestTimeKey).(time.Time)
	return t, ok && !t.IsZero()
}

// NowFromCtx returns the pinned request time, or the wall clock if none is set.
func NowFromCtx(ctx context.Context) time.Time {
	if t, ok := RequestTimeFromCtx(ctx); ok {
		return t
	}
	return time.Now()
}
