//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres"
	extractrepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/extract"
	interactionrepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/interaction"
	sourcerepo "github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/source"
	"github.com/heartmarshall/bookfeed-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/bookfeed-backend/internal/adapter/provider/pdfmeta"
	"github.com/heartmarshall/bookfeed-backend/internal/config"
	"github.com/heartmarshall/bookfeed-backend/internal/domain"
	"github.com/heartmarshall/bookfeed-backend/internal/metrics"
	"github.com/heartmarshall/bookfeed-backend/internal/service/extraction"
	"github.com/heartmarshall/bookfeed-backend/internal/service/feed"
	"github.com/heartmarshall/bookfeed-backend/internal/service/interaction"
	"github.com/heartmarshall/bookfeed-backend/internal/service/library"
	"github.com/heartmarshall/bookfeed-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookfeed-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// scriptedAnalyzer answers every job immediately with a fixed quote list,
// or fails it with failMessage.
// ---------------------------------------------------------------------------

type scriptedAnalyzer struct {
	mu          sync.Mutex
	quotes      []domain.CandidateQuote
	failMessage string
	submitted   []domain.Document
}

func (a *scriptedAnalyzer) set(quotes []domain.CandidateQuote, failMessage string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.quotes = quotes
	a.failMessage = failMessage
}

func (a *scriptedAnalyzer) Submit(_ context.Context, doc domain.Document) (domain.JobHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitted = append(a.submitted, doc)
	return domain.JobHandle("job"), nil
}

func (a *scriptedAnalyzer) Poll(_ context.Context, _ domain.JobHandle) (domain.JobStatus, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failMessage != "" {
		return domain.JobStatus{State: domain.JobStateFailed, Message: a.failMessage}, nil
	}
	return domain.JobStatus{State: domain.JobStateReady}, nil
}

func (a *scriptedAnalyzer) Fetch(_ context.Context, _ domain.JobHandle) ([]domain.CandidateQuote, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.CandidateQuote(nil), a.quotes...), nil
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL        string
	Client     *http.Client
	Pool       *pgxpool.Pool
	LibraryDir string
	Analyzer   *scriptedAnalyzer
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack on an empty database
// and an empty library folder.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	_, err := pool.Exec(context.Background(), `TRUNCATE interactions, extracts, sources RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	dir := t.TempDir()

	sources := sourcerepo.New(pool)
	extracts := extractrepo.New(pool)
	interactions := interactionrepo.New(pool)
	txm := postgres.NewTxManager(pool)
	collector := metrics.New("bookfeed")
	analyzer := &scriptedAnalyzer{}

	librarySvc := library.NewService(logger, sources, extracts, pdfmeta.NewReader(logger), dir)
	feedSvc := feed.NewService(logger, extracts, domain.DefaultFeedPolicy(), nil)
	interactionSvc := interaction.NewService(logger, extracts, interactions, txm)
	extractionSvc := extraction.NewService(logger, sources, extracts, analyzer, collector, extraction.Config{
		PollInterval: 5 * time.Millisecond,
		Timeout:      5 * time.Second,
	})

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, dir, "test-version"),
		Feed:         rest.NewFeedHandler(feedSvc, interactionSvc, logger),
		Extract:      rest.NewExtractHandler(librarySvc, interactionSvc, logger),
		Source:       rest.NewSourceHandler(librarySvc, extractionSvc, logger),
		Metrics:      collector.Handler(),
		ExtractLimit: limiter.Limit(100),
	})

	handler := middleware.Stack(middleware.StackDeps{
		Logger: logger,
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		},
		Metrics: collector,
		Now:     time.Now,
	})(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:        srv.URL,
		Client:     srv.Client(),
		Pool:       pool,
		LibraryDir: dir,
		Analyzer:   analyzer,
	}
}

// addDocument drops a file into the library folder.
func (ts *testServer) addDocument(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ts.LibraryDir, name), []byte("%PDF-1.4 "+name), 0o644))
}

// call sends a JSON request and decodes the JSON response into a map.
func (ts *testServer) call(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

// ids collects the "id" field of every object in list.
func ids(t *testing.T, list any) []int64 {
	t.Helper()

	items, ok := list.([]any)
	require.True(t, ok, "expected array, got %T", list)

	out := make([]int64, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		require.True(t, ok)
		out = append(out, int64(m["id"].(float64)))
	}
	return out
}

func quote(text, category string) domain.CandidateQuote {
	return domain.CandidateQuote{Quote: text, Category: domain.Category(category)}
}
