package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/config"
	"github.com/heartmarshall/bookfeed-backend/internal/transport/middleware"
	"github.com/heartmarshall/bookfeed-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// services, optionally scans and watches the library folder, and serves HTTP
// until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("library_dir", cfg.Library.Dir),
	)

	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer c.Close()

	if cfg.Library.ScanOnStart {
		res, err := c.Library.Scan(ctx)
		if err != nil {
			logger.Warn("initial library scan failed", slog.String("error", err.Error()))
		} else {
			logger.Info("library scanned", slog.Int("scanned", res.Scanned), slog.Int("added", res.Added))
		}
	}

	bgCtx, stopBackground := context.WithCancel(ctx)
	var bg sync.WaitGroup
	if cfg.Library.Watch {
		bg.Add(1)
		go func() {
			defer bg.Done()
			if err := c.Library.Watch(bgCtx, cfg.Library.WatchDebounce); err != nil {
				logger.Error("library watcher stopped", slog.String("error", err.Error()))
			}
		}()
	}
	defer func() {
		stopBackground()
		bg.Wait()
	}()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	mux := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(c.Pool, cfg.Library.Dir, BuildVersion()),
		Feed:         rest.NewFeedHandler(c.Feed, c.Interaction, logger),
		Extract:      rest.NewExtractHandler(c.Library, c.Interaction, logger),
		Source:       rest.NewSourceHandler(c.Library, c.Extraction, logger),
		Metrics:      c.Metrics.Handler(),
		ExtractLimit: limiter.Limit(cfg.RateLimit.ExtractPerMinute),
	})

	handler := middleware.Stack(middleware.StackDeps{
		Logger:  logger,
		CORS:    cfg.CORS,
		Metrics: c.Metrics,
		Now:     time.Now,
	})(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server.ShutdownTimeout, logger)
}

// serve runs srv until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
