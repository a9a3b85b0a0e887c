// Command extract scans the library folder and runs quote extraction for
// every pending or errored source, one at a time. It is intended to be run
// by hand or from cron, not alongside a busy server.
//
// Flags:
//
//	-source N     extract only source N
//	-reset-stuck  move sources stuck in processing back to pending first
//	-scan=false   skip the library scan
//
// Exit codes: 0 = success, 1 = error, 2 = some sources failed.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/bookfeed-backend/internal/app"
	"github.com/heartmarshall/bookfeed-backend/internal/config"
)

func main() {
	sourceID := flag.Int64("source", 0, "extract a single source by id")
	resetStuck := flag.Bool("reset-stuck", false, "reset sources stuck in processing before running")
	scan := flag.Bool("scan", true, "scan the library folder before extracting")
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		stop()
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}

	code := run(ctx, c, logger, *sourceID, *resetStuck, *scan)
	c.Close()
	stop()
	os.Exit(code)
}

func run(ctx context.Context, c *app.Container, logger *slog.Logger, sourceID int64, resetStuck, scan bool) int {
	if resetStuck {
		n, err := c.Extraction.ResetStuck(ctx)
		if err != nil {
			logger.Error("reset stuck sources", slog.String("error", err.Error()))
			return 1
		}
		logger.Info("stuck sources reset", slog.Int64("count", n))
	}

	if scan {
		res, err := c.Library.Scan(ctx)
		if err != nil {
			logger.Error("library scan", slog.String("error", err.Error()))
			return 1
		}
		logger.Info("library scanned", slog.Int("scanned", res.Scanned), slog.Int("added", res.Added))
	}

	if sourceID > 0 {
		res, err := c.Extraction.Extract(ctx, sourceID)
		if err != nil {
			logger.Error("extraction failed", slog.Int64("source_id", sourceID), slog.String("error", err.Error()))
			return 1
		}
		logger.Info("extraction completed",
			slog.Int64("source_id", sourceID),
			slog.Int("extracted", res.Extracted),
			slog.Int("duplicates", res.Duplicates),
			slog.Int("total", res.Total),
		)
		return 0
	}

	items, err := c.Extraction.ExtractPending(ctx)
	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
			logger.Warn("source failed",
				slog.Int64("source_id", it.Source.ID),
				slog.String("title", it.Source.Title),
				slog.String("error", it.Err.Error()),
			)
			continue
		}
		logger.Info("source extracted",
			slog.Int64("source_id", it.Source.ID),
			slog.String("title", it.Source.Title),
			slog.Int("extracted", it.Result.Extracted),
			slog.Int("duplicates", it.Result.Duplicates),
		)
	}
	if err != nil {
		logger.Error("batch interrupted", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("batch completed", slog.Int("sources", len(items)), slog.Int("failed", failed))
	if failed > 0 {
		return 2
	}
	return 0
}
