package library

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is used when Watch gets a non-positive debounce.
const DefaultWatchDebounce = 2 * time.Second

// Watch rescans the library whenever a PDF appears in or is renamed into the
// directory. Bursts of events collapse into one scan after debounce of
// quiet. Watch blocks until ctx is done.
func (s *Service) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create library watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch library dir %s: %w", s.dir, err)
	}

	s.log.InfoContext(ctx, "watching library", slog.String("dir", s.dir), slog.Duration("debounce", debounce))

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !isDocument(event.Name) {
				continue
			}
			s.log.DebugContext(ctx, "library changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(debounce)
			pending = true

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.WarnContext(ctx, "library watcher error", slog.String("error", err.Error()))

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if _, err := s.Scan(ctx); err != nil && ctx.Err() == nil {
				s.log.ErrorContext(ctx, "library rescan failed", slog.String("error", err.Error()))
			}
		}
	}
}
