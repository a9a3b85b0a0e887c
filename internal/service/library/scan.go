package library

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

const documentExt = ".pdf"

// Scan registers every PDF in the library directory that is not yet known.
// New sources start as pending. Files already registered are counted but not
// touched, so a rescan never resets extraction state.
func (s *Service) Scan(ctx context.Context) (domain.ScanResult, error) {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("resolve library dir: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("read library dir %s: %w", dir, err)
	}

	known, err := s.knownPaths(ctx)
	if err != nil {
		return domain.ScanResult{}, err
	}

	result := domain.ScanResult{Sources: []domain.Source{}}
	for _, entry := range entries {
		if entry.IsDir() || !isDocument(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++

		path := filepath.Join(dir, entry.Name())
		if known[path] {
			continue
		}

		src, added, err := s.register(ctx, path)
		if err != nil {
			return result, err
		}
		if added {
			result.Added++
			result.Sources = append(result.Sources, src)
		}
	}

	s.log.InfoContext(ctx, "library scanned",
		slog.String("dir", dir),
		slog.Int("scanned", result.Scanned),
		slog.Int("added", result.Added),
	)

	return result, nil
}

func (s *Service) knownPaths(ctx context.Context) (map[string]bool, error) {
	sources, err := s.sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	known := make(map[string]bool, len(sources))
	for _, src := range sources {
		known[src.FilePath] = true
	}
	return known, nil
}

func (s *Service) register(ctx context.Context, path string) (domain.Source, bool, error) {
	in := domain.NewSource{
		Title:    titleFromFileName(path),
		FilePath: path,
	}

	hash, err := fileHash(path)
	if err != nil {
		s.log.WarnContext(ctx, "hash document", slog.String("path", path), slog.String("error", err.Error()))
	} else {
		in.FileHash = &hash
	}

	if s.meta != nil {
		meta, err := s.meta.Read(ctx, path)
		if err != nil {
			s.log.DebugContext(ctx, "read document metadata", slog.String("path", path), slog.String("error", err.Error()))
		} else {
			if t := strings.TrimSpace(meta.Title); t != "" {
				in.Title = t
			}
			if a := strings.TrimSpace(meta.Author); a != "" {
				in.Author = &a
			}
		}
	}

	src, added, err := s.sources.InsertIfAbsent(ctx, in)
	if err != nil {
		return domain.Source{}, false, fmt.Errorf("register %s: %w", path, err)
	}
	if added {
		s.log.InfoContext(ctx, "source added", slog.Int64("source_id", src.ID), slog.String("title", src.Title))
	}
	return src, added, nil
}

func isDocument(name string) bool {
	base := filepath.Base(name)
	return strings.EqualFold(filepath.Ext(base), documentExt) && !strings.HasPrefix(base, ".")
}

func titleFromFileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
