// Package pdfmeta reads the document information dictionary of PDF files.
package pdfmeta

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

func init() {
	// Keep pdfcpu from creating a config directory under $HOME.
	api.DisableConfigDir()
}

// Reader extracts title, author and page count with pdfcpu.
type Reader struct {
	conf *model.Configuration
	log  *slog.Logger
}

// NewReader creates a Reader with relaxed validation, so slightly
// malformed files found in the wild still yield metadata.
func NewReader(logger *slog.Logger) *Reader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Reader{
		conf: conf,
		log:  logger.With("adapter", "pdfmeta"),
	}
}

// Read parses the file at path. Missing metadata fields are returned empty.
func (r *Reader) Read(ctx context.Context, path string) (domain.DocumentMeta, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentMeta{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.DocumentMeta{}, fmt.Errorf("pdfmeta: open: %w", err)
	}
	defer f.Close()

	pdf, err := api.ReadValidateAndOptimize(f, r.conf)
	if err != nil {
		return domain.DocumentMeta{}, fmt.Errorf("pdfmeta: read %s: %w", path, err)
	}

	meta := domain.DocumentMeta{
		Title:     clean(pdf.Title),
		Author:    clean(pdf.Author),
		PageCount: pdf.PageCount,
	}

	r.log.DebugContext(ctx, "pdf metadata",
		slog.String("path", path),
		slog.String("title", meta.Title),
		slog.Int("pages", meta.PageCount),
	)

	return meta, nil
}

// clean trims whitespace and NUL padding some producers leave in info strings.
func clean(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
