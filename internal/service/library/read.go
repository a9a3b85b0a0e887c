package library

import (
	"context"
	"fmt"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// ListSources returns every registered source, newest first.
func (s *Service) ListSources(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

// GetSource returns a source with all of its extracts.
func (s *Service) GetSource(ctx context.Context, id int64) (domain.SourceWithExtracts, error) {
	if id <= 0 {
		return domain.SourceWithExtracts{}, domain.NewValidationError("id", "required")
	}

	src, err := s.sources.GetByID(ctx, id)
	if err != nil {
		return domain.SourceWithExtracts{}, err
	}

	extracts, err := s.extracts.ListBySource(ctx, id)
	if err != nil {
		return domain.SourceWithExtracts{}, fmt.Errorf("list extracts of source %d: %w", id, err)
	}

	return domain.SourceWithExtracts{Source: src, Extracts: extracts}, nil
}

func (s *Service) GetExtract(ctx context.Context, id int64) (domain.ExtractWithSource, error) {
	if id <= 0 {
		return domain.ExtractWithSource{}, domain.NewValidationError("id", "required")
	}
	return s.extracts.GetByID(ctx, id)
}

func (s *Service) ListBookmarked(ctx context.Context) ([]domain.ExtractWithSource, error) {
	return s.extracts.ListBookmarked(ctx)
}
