package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jask/elections/internal/catalog"
	"github.com/jask/elections/internal/election"
)

// CatalogService loads the catalog from a provider and vets every record
// before handing it to the UI.
type CatalogService struct {
	Provider catalog.Provider
	Logger   *slog.Logger
}

// Load returns the validated catalog. Any provider error, invalid record
// or duplicate id fails the whole load with catalog.ErrRetrieval.
func (s *CatalogService) Load(ctx context.Context) ([]election.Record, error) {
	log := s.logger()
	start := time.Now()

	if s.Provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", catalog.ErrRetrieval)
	}
	raw, err := s.Provider.Load(ctx)
	if err != nil {
		log.Error("catalog load failed", "error", err)
		return nil, fmt.Errorf("%w: %w", catalog.ErrRetrieval, err)
	}

	out, err := election.NewCatalog(raw)
	if err != nil {
		log.Error("catalog rejected", "records", len(raw), "error", err)
		return nil, fmt.Errorf("%w: %w", catalog.ErrRetrieval, err)
	}

	log.Info("catalog loaded", "records", len(out), "types", len(election.Types(out)), "elapsed", time.Since(start))
	return out, nil
}

func (s *CatalogService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
