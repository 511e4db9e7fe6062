package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/elections/internal/database"
	"github.com/jask/elections/internal/election"
)

// MaintenanceService houses destructive/ops actions on the catalog snapshot.
type MaintenanceService struct {
	DB *sql.DB
}

// Reseed replaces the stored catalog with records. The catalog is vetted
// the same way a load is, so a bad source never wipes a good snapshot.
func (s *MaintenanceService) Reseed(ctx context.Context, records []election.Record) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	vetted, err := election.NewCatalog(records)
	if err != nil {
		return fmt.Errorf("reseed: %w", err)
	}
	if err := database.ReplaceCatalog(ctx, s.DB, vetted); err != nil {
		return fmt.Errorf("reseed: %w", err)
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
