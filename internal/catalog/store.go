package catalog

import (
	"context"

	"github.com/jask/elections/internal/database/repository"
	"github.com/jask/elections/internal/election"
)

// StoreProvider reads the catalog snapshot kept in SQLite.
type StoreProvider struct {
	Elections *repository.ElectionRepo
}

func (p StoreProvider) Load(ctx context.Context) ([]election.Record, error) {
	return p.Elections.List(ctx)
}
