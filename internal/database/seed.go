package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/elections/internal/database/repository"
	"github.com/jask/elections/internal/election"
)

// SeedCatalog stores records when the snapshot is empty. It is idempotent
// and safe to run on every startup.
func SeedCatalog(ctx context.Context, db *sql.DB, records []election.Record) (bool, error) {
	n, err := repository.NewElectionRepo(db).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count elections: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	return true, ReplaceCatalog(ctx, db, records)
}

// ReplaceCatalog swaps the whole snapshot for records in one transaction.
// Records sharing an id fail the transaction and leave the old snapshot.
func ReplaceCatalog(ctx context.Context, db *sql.DB, records []election.Record) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		repo := repository.NewElectionRepo(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		for i, r := range records {
			if err := repo.Insert(ctx, r, i); err != nil {
				return err
			}
		}
		return nil
	})
}
