package database_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/elections/internal/catalog"
	"github.com/jask/elections/internal/database"
	"github.com/jask/elections/internal/database/repository"
	"github.com/jask/elections/internal/election"
	"github.com/jask/elections/internal/testdata"
)

func openTestDB(t *testing.T, ctx context.Context) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "elections.db")
	db, err := database.Prepare(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeedCatalogRoundTrip(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t, ctx)

	fixture, err := catalog.Fixture()
	require.NoError(t, err)

	seeded, err := database.SeedCatalog(ctx, db, fixture)
	require.NoError(t, err)
	require.True(t, seeded)
	t.Log("catalog seeded")

	repo := repository.NewElectionRepo(db)
	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, fixture, got)

	// Second run must not duplicate or reorder anything.
	seeded, err = database.SeedCatalog(ctx, db, fixture)
	require.NoError(t, err)
	require.False(t, seeded)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(fixture), n)
}

func TestListKeepsCatalogOrderNotIDOrder(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t, ctx)

	records := []election.Record{
		testdata.Election("z", "Sénatoriales", testdata.Fixed("2029-09-23")),
		testdata.Election("a", "Municipales", testdata.Approx("2032-03"), testdata.Approx("2032-03")),
	}
	require.NoError(t, database.ReplaceCatalog(ctx, db, records))

	got, err := repository.NewElectionRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "z", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Len(t, got[1].Dates, 2)
	require.True(t, got[0].Dates[0].IsDateFixed)
	require.Empty(t, got[0].PreviousElection)
}

func TestReplaceCatalogRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t, ctx)

	good := []election.Record{testdata.Election("1", "Européennes", testdata.Fixed("2029-06-10"))}
	require.NoError(t, database.ReplaceCatalog(ctx, db, good))

	bad := testdata.Election("2", "Législatives", testdata.Fixed("2029-06-10"))
	bad.Rounds = 0 // violates CHECK (rounds > 0)
	err := database.ReplaceCatalog(ctx, db, []election.Record{bad})
	require.Error(t, err)

	got, err := repository.NewElectionRepo(db).List(ctx)
	require.NoError(t, err)
	require.Equal(t, good, got)
}

func TestReplaceCatalogFailsOnSharedID(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t, ctx)

	good := []election.Record{testdata.Election("1", "Européennes", testdata.Fixed("2029-06-10"))}
	require.NoError(t, database.ReplaceCatalog(ctx, db, good))

	err := database.ReplaceCatalog(ctx, db, []election.Record{
		testdata.Election("7", "Municipales", testdata.Fixed("2032-03-14")),
		testdata.Election("7", "Régionales", testdata.Fixed("2034-03-19")),
	})
	require.Error(t, err)

	got, err := repository.NewElectionRepo(db).List(ctx)
	require.NoError(t, err)
	require.Equal(t, good, got)
}
