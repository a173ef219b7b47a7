package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/tracksheet/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func insertDashboard(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO dashboards (id, name, created_at) VALUES (?, ?, '2024-01-01T00:00:00Z')`, id, name)
	return err
}

func dashboardCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM dashboards`).Scan(&n))
	return n
}

func TestOpenDB_AppliesMigrations(t *testing.T) {
	database := openTestDB(t)

	v, err := db.SchemaVersion(database)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	for _, table := range []string{"dashboards", "activities", "taxonomy_entries"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenDB_MigrationsAreIdempotent(t *testing.T) {
	database := openTestDB(t)
	require.NoError(t, db.Migrate(database))
}

func TestOpenDB_FileBacked(t *testing.T) {
	path := t.TempDir() + "/nested/tracksheet.db"
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, 0, dashboardCount(t, reopened))
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertDashboard(ctx, tx, "d1", "Site A")
	})

	require.NoError(t, err)
	assert.Equal(t, 1, dashboardCount(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertDashboard(ctx, tx, "d1", "Site A"); err != nil {
			return err
		}
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, dashboardCount(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := openTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertDashboard(ctx, tx, "d1", "Site A")
			panic("boom")
		})
	})

	assert.Equal(t, 0, dashboardCount(t, database))
}

func TestForeignKeysEnforced(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO activities (id, dashboard_id, seq) VALUES ('a1', 'missing', 0)`)
	assert.Error(t, err)
}
