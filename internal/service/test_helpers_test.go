package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/snapcal/snapcal/internal/db"
	"github.com/snapcal/snapcal/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapcal.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func newTestRepo(t *testing.T) *store.Repository {
	t.Helper()
	return store.New(newTestDB(t))
}
