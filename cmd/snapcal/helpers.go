package snapcal

import (
	"database/sql"

	"github.com/snapcal/snapcal/internal/app"
	"github.com/snapcal/snapcal/internal/config"
	"github.com/snapcal/snapcal/internal/db"
	"github.com/snapcal/snapcal/internal/store"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func withRepo(run func(*store.Repository) error) error {
	return withDB(func(sqldb *sql.DB) error {
		return run(store.New(sqldb))
	})
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	cfg, err := config.Load()
	if err == nil && cfg.General.DBPath != "" {
		return cfg.General.DBPath, nil
	}
	return app.DefaultDBPath()
}
