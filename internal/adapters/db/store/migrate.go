package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations applies the embedded migrations for the dialect db was opened
// with.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	dialect, dir, err := migrationTarget(db.Dialector.Name())
	if err != nil {
		return err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}

	return nil
}

// MigrationVersion reports the latest applied migration.
func MigrationVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	dialect, _, err := migrationTarget(db.Dialector.Name())
	if err != nil {
		return 0, err
	}
	if err := goose.SetDialect(dialect); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

func migrationTarget(name string) (dialect, dir string, err error) {
	switch name {
	case "sqlite":
		return "sqlite3", "migrations/sqlite", nil
	case "postgres":
		return "postgres", "migrations/postgres", nil
	}
	return "", "", fmt.Errorf("no migrations for database dialect %q", name)
}
