// Package migrations embeds the schema for each supported SQL dialect and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for driver.
func Up(ctx context.Context, db *sql.DB, driver dbx.Driver) error {
	dialect, dir, err := dialectFor(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Files lists the embedded migration files for driver.
func Files(driver dbx.Driver) ([]string, error) {
	_, dir, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return fs.Glob(Migrations, dir+"/*.sql")
}

func dialectFor(driver dbx.Driver) (dialect, dir string, err error) {
	switch driver {
	case dbx.DriverPostgres:
		return "pgx", "postgres", nil
	case dbx.DriverSQLite:
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}
