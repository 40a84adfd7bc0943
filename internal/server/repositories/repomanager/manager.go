// Package repomanager opens the configured storage backend, bootstraps its
// schema and vends repositories bound to it.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type RepositoryManager interface {
	Driver() dbx.Driver
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Users() users.Repository
	Close() error
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// New picks the backend from the DSN scheme (see dbx.ParseDSN), opens it and
// checks connectivity. Migrations are not run; call RunMigrations.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	driver, source, err := dbx.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	if driver == dbx.DriverMemory {
		return NewInMemoryRepositoryManager(), nil
	}

	db, err := sqlOpen(string(driver), source)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return NewSQLRepositoryManager(db, driver)
}
