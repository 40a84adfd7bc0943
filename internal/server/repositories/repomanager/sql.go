package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/migrations"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
)

// SQLRepositoryManager serves PostgreSQL and SQLite. It owns the *sql.DB.
type SQLRepositoryManager struct {
	db     *sql.DB
	driver dbx.Driver
	users  users.Repository
}

// migrate is a seam for tests.
var migrate = migrations.Up

// NewSQLRepositoryManager wraps an open database handle.
func NewSQLRepositoryManager(db *sql.DB, driver dbx.Driver) (*SQLRepositoryManager, error) {
	m := &SQLRepositoryManager{db: db, driver: driver}

	switch driver {
	case dbx.DriverPostgres:
		m.users = users.NewPostgresRepository(db)
	case dbx.DriverSQLite:
		m.users = users.NewSQLiteRepository(db, new(sync.Mutex))
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}

	return m, nil
}

func (m *SQLRepositoryManager) Driver() dbx.Driver {
	return m.driver
}

// RunMigrations applies the embedded schema for this manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := migrate(ctx, m.db, m.driver); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}
