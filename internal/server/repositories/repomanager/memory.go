package repomanager

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
)

// InMemoryRepositoryManager backs the memory:// DSN. Data lives as long as
// the process.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Driver() dbx.Driver                  { return dbx.DriverMemory }
func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *InMemoryRepositoryManager) Users() users.Repository             { return m.users }
func (m *InMemoryRepositoryManager) Close() error                        { return nil }
