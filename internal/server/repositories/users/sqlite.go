package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository stores users in SQLite. created_at is kept as Unix
// microseconds.
type SQLiteRepository struct {
	db dbx.DBTX
	// go-sqlite does not support concurrent writes
	writeLock *sync.Mutex
}

func NewSQLiteRepository(db dbx.DBTX, writeLock *sync.Mutex) *SQLiteRepository {
	if writeLock == nil {
		writeLock = new(sync.Mutex)
	}
	return &SQLiteRepository{db: db, writeLock: writeLock}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt.UTC().UnixMicro(),
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				return nil, fmt.Errorf("db error: %w", common.ErrorAlreadyExists)
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		user      models.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = time.UnixMicro(createdAt).UTC()
	return &user, nil
}
