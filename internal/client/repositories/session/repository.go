// Package session persists the CLI login session (the access token and the
// identity it belongs to) between invocations.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned by Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	SavedAt     time.Time `json:"saved_at"`
}

type Repository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
