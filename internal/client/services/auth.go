// Package services contains application services for the userauth client.
// This file defines the authentication service: register and login against
// the server, and the locally saved session used by profile.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userauth/internal/client/client"
	"github.com/dmitrijs2005/userauth/internal/client/models"
	"github.com/dmitrijs2005/userauth/internal/client/repositories/session"
)

// ErrNotLoggedIn is returned by Profile when no session is saved.
var ErrNotLoggedIn = errors.New("not logged in, run login or register first")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: call the server and save the returned access token.
//   - Profile: fetch the current user with the saved token.
//   - Logout: forget the saved token.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
	now      func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, sessions session.Repository) AuthService {
	return &authService{client: c, sessions: sessions, now: time.Now}
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	res, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.save(ctx, res); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return a.client.Profile(ctx, s.AccessToken)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *authService) save(ctx context.Context, res *models.AuthResponse) error {
	err := a.sessions.Save(ctx, &session.Session{
		AccessToken: res.AccessToken,
		UserID:      res.User.ID,
		Email:       res.User.Email,
		SavedAt:     a.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}
