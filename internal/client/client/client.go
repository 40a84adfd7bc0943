package client

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/client/models"
)

// Client is the API contract of the auth server.
type Client interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.AuthResponse, error)
	Login(ctx context.Context, email string, password []byte) (*models.AuthResponse, error)
	Profile(ctx context.Context, accessToken string) (*models.User, error)
	Health(ctx context.Context) error
}
