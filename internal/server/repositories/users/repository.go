// Package users is the credential store: persistence of identity records
// with storage-enforced email uniqueness.
package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// Repository persists users. Implementations must reject a second user with
// an existing email with common.ErrorAlreadyExists, atomically with the
// insert, and report missing users with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
