// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile lookup, and
// mints access tokens for authenticated users.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/google/uuid"
)

// RegisterInput is the payload of a registration request. Empty fields are
// treated as missing.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports the missing fields as a *common.ValidationError, then
// checks name and email against common.MaxNameLength and
// common.MaxEmailLength.
func (in RegisterInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &common.ValidationError{Fields: missing}
	}

	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) > common.MaxNameLength {
		return fmt.Errorf("%w: name: %w", common.ErrorValidation, common.ErrFieldTooLong)
	}
	if utf8.RuneCountInString(normalizeEmail(in.Email)) > common.MaxEmailLength {
		return fmt.Errorf("%w: email: %w", common.ErrorValidation, common.ErrFieldTooLong)
	}
	return nil
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports the missing fields as a *common.ValidationError.
func (in LoginInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &common.ValidationError{Fields: missing}
	}
	return nil
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint tokens
// - GetProfile: resolve a bearer token to its user
type UserService struct {
	users  users.Repository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	logger logging.Logger

	now   func() time.Time
	newID func() string
}

// NewUserService wires the service to its credential store, hasher and
// token manager. A nil logger discards output.
func NewUserService(repo users.Repository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, logger logging.Logger) *UserService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &UserService{
		users:  repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "services/user"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register creates a user and returns it with a fresh access token. A
// duplicate email yields common.ErrorAlreadyExists; uniqueness is left to
// the store so concurrent registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.newID(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		// stores keep microseconds
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return &AuthResult{AccessToken: token, User: created}, nil
}

// Login verifies credentials and returns the user with a fresh access token.
// Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(in.Password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Debug(ctx, "user logged in", "user_id", user.ID)
	return &AuthResult{AccessToken: token, User: user}, nil
}

// Authenticate resolves an access token to its subject. Every failure
// matches common.ErrorUnauthorized and also the token cause
// (common.ErrTokenExpired or common.ErrInvalidToken).
func (s *UserService) Authenticate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrInvalidToken)
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return userID, nil
}

// GetUser returns the user with the given ID or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// GetProfile returns the user identified by token.
func (s *UserService) GetProfile(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
