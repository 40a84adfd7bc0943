// Package auth holds the credential primitives: bcrypt password hashing and
// HS256 access tokens.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the validity window of an access token.
const DefaultAccessTokenTTL = time.Hour

// Claims are the registered claims of an access token; Subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access tokens signed with a shared secret.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenManager builds a TokenManager. A non-positive ttl falls back to
// DefaultAccessTokenTTL; a nil now falls back to time.Now.
func NewTokenManager(secretKey []byte, ttl time.Duration, now func() time.Time) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenManager{secretKey: secretKey, ttl: ttl, now: now}
}

// TTL reports how long issued tokens stay valid.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for userID that expires TTL from now.
func (m *TokenManager) Issue(userID string) (string, error) {
	return GenerateToken(userID, m.secretKey, m.ttl, m.now())
}

// Verify checks signature and expiry and returns the subject.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	return GetUserIDFromToken(tokenString, m.secretKey, m.now)
}

// GenerateToken signs an HS256 token for userID valid from issuedAt for validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken parses tokenString and returns its subject.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte, now func() time.Time) (string, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
