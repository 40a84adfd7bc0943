package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/userauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// fallbackDummyHash is a valid cost-10 bcrypt hash, used if the dummy hash
// cannot be generated.
var fallbackDummyHash = []byte("$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga")

// generateDummyHash is a seam for tests.
var generateDummyHash = bcrypt.GenerateFromPassword

var errPasswordTooLong = fmt.Errorf("%w: %w", common.ErrorValidation, common.ErrPasswordTooLong)

// PasswordHasher hashes passwords with bcrypt. Every Hash call draws a fresh
// salt, which bcrypt embeds in its output.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Out of range
// costs fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns an opaque salted hash of password.
func (h *PasswordHasher) Hash(password string) ([]byte, error) {
	if len(password) > maxPasswordBytes {
		return nil, errPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether password matches hash. Malformed hashes never match.
// Passwords over the bcrypt input limit never match either, since bcrypt
// would compare only their first 72 bytes.
func (h *PasswordHasher) Verify(password string, hash []byte) bool {
	if len(password) > maxPasswordBytes {
		h.VerifyDummy(password)
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// VerifyDummy burns the same CPU as Verify against a throwaway hash, so a
// lookup miss is not distinguishable by timing from a wrong password.
func (h *PasswordHasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		hash, err := generateDummyHash([]byte("dummy-password"), h.cost)
		if err != nil {
			hash = fallbackDummyHash
		}
		h.dummyHash = hash
	})
	pw := []byte(password)
	if len(pw) > maxPasswordBytes {
		pw = pw[:maxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, pw)
}
