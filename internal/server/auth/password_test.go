package auth

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashIsSaltedAndVerifies(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("correct horse")
	require.NoError(t, err)
	b, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.False(t, bytes.Equal(a, b), "two hashes of one password must differ")
	assert.True(t, h.Verify("correct horse", a))
	assert.True(t, h.Verify("correct horse", b))
	assert.False(t, h.Verify("wrong horse", a))
}

func TestPasswordHasher_MalformedHashFailsClosed(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("pw", nil))
	assert.False(t, h.Verify("pw", []byte("not-a-bcrypt-hash")))
}

func TestPasswordHasher_TooLongIsValidationError(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	_, err := h.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorValidation))
	assert.True(t, errors.Is(err, common.ErrPasswordTooLong))
}

func TestPasswordHasher_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	h.VerifyDummy("anything")
	h.VerifyDummy("again")
	require.NotEmpty(t, h.dummyHash)
}

func TestPasswordHasher_OverlongNeverVerifies(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	pw := strings.Repeat("a", maxPasswordBytes)
	hash, err := h.Hash(pw)
	require.NoError(t, err)

	assert.True(t, h.Verify(pw, hash))
	assert.False(t, h.Verify(pw+"WRONG-SUFFIX", hash))
	assert.False(t, h.Verify(pw+"a", hash))
	require.NotEmpty(t, h.dummyHash)
}

func TestPasswordHasher_VerifyDummyFallsBackOnGenerateError(t *testing.T) {
	orig := generateDummyHash
	t.Cleanup(func() { generateDummyHash = orig })
	generateDummyHash = func([]byte, int) ([]byte, error) {
		return nil, errors.New("no entropy")
	}

	h := NewPasswordHasher(bcrypt.MinCost)
	h.VerifyDummy("anything")
	assert.Equal(t, fallbackDummyHash, h.dummyHash)

	cost, err := bcrypt.Cost(h.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
