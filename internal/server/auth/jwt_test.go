package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	userID := "user-123"

	tok, err := GenerateToken(userID, secret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotUserID, err := GetUserIDFromToken(tok, secret, nil)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestTokenManager_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := NewTokenManager([]byte("secret"), time.Hour, clock.Now)

	tok, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	clock.t = clock.t.Add(59 * time.Minute)
	if id, err := m.Verify(tok); err != nil || id != "u1" {
		t.Fatalf("before expiry: got (%q, %v)", id, err)
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if _, err := m.Verify(tok); err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestTokenManager_Defaults(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("k"), 0, nil)
	if m.TTL() != DefaultAccessTokenTTL {
		t.Fatalf("ttl: got %v want %v", m.TTL(), DefaultAccessTokenTTL)
	}
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, secret, nil)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(tok, []byte("wrong-secret"), nil)
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_Tampered(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u3", secret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	forged, err := GenerateToken("someone-else", []byte("other"), time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	// Claims of another token, signature of the original.
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	if _, err := GetUserIDFromToken(tampered, secret, nil); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := GetUserIDFromToken(in, []byte("k"), nil); err != common.ErrInvalidToken {
			t.Fatalf("%q: expected common.ErrInvalidToken, got %v", in, err)
		}
	}
}

func TestGetUserIDFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u4",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := GetUserIDFromToken(s, secret, nil); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetUserIDFromToken_RequiresExpiryAndSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u5"},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}
	if _, err := GetUserIDFromToken(noExp, secret, nil); err != common.ErrInvalidToken {
		t.Fatalf("no exp: expected common.ErrInvalidToken, got %v", err)
	}

	noSub, err := GenerateToken("", secret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if _, err := GetUserIDFromToken(noSub, secret, nil); err != common.ErrInvalidToken {
		t.Fatalf("no sub: expected common.ErrInvalidToken, got %v", err)
	}
}
