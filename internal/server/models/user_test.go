package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserView_OmitsPasswordHash(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	u := &User{
		ID:           "u-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: []byte("$2a$10$secret"),
		CreatedAt:    time.Date(2026, 1, 2, 15, 4, 5, 0, loc),
	}

	b, err := json.Marshal(u.View())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Len(t, got, 4)
	assert.Equal(t, "u-1", got["id"])
	assert.Equal(t, "Alice", got["name"])
	assert.Equal(t, "alice@example.com", got["email"])
	assert.Equal(t, "2026-01-02T12:04:05Z", got["created_at"])
	assert.NotContains(t, string(b), "secret")
}
