package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_SecretsNotSerialized(t *testing.T) {
	code := "a1b2c3"
	u := &User{
		ID:             "id-1",
		Username:       "alice",
		Email:          "alice@example.com",
		Name:           "Alice",
		PasswordHash:   "$2a$10$hash",
		ActivationCode: &code,
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.NotContains(t, string(raw), code)

	raw, err = json.Marshal(u.Profile())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "activation")
	assert.Contains(t, string(raw), `"username":"alice"`)
	assert.Contains(t, string(raw), `"is_active":false`)
}
