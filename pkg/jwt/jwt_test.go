package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret-key")

	token, err := service.GenerateToken("user-123", RoleMember)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, RoleMember, claims.Role)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestValidateToken_Rejects(t *testing.T) {
	service := NewService("secret-key-1")
	other := NewService("secret-key-2")

	foreign, err := other.GenerateToken("user-123", RoleAdmin)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"garbage":      "invalid-token",
		"wrong secret": foreign,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := service.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	service := NewService("test-secret-key")
	service.ttl = -time.Minute

	token, err := service.GenerateToken("user-123", RoleMember)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
