package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAdmin = &Admin{
	ID:       "adm-1",
	Username: "astro_admin",
	Email:    "admin@example.com",
	Role:     RoleAdmin,
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("unit-secret")
	token, err := CreateAccessToken(secret, testAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseValidate(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "adm-1", claims.Sub)
	assert.Equal(t, "astro_admin", claims.Username)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestExpiredAndForgedTokensLookTheSame(t *testing.T) {
	secret := []byte("unit-secret")

	expired, err := CreateAccessToken(secret, testAdmin, -time.Minute)
	require.NoError(t, err)
	_, err = ParseValidate(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	forged, err := CreateAccessToken([]byte("attacker-secret"), testAdmin, time.Hour)
	require.NoError(t, err)
	_, err = ParseValidate(secret, forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseValidate(secret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(RoleAdmin, RoleAdmin, RoleSuperAdmin))
	assert.True(t, HasRole(RoleSuperAdmin, RoleAdmin, RoleSuperAdmin))
	assert.False(t, HasRole("viewer", RoleAdmin, RoleSuperAdmin))
	assert.False(t, HasRole("", RoleAdmin))
}
