package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vvitsh/ticketstore/internal/common"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret", hash)

	require.NoError(t, CheckPassword("secret", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("secret")
	require.NoError(t, err)
	h2, err := HashPassword("secret")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "each hash must carry a fresh salt")
	require.NoError(t, CheckPassword("secret", h1))
	require.NoError(t, CheckPassword("secret", h2))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	err = CheckPassword("wrong", hash)
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("secret", "not-a-bcrypt-hash")
	require.ErrorIs(t, err, common.ErrInternal)
	require.NotErrorIs(t, err, common.ErrInvalidCredentials)
}
