// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	valid, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	t.Run("known account", func(t *testing.T) {
		valid, _, err := VerifyPasswordTimingSafe("secret", &hash)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("unknown account never verifies", func(t *testing.T) {
		valid, rehash, err := VerifyPasswordTimingSafe("secret", nil)
		require.NoError(t, err)
		assert.False(t, valid)
		assert.Empty(t, rehash)
	})

	t.Run("empty stored hash never verifies", func(t *testing.T) {
		empty := ""
		valid, _, err := VerifyPasswordTimingSafe("secret", &empty)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestGenerateVerificationToken(t *testing.T) {
	token, err := GenerateVerificationToken()
	require.NoError(t, err)

	// 20 random bytes, hex encoded.
	assert.Len(t, token, 40)

	other, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestParseRole(t *testing.T) {
	for _, name := range []string{"admin", "creator", "reader"} {
		role, err := ParseRole(name)
		require.NoError(t, err)
		assert.Equal(t, name, role.String())
		assert.True(t, role.Valid())
	}

	_, err := ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, Role("superuser").Valid())
}
