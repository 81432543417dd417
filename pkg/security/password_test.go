package security

import (
	"strings"
	"testing"

	"github.com/kdhingra/meattrack-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig()

	encoded, err := HashPassword("correct horse", cfg)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := VerifyPassword("correct horse", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong horse", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", testPasswordConfig())
	require.Error(t, err)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}
