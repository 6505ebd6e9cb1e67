package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastParams keeps hashing cheap in tests while staying valid argon2id input.
func fastParams() Params {
	return Params{
		MemoryKiB:   8 * 1024,
		Iterations:  1,
		Parallelism: 1,
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("Password123", fastParams())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash should be self-describing")
	assert.NotContains(t, hash, "Password123")

	assert.NoError(t, CheckPassword("Password123", hash))
	assert.ErrorIs(t, CheckPassword("WrongPassword1", hash), ErrPasswordMismatch)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("Password123", fastParams())
	require.NoError(t, err)
	h2, err := HashPassword("Password123", fastParams())
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "same password must hash differently per salt")
}

func TestCheckPassword_CostFromHash(t *testing.T) {
	// Verification reads the cost from the stored hash, so hashes survive a
	// config change.
	p := fastParams()
	p.Iterations = 2
	hash, err := HashPassword("Password123", p)
	require.NoError(t, err)

	assert.NoError(t, CheckPassword("Password123", hash))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2id", "$2a$10$abcdefghijklmnopqrstuv"},
		{"truncated", "$argon2id$v=19$m=8192,t=1,p=1"},
		{"bad base64 salt", "$argon2id$v=19$m=8192,t=1,p=1$!!!$AAAA"},
		{"bad version", "$argon2id$v=18$m=8192,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CheckPassword("Password123", tt.hash), ErrInvalidHash)
		})
	}
}

func TestIsAcceptable(t *testing.T) {
	assert.True(t, IsAcceptable("12345678"))
	assert.True(t, IsAcceptable("a long passphrase"))
	assert.False(t, IsAcceptable(""))
	assert.False(t, IsAcceptable("short"))
}
