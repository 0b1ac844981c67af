package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPassword(t *testing.T) {
	bcryptHash, err := HashPassword("hunter22")
	require.NoError(t, err)

	tests := []struct {
		name     string
		provided string
		stored   string
		want     bool
	}{
		{"plaintext match", "password123", "password123", true},
		{"plaintext mismatch", "password124", "password123", false},
		{"empty stored", "", "", false},
		{"pbkdf2 match", "secret123", "$pbkdf2-sha256$29000$AQIDBAUGBwgJCgsMDQ4PEA$oy0z1fVzr0sxTtK9rKQ/R2Qh5bj0Zvd.E8ozvQndnEw", true},
		{"pbkdf2 mismatch", "secret124", "$pbkdf2-sha256$29000$AQIDBAUGBwgJCgsMDQ4PEA$oy0z1fVzr0sxTtK9rKQ/R2Qh5bj0Zvd.E8ozvQndnEw", false},
		{"pbkdf2 seed user", "test123456", "$pbkdf2-sha256$29000$AQIDBAUGBwgJCgsMDQ4PEA$TLk0LX1ai/W05Puwu2v3xrjXvUQljfE55TaoiaoJWtk", true},
		{"pbkdf2 malformed rounds", "secret123", "$pbkdf2-sha256$abc$AQIDBAUGBwgJCgsMDQ4PEA$oy0z1fVzr0sxTtK9rKQ/R2Qh5bj0Zvd.E8ozvQndnEw", false},
		{"pbkdf2 missing checksum", "secret123", "$pbkdf2-sha256$29000$AQIDBAUGBwgJCgsMDQ4PEA", false},
		{"bcrypt match", "hunter22", bcryptHash, true},
		{"bcrypt mismatch", "hunter23", bcryptHash, false},
		{"unknown scheme", "x", "$argon2id$whatever", false},
		{"hash string used as plaintext", bcryptHash, bcryptHash, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.provided, tt.stored))
		})
	}
}
