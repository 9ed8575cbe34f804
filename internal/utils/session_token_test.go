package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateSessionToken_Shape verifies token and hash lengths (32 random
// bytes hex-encoded, SHA-256 hash hex-encoded).
func TestGenerateSessionToken_Shape(t *testing.T) {
	token, hash, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.Len(t, token, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, token, hash)
}

// TestGenerateSessionToken_Unique verifies that consecutive tokens differ.
func TestGenerateSessionToken_Unique(t *testing.T) {
	first, _, err := GenerateSessionToken()
	require.NoError(t, err)
	second, _, err := GenerateSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// TestHashSessionToken_Deterministic verifies that hashing is stable.
func TestHashSessionToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashSessionToken("abc"), HashSessionToken("abc"))
	assert.NotEqual(t, HashSessionToken("abc"), HashSessionToken("abd"))
}

// TestVerifySessionToken covers match, mismatch, and empty-input cases.
func TestVerifySessionToken(t *testing.T) {
	token, hash, err := GenerateSessionToken()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		hash  string
		want  bool
	}{
		{"valid token → true", token, hash, true},
		{"wrong token → false", "deadbeef", hash, false},
		{"empty token → false", "", hash, false},
		{"empty hash → false", token, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySessionToken(tt.token, tt.hash))
		})
	}
}
