package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token: 32 random bytes,
// transmitted to the client as 64 hex characters.
const sessionTokenBytes = 32

// GenerateSessionToken creates a cryptographically random session token and
// its SHA-256 hash. The plaintext token goes into the client's cookie; only
// the hash is stored in the database.
func GenerateSessionToken() (token, hash string, err error) {
	tokenBytes := make([]byte, sessionTokenBytes)
	if _, err = rand.Read(tokenBytes); err != nil {
		return "", "", fmt.Errorf("error generating session token: %w", err)
	}

	token = hex.EncodeToString(tokenBytes)
	hash = HashSessionToken(token)

	return token, hash, nil
}

// HashSessionToken computes the hex-encoded SHA-256 hash of a session token.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// VerifySessionToken reports whether the plaintext token matches the stored
// hash. The comparison is constant-time.
func VerifySessionToken(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	computed := HashSessionToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
