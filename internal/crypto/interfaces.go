// Package crypto provides credential-hashing primitives for the portal.
//
// The only abstraction is [PasswordHasher]: services depend on the interface
// so tests can substitute a cheap implementation and the hashing scheme can
// be swapped without touching business logic.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash produces a salted hash of the plaintext password,
	// suitable for storage in the users table.
	Hash(password string) (string, error)

	// Verify reports whether the plaintext password matches the stored hash.
	// A mismatch is (false, nil); an error means the hash is malformed or
	// verification could not run.
	Verify(password, hash string) (bool, error)
}
