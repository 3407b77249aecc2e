// Package auth implements credential verification: scrypt password hashing
// and time-based one-time passcodes for session elevation.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N is the CPU/memory cost; the derived key is 32 bytes
// stored as 64 hex characters.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

// GenerateSalt returns a new random hex-encoded salt.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives the hex-encoded scrypt hash of password under salt.
func HashPassword(password, salt string) (string, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the stored hash/salt pair.
// The comparison is constant-time; a malformed stored hash verifies as false.
func VerifyPassword(password, storedHash, salt string) bool {
	expected, err := hex.DecodeString(storedHash)
	if err != nil || len(expected) != scryptKeyLen {
		return false
	}

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(expected, key) == 1
}
