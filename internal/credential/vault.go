// Package credential owns password hashing, verification and temporary
// password issuance for employee self-service accounts.
package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Algorithm names the key-derivation scheme stored in every hash
	// record so old records stay verifiable after a parameter bump.
	Algorithm  = "pbkdf2_sha256"
	Iterations = 100_000

	saltSize = 16
	keySize  = 32
)

// Hash derives a PBKDF2-HMAC-SHA256 key from the password under a fresh
// random salt and serializes algorithm, iteration count, salt and key as
// one self-describing string.
func Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, Iterations, keySize, sha256.New)

	return fmt.Sprintf("%s$%d$%s$%s",
		Algorithm,
		Iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives the key using the stored salt and iteration count and
// compares it to the stored key in constant time. Malformed records verify
// as false, never panic or error.
func Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != Algorithm {
		return false
	}

	iterations, err := strconv.Atoi(parts[1])
	if err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil || len(salt) == 0 {
		return false
	}

	stored, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(stored) == 0 {
		return false
	}

	derived := pbkdf2.Key([]byte(password), salt, iterations, len(stored), sha256.New)
	return subtle.ConstantTimeCompare(derived, stored) == 1
}
