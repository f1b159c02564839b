// Package password derives and verifies salted PBKDF2 password hashes.
//
// Stored format: hex(salt) + ":" + hex(derivedKey), with a fresh 16-byte
// random salt per hash and a 256-bit key derived over 100,000 iterations of
// PBKDF2-HMAC-SHA256.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	iterations = 100_000
	saltLength = 16
	keyLength  = 32
)

// Hash derives a stored hash for the given password.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether password matches storedHash. It fails closed: any
// malformed stored hash verifies as false, never errors.
func Verify(password, storedHash string) bool {
	saltHex, keyHex, found := strings.Cut(storedHash, ":")
	if !found || saltHex == "" || keyHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
