// Package auth holds the credential primitives: scrypt password hashing,
// bearer-token issue/verify, and password-reset tokens. The signing secret is
// injected at construction so nothing in this package touches the environment.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. Cost matches the defaults the stored hashes were
// created with, so changing them invalidates existing credentials.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 16
)

// HashPassword derives an scrypt hash and returns it as "salt:hash" with both
// parts hex-encoded.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(derived), nil
}

// VerifyPassword reports whether password matches a stored "salt:hash" value.
// Malformed stored values verify as false rather than erroring, so a corrupt
// row behaves like a wrong password.
func VerifyPassword(password, stored string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil || len(expected) != scryptKeyLen {
		return false
	}

	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(expected, derived) == 1
}
