package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays valid.
const ResetTokenTTL = 30 * time.Minute

// NewResetToken generates a password-reset token. The raw value goes to the
// user; only the hash is stored, so a leaked database row cannot be replayed.
func NewResetToken() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, HashResetToken(raw), nil
}

// HashResetToken maps a raw reset token to its stored form.
func HashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
