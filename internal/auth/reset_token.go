package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is how long a password reset token stays usable.
const ResetTokenTTL = time.Hour

const resetTokenBytes = 32

// GenerateResetToken returns a random 256-bit token and the digest that is
// persisted in its place.
func GenerateResetToken() (rawToken string, tokenHash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	rawToken = hex.EncodeToString(b)
	return rawToken, HashResetToken(rawToken), nil
}

// HashResetToken is the storage form of a raw reset token.
func HashResetToken(rawToken string) string {
	h := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(h[:])
}
