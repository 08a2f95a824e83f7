package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// refreshTokenBytes is the number of random bytes in a refresh token.
const refreshTokenBytes = 64

// GenerateRefreshToken returns an opaque random token: 64 bytes from a
// cryptographic source, base64-encoded.
//
// Refresh tokens are currently generated but not persisted, so they cannot be
// redeemed; RefreshToken on the auth service reports the feature as
// unimplemented.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// uuidFromSubject parses the JWT subject claim back into a user ID.
func uuidFromSubject(subject string) (uuid.UUID, error) {
	return uuid.Parse(subject)
}
