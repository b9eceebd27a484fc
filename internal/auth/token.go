package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// SessionTokenBytes is the entropy of a session token (256 bits)
	SessionTokenBytes = 32

	// MinTokenLength is the shortest cookie value the page guard accepts.
	// A shape check only; real validation is the session store lookup.
	MinTokenLength = 10
)

// GenerateSessionToken mints an opaque session token: 32 random bytes,
// hex-encoded to 64 characters.
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
