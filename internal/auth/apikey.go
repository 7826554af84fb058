// Package auth holds the shared-secret API key check and the Firebase
// Admin SDK bootstrap.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// DeriveAPIKey turns the server secret into the key clients must present:
// SHA-256, base64url without padding.
func DeriveAPIKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// KeyMatches compares in constant time.
func KeyMatches(expected, given string) bool {
	if given == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}
