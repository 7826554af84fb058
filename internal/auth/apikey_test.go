package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAPIKey(t *testing.T) {
	key := DeriveAPIKey("segredo")

	sum := sha256.Sum256([]byte("segredo"))
	want := strings.TrimRight(base64.URLEncoding.EncodeToString(sum[:]), "=")
	assert.Equal(t, want, key)
	assert.NotContains(t, key, "=")
	assert.Equal(t, key, DeriveAPIKey("segredo"))
	assert.NotEqual(t, key, DeriveAPIKey("outro"))
}

func TestKeyMatches(t *testing.T) {
	key := DeriveAPIKey("segredo")
	assert.True(t, KeyMatches(key, key))
	assert.False(t, KeyMatches(key, ""))
	assert.False(t, KeyMatches(key, key+"x"))
	assert.False(t, KeyMatches("", ""))
}
