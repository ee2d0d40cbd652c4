package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecureRandomString returns a URL-safe random string of byteLen
// random bytes, used for opaque refresh tokens.
func GenerateSecureRandomString(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
