package ai

import (
	"crypto/hmac"
	"crypto/sha256"
)

// VerifyToken compares a shared-secret token in constant time
func VerifyToken(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	expected := sha256.Sum256([]byte(secret))
	got := sha256.Sum256([]byte(token))
	return hmac.Equal(expected[:], got[:])
}
