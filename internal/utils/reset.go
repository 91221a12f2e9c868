package utils

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for reset tokens
	"encoding/hex"  // hex encoding of random bytes and digests
)

// NewResetToken returns a 32-byte cryptographically random token,
// hex-encoded to 64 characters.  Predictability here would allow
// account takeover, so math/rand is never acceptable.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashResetRaw returns the SHA-256 hash of the raw reset token as a hex
// string.  Only the hash is persisted, so a leaked database cannot be
// used to reset passwords.
func HashResetRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
