package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash of a plain password at the given
// cost.  A non-positive cost falls back to the library default so a
// missing config value cannot silently produce weak hashes.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// The comparison is constant time; malformed hashes simply fail.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
