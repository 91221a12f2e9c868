package model

import "time"

// ResetToken models an entry in the `reset_tokens` table.  The plain
// token is mailed to the user and never stored; only its SHA-256 hex
// digest lands in TokenHash.  Revoked flips to true the moment the
// token authorizes a password change, so a token can never be spent
// twice.
type ResetToken struct {
	ID        uint64
	UserID    string
	TokenHash string
	Revoked   bool
	CreatedAt time.Time
}
