package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ResetTokenRepo persists password reset tokens.  Only the SHA-256 hash
// of the token value is stored; validation is a lookup by hash.
type ResetTokenRepo struct{ DB *sql.DB }

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo { return &ResetTokenRepo{DB: db} }

// Store inserts a reset token hash row for a user.
func (r *ResetTokenRepo) Store(ctx context.Context, userID, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reset_tokens (user_id, token_hash) VALUES (?,?)",
		userID, tokenHash)
	return err
}

// Consume revokes the token identified by hash and updates the owning
// user's password hash in a single transaction.  Either both writes
// commit or neither does, so a failed password update leaves the token
// spendable for a retry.  Returns the owning user id, or
// ErrTokenInvalid when the token is unknown or already revoked.
func (r *ResetTokenRepo) Consume(ctx context.Context, tokenHash, newPasswordHash string) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var userID string
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM reset_tokens WHERE token_hash=? AND revoked=0 FOR UPDATE",
		tokenHash).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE reset_tokens SET revoked=1 WHERE token_hash=?", tokenHash); err != nil {
		return "", err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?",
		newPasswordHash, userID)
	if err != nil {
		return "", err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Token survives a missing user; the account was deleted.
		return "", ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return userID, nil
}

// RevokeAllForUser invalidates every outstanding reset token for a
// user, called before issuing a new one so at most one token is live.
func (r *ResetTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE reset_tokens SET revoked=1 WHERE user_id=? AND revoked=0", userID)
	return err
}
