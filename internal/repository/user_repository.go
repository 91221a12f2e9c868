package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/utils"
)

// UserRepo encapsulates all database queries touching the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,password_hash,role,active,created_at,updated_at"

// Create hashes the password, inserts the user and returns the stored
// record.  New accounts always start inactive until the activation
// token is consumed.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, role, active) VALUES (?,?,?,?,0)",
		id, email, hash, role)
	if err != nil {
		// 1062 = MySQL duplicate entry, here only possible on the email unique key.
		if strings.Contains(err.Error(), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx, "SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns one pagination window of users ordered by id ascending.
func (r *UserRepo) List(ctx context.Context, p Pagination) ([]model.User, error) {
	p = p.Normalize()
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userCols+" FROM users ORDER BY id ASC LIMIT ? OFFSET ?",
		p.Step, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0, p.Step)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateEmail changes a user's email address.  ErrNotFound when the id
// does not exist, ErrEmailExists when the new address is taken.
func (r *UserRepo) UpdateEmail(ctx context.Context, id, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, updated_at=NOW() WHERE id=?", email, id)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return affectedOrExists(res, func() error {
		_, err := r.GetByID(ctx, id)
		return err
	})
}

// Activate flips the account's active flag.  Activating an already
// active account is a no-op, not an error.
func (r *UserRepo) Activate(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET active=1, updated_at=NOW() WHERE id=? AND active=0", id)
	if err != nil {
		return err
	}
	return affectedOrExists(res, func() error {
		_, err := r.GetByID(ctx, id)
		return err
	})
}

// Delete removes a user row.  ErrNotFound when the id does not exist.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// checkAffected maps "no row affected" onto ErrNotFound.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// affectedOrExists handles updates where MySQL reports zero affected
// rows both for a missing row and for a no-op change.  Zero rows runs
// the existence check; its error (typically ErrNotFound) becomes the
// verdict, so re-submitting unchanged values on a live row is not a
// 404.
func affectedOrExists(res sql.Result, exists func() error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return exists()
	}
	return nil
}
