package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ThomasMorgana/Webservice/internal/model"
)

// SubscriptionRepo encapsulates all database queries related to
// subscriptions.  Rows are created inactive and only Activate, driven
// by a verified payment webhook, flips the flag.
type SubscriptionRepo struct{ DB *sql.DB }

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{DB: db} }

const subCols = "id,user_id,active,created_at,updated_at"

// Create inserts a pending subscription for a user and returns the
// stored record.
func (r *SubscriptionRepo) Create(ctx context.Context, userID string) (model.Subscription, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO subscriptions (id, user_id, active) VALUES (?,?,0)",
		id, userID)
	if err != nil {
		return model.Subscription{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a subscription by id, ErrNotFound when absent.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id string) (model.Subscription, error) {
	var s model.Subscription
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+subCols+" FROM subscriptions WHERE id=? LIMIT 1", id).
		Scan(&s.ID, &s.UserID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Subscription{}, ErrNotFound
	}
	return s, err
}

// List returns one pagination window of subscriptions ordered by id
// ascending.
func (r *SubscriptionRepo) List(ctx context.Context, p Pagination) ([]model.Subscription, error) {
	p = p.Normalize()
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+subCols+" FROM subscriptions ORDER BY id ASC LIMIT ? OFFSET ?",
		p.Step, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]model.Subscription, 0, p.Step)
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Activate marks a subscription active.  Activating twice is a no-op,
// which keeps retried webhook deliveries harmless.  ErrNotFound when
// the id does not exist.
func (r *SubscriptionRepo) Activate(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE subscriptions SET active=1, updated_at=NOW() WHERE id=? AND active=0", id)
	if err != nil {
		return err
	}
	return affectedOrExists(res, func() error {
		_, err := r.GetByID(ctx, id)
		return err
	})
}

// Delete removes a subscription row.  Used both for the CRUD surface
// and to roll back a pending row whose payment intent failed to create.
func (r *SubscriptionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM subscriptions WHERE id=?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
