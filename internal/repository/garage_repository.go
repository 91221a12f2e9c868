package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ThomasMorgana/Webservice/internal/model"
)

// GarageRepo encapsulates all database queries related to garages.
type GarageRepo struct{ DB *sql.DB }

func NewGarageRepo(db *sql.DB) *GarageRepo { return &GarageRepo{DB: db} }

const garageCols = "id,name,spaces,user_id,created_at,updated_at"

// Create inserts a new garage and populates the struct from the stored
// row, including the auto-generated id.
func (r *GarageRepo) Create(ctx context.Context, g *model.Garage) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO garages (name, spaces, user_id) VALUES (?,?,?)",
		g.Name, g.Spaces, g.UserID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*g = stored
	return nil
}

// GetByID fetches a garage by id, ErrNotFound when absent.
func (r *GarageRepo) GetByID(ctx context.Context, id uint64) (model.Garage, error) {
	var g model.Garage
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+garageCols+" FROM garages WHERE id=? LIMIT 1", id).
		Scan(&g.ID, &g.Name, &g.Spaces, &g.UserID, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Garage{}, ErrNotFound
	}
	return g, err
}

// List returns one pagination window of garages ordered by id ascending.
func (r *GarageRepo) List(ctx context.Context, p Pagination) ([]model.Garage, error) {
	p = p.Normalize()
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+garageCols+" FROM garages ORDER BY id ASC LIMIT ? OFFSET ?",
		p.Step, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	garages := make([]model.Garage, 0, p.Step)
	for rows.Next() {
		var g model.Garage
		if err := rows.Scan(&g.ID, &g.Name, &g.Spaces, &g.UserID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		garages = append(garages, g)
	}
	return garages, rows.Err()
}

// Update persists name and capacity.  ErrNotFound when the id does not
// exist.
func (r *GarageRepo) Update(ctx context.Context, g model.Garage) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE garages SET name=?, spaces=?, updated_at=NOW() WHERE id=?",
		g.Name, g.Spaces, g.ID)
	if err != nil {
		return err
	}
	return affectedOrExists(res, func() error {
		_, err := r.GetByID(ctx, g.ID)
		return err
	})
}

// Delete removes a garage row.  ErrNotFound when the id does not exist.
// Parked cars keep existing; their garage_id is nulled by the schema's
// ON DELETE SET NULL.
func (r *GarageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM garages WHERE id=?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
