package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ThomasMorgana/Webservice/internal/model"
)

// CarRepo encapsulates all database queries related to cars.
type CarRepo struct{ DB *sql.DB }

func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{DB: db} }

const carCols = "id,model,brand,year,user_id,garage_id,created_at,updated_at"

// Create inserts a new car.  On success the ID and timestamp fields of
// the passed struct are populated from the stored row.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO cars (model, brand, year, user_id, garage_id) VALUES (?,?,?,?,?)",
		c.Model, c.Brand, c.Year, c.UserID, c.GarageID)
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
	*c = stored
	return nil
}

// GetByID fetches a car by id, ErrNotFound when absent.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	var c model.Car
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+carCols+" FROM cars WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Model, &c.Brand, &c.Year, &c.UserID, &c.GarageID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Car{}, ErrNotFound
	}
	return c, err
}

// List returns one pagination window of cars ordered by id ascending.
func (r *CarRepo) List(ctx context.Context, p Pagination) ([]model.Car, error) {
	p = p.Normalize()
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+carCols+" FROM cars ORDER BY id ASC LIMIT ? OFFSET ?",
		p.Step, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := make([]model.Car, 0, p.Step)
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.ID, &c.Model, &c.Brand, &c.Year, &c.UserID, &c.GarageID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// Update persists the mutable fields of a car.  The owner is never
// rewritten here.  ErrNotFound when the id does not exist.
func (r *CarRepo) Update(ctx context.Context, c model.Car) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE cars SET model=?, brand=?, year=?, garage_id=?, updated_at=NOW() WHERE id=?",
		c.Model, c.Brand, c.Year, c.GarageID, c.ID)
	if err != nil {
		return err
	}
	return affectedOrExists(res, func() error {
		_, err := r.GetByID(ctx, c.ID)
		return err
	})
}

// Delete removes a car row.  ErrNotFound when the id does not exist.
func (r *CarRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM cars WHERE id=?", id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
