package model

import "time"

// Car represents a row in the `cars` table.  Every car is owned by
// exactly one user and may optionally be parked in a garage, hence the
// nullable GarageID.  UserID is always taken from the authenticated
// caller, never from a request body.
type Car struct {
	ID        uint64    `json:"id"`
	Model     string    `json:"model"`
	Brand     string    `json:"brand"`
	Year      int       `json:"year"`
	UserID    string    `json:"userId"`
	GarageID  *uint64   `json:"garageId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
