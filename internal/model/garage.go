package model

import "time"

// Garage represents a row in the `garages` table.  Spaces is the
// declared capacity; it is informational and not enforced against the
// number of parked cars at this layer.
type Garage struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Spaces    int       `json:"spaces"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
