package model

import "time"

// Subscription represents a row in the `subscriptions` table.  A
// subscription is created inactive together with a Stripe payment
// intent; Active only ever flips to true when the webhook reports the
// matching payment_intent.succeeded event.  Clients cannot set it.
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
