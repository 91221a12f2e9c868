// Package queue defines message payloads exchanged over the message broker.
package queue

// Mail kinds understood by the outbox consumer.  Each kind maps to one
// HTML template in the mail package.
const (
	MailKindWelcome       = "welcome"
	MailKindPasswordReset = "password_reset"
)

// MailRequestedEvent is published when a handler wants a transactional
// email delivered.  Delivery happens asynchronously in the consumer so
// a slow or failing SMTP relay never blocks or fails the request that
// triggered it.
type MailRequestedEvent struct {
	Kind        string `json:"kind"`
	Recipient   string `json:"recipient"`
	Token       string `json:"token"` // activation or reset token carried in the mail body
	RequestedAt string `json:"requested_at"`
}
