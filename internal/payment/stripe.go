// Package payment wraps the Stripe client behind a small provider
// interface so handlers can be tested without talking to Stripe.
package payment

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"github.com/stripe/stripe-go/v78/webhook"
)

// Event types the webhook handler reacts to.  Everything else is
// logged and ignored.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// Event is the provider-neutral view of a verified webhook event.
// SubscriptionID is extracted from the payment intent metadata and is
// empty when the event carries none.
type Event struct {
	Type           string
	SubscriptionID string
}

// Provider is the payment collaborator consumed by the subscription
// handler.
type Provider interface {
	// CreatePaymentIntent registers a pending charge linked to a
	// subscription through metadata and returns the intent id.
	CreatePaymentIntent(ctx context.Context, subscriptionID string, amountCents int64, currency string) (string, error)
	// VerifyWebhook checks the provider signature over the raw,
	// unparsed request body and returns the decoded event.
	VerifyWebhook(payload []byte, sigHeader string) (Event, error)
}

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	hookSecret string
}

// NewStripeProvider sets the global Stripe key and returns a provider
// verifying webhooks with the given endpoint secret.
func NewStripeProvider(apiKey, hookSecret string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{hookSecret: hookSecret}
}

func (s *StripeProvider) CreatePaymentIntent(ctx context.Context, subscriptionID string, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	// The metadata link is what lets the webhook find the subscription
	// when the asynchronous confirmation arrives.
	params.AddMetadata("subscriptionId", subscriptionID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}

func (s *StripeProvider) VerifyWebhook(payload []byte, sigHeader string) (Event, error) {
	ev, err := webhook.ConstructEvent(payload, sigHeader, s.hookSecret)
	if err != nil {
		return Event{}, err
	}

	out := Event{Type: string(ev.Type)}
	switch out.Type {
	case EventPaymentSucceeded, EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
			return Event{}, err
		}
		out.SubscriptionID = pi.Metadata["subscriptionId"]
	}
	return out, nil
}
