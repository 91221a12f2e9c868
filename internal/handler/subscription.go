package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ThomasMorgana/Webservice/internal/config"
	"github.com/ThomasMorgana/Webservice/internal/payment"
	"github.com/ThomasMorgana/Webservice/internal/repository"
)

// SubscriptionHandler serves the /subscriptions surface and the Stripe
// webhook.  A subscription is created pending and becomes active only
// through a verified payment_intent.succeeded event.
type SubscriptionHandler struct {
	Cfg      config.Config
	Subs     subscriptionStore
	Payments payment.Provider
	Log      zerolog.Logger
}

func NewSubscriptionHandler(cfg config.Config, subs subscriptionStore, p payment.Provider, log zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{Cfg: cfg, Subs: subs, Payments: p, Log: log}
}

// Create handles POST /subscriptions.  The pending row and its payment
// intent are created together; if the intent fails the row is deleted
// so no orphan pending subscription survives.
func (h *SubscriptionHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	sub, err := h.Subs.Create(ctx, owner)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create subscription"})
	}

	intentID, err := h.Payments.CreatePaymentIntent(ctx, sub.ID, int64(h.Cfg.PriceCents), h.Cfg.Currency)
	if err != nil {
		// Compensating delete: a pending subscription without a live
		// payment intent can never be activated.
		if derr := h.Subs.Delete(ctx, sub.ID); derr != nil {
			h.Log.Error().Err(derr).Str("subscription_id", sub.ID).Msg("rollback of pending subscription failed")
		}
		h.Log.Error().Err(err).Str("subscription_id", sub.ID).Msg("payment intent creation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment intent creation failed"})
	}
	h.Log.Info().Str("subscription_id", sub.ID).Str("intent_id", intentID).Msg("subscription created, awaiting payment")

	return c.JSON(http.StatusCreated, sub)
}

// List handles GET /subscriptions with the standard pagination window.
func (h *SubscriptionHandler) List(c echo.Context) error {
	p, err := paginationFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	subs, err := h.Subs.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, subs)
}

// Get handles GET /subscriptions/:id.
func (h *SubscriptionHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	sub, err := h.Subs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, sub)
}

// Delete handles DELETE /subscriptions/:id; owner or ADMIN only.
func (h *SubscriptionHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := requestCtx(c)
	defer cancel()

	sub, err := h.Subs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if sub.UserID != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Subs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "subscription deleted"})
}

// StripeHook handles POST /subscriptions/stripe-hook.  Signature
// verification runs over the raw request body; a body that has been
// parsed and re-serialized would never verify.
func (h *SubscriptionHandler) StripeHook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read body"})
	}

	event, err := h.Payments.VerifyWebhook(body, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		h.Log.Warn().Err(err).Msg("webhook signature verification failed")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "webhook signature verification failed"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	switch event.Type {
	case payment.EventPaymentSucceeded:
		if event.SubscriptionID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no subscription id in event metadata"})
		}
		sub, err := h.Subs.GetByID(ctx, event.SubscriptionID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if err := h.Subs.Activate(ctx, sub.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activation failed"})
		}
		h.Log.Info().Str("subscription_id", sub.ID).Str("user_id", sub.UserID).Msg("subscription activated")

	case payment.EventPaymentFailed:
		h.Log.Info().Str("subscription_id", event.SubscriptionID).Msg("payment failed, subscription stays pending")

	default:
		h.Log.Info().Str("type", event.Type).Msg("unsupported event type on stripe webhook")
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
