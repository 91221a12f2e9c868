package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ThomasMorgana/Webservice/internal/config"
	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/queue"
	"github.com/ThomasMorgana/Webservice/internal/repository"
	"github.com/ThomasMorgana/Webservice/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  userStore
	Resets resetStore
	Outbox mailPublisher
	Log    zerolog.Logger
}

func NewAuthHandler(cfg config.Config, u userStore, r resetStore, out mailPublisher, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Resets: r, Outbox: out, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
type refreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
type resetRequestReq struct {
	Email string `json:"email" validate:"required,email"`
}
type resetPasswordReq struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResp struct {
	User         model.User `json:"user"`
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken"`
}

// Register creates an inactive account and queues the welcome mail
// carrying the activation token.  The token itself travels only by
// mail, never in the response body.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, req.Email, req.Password, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	activation, err := utils.NewActivationToken(h.Cfg.ActivationSecret, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue activation failed"})
	}
	h.enqueueMail(ctx, queue.MailKindWelcome, user.Email, activation.Token)

	access, refresh, err := h.issuePair(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, authResp{User: user, Token: access, RefreshToken: refresh})
}

// Login verifies credentials and returns a fresh token pair.  Unknown
// email and wrong password answer identically so the endpoint reveals
// nothing about which emails are registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{User: user, Token: access, RefreshToken: refresh})
}

// Refresh exchanges a valid refresh token for a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refreshToken required"})
	}

	userID, _, err := utils.VerifyToken(req.RefreshToken, h.Cfg.RefreshSecret)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "this refresh token did not match any users"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"accessToken": access, "refreshToken": refresh})
}

// RequestReset starts the password reset flow.  The response is the
// same whether or not the email exists; existence is logged, not
// surfaced, to resist account enumeration.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req resetRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	accepted := func() error {
		return c.JSON(http.StatusOK, echo.Map{"message": "if this email exists, a reset token has been sent"})
	}

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Log.Error().Err(err).Msg("reset request: user lookup failed")
		} else {
			h.Log.Info().Str("email", req.Email).Msg("reset requested for unknown email")
		}
		return accepted()
	}

	raw, err := utils.NewResetToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate token failed"})
	}
	// At most one live token per user.
	if err := h.Resets.RevokeAllForUser(ctx, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store token failed"})
	}
	if err := h.Resets.Store(ctx, user.ID, utils.HashResetRaw(raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store token failed"})
	}
	h.enqueueMail(ctx, queue.MailKindPasswordReset, user.Email, raw)

	return accepted()
}

// ResetPassword consumes a reset token and installs the new password.
// Revocation and the password update commit together; a token is
// spendable exactly once.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token and password are required"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	userID, err := h.Resets.Consume(ctx, utils.HashResetRaw(req.Token), hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTokenInvalid):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid reset token"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
		}
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// issuePair signs an access and a refresh token for a user.
func (h *AuthHandler) issuePair(user model.User) (access, refresh string, err error) {
	a, err := utils.NewAccessToken(h.Cfg.AccessSecret, user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	r, err := utils.NewRefreshToken(h.Cfg.RefreshSecret, user.ID)
	if err != nil {
		return "", "", err
	}
	return a.Token, r.Token, nil
}

// enqueueMail publishes a mail request to the outbox.  Failures are
// logged and swallowed: mail delivery must never fail the request.
func (h *AuthHandler) enqueueMail(ctx context.Context, kind, recipient, token string) {
	ev := queue.MailRequestedEvent{
		Kind:        kind,
		Recipient:   recipient,
		Token:       token,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Outbox.PublishMailRequested(ctx, ev); err != nil {
		h.Log.Error().Err(err).Str("kind", kind).Msg("mail enqueue failed")
	}
}

// requestCtx bounds handler database work to a few seconds.
func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
