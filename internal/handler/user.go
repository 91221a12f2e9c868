package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ThomasMorgana/Webservice/internal/config"
	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/repository"
	"github.com/ThomasMorgana/Webservice/internal/utils"
)

// UserHandler serves the /users CRUD surface plus account activation.
type UserHandler struct {
	Cfg   config.Config
	Users userStore
}

func NewUserHandler(cfg config.Config, u userStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

type createUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
type updateUserReq struct {
	Email string `json:"email" validate:"required,email"`
}

// Create handles POST /users.  Accounts created here are plain USERs;
// Admin creation has its own endpoint.
func (h *UserHandler) Create(c echo.Context) error {
	return h.create(c, model.RoleUser)
}

// CreateAdmin handles POST /users/admin.  The RequireRole middleware
// already guarantees the caller is an ADMIN.
func (h *UserHandler) CreateAdmin(c echo.Context) error {
	return h.create(c, model.RoleAdmin)
}

func (h *UserHandler) create(c echo.Context, role string) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /users with the standard pagination window.
func (h *UserHandler) List(c echo.Context) error {
	p, err := paginationFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /users/:id.  A user may update only their own
// account; ADMINs may update anyone.
func (h *UserHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Users.UpdateEmail(ctx, id, req.Email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "an account with this email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id with the same ownership rule as
// Update.
func (h *UserHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	if id != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}

// Activate handles GET /users/activate?token=... and flips the account
// active.  The token must be signed with the activation secret; access
// and refresh tokens do not work here.
func (h *UserHandler) Activate(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token is required"})
	}
	userID, _, err := utils.VerifyToken(token, h.Cfg.ActivationSecret)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid activation token"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Users.Activate(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activation failed"})
	}
	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, user)
}
