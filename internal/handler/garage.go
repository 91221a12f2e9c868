package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/repository"
)

// GarageHandler serves the /garages CRUD surface.
type GarageHandler struct {
	Garages garageStore
}

func NewGarageHandler(garages garageStore) *GarageHandler {
	return &GarageHandler{Garages: garages}
}

type createGarageReq struct {
	Name   string `json:"name" validate:"required"`
	Spaces int    `json:"spaces" validate:"required,gt=0"`
}
type updateGarageReq struct {
	Name   *string `json:"name"`
	Spaces *int    `json:"spaces"`
}

// Create handles POST /garages; the owner is the authenticated caller.
func (h *GarageHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createGarageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and a positive spaces count are required"})
	}

	garage := model.Garage{Name: req.Name, Spaces: req.Spaces, UserID: owner}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Garages.Create(ctx, &garage); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create garage"})
	}
	return c.JSON(http.StatusCreated, garage)
}

// List handles GET /garages with the standard pagination window.
func (h *GarageHandler) List(c echo.Context) error {
	p, err := paginationFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	garages, err := h.Garages.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, garages)
}

// Get handles GET /garages/:id.
func (h *GarageHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	garage, err := h.Garages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, garage)
}

// Update handles PATCH /garages/:id; owner or ADMIN only.
func (h *GarageHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateGarageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	garage, err := h.Garages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if garage.UserID != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if req.Name != nil {
		garage.Name = *req.Name
	}
	if req.Spaces != nil {
		if *req.Spaces <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "spaces must be positive"})
		}
		garage.Spaces = *req.Spaces
	}

	if err := h.Garages.Update(ctx, garage); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Garages.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /garages/:id; owner or ADMIN only.  Cars
// parked inside stay and are simply unparked by the schema.
func (h *GarageHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	garage, err := h.Garages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if garage.UserID != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Garages.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "garage deleted"})
}
