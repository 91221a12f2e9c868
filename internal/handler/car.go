package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/repository"
)

// CarHandler serves the /cars CRUD surface.
type CarHandler struct {
	Cars carStore
}

func NewCarHandler(cars carStore) *CarHandler {
	return &CarHandler{Cars: cars}
}

type createCarReq struct {
	Model    string  `json:"model" validate:"required"`
	Brand    string  `json:"brand" validate:"required"`
	Year     int     `json:"year" validate:"required,gte=1900"`
	GarageID *uint64 `json:"garageId"`
}

// Pointer fields distinguish "absent" from zero values on PATCH.
type updateCarReq struct {
	Model    *string `json:"model"`
	Brand    *string `json:"brand"`
	Year     *int    `json:"year"`
	GarageID *uint64 `json:"garageId"`
	Unpark   bool    `json:"unpark"` // explicit, since a null garageId is indistinguishable from absent
}

// Create handles POST /cars.  The owner is always the authenticated
// caller; a userId in the body is ignored.
func (h *CarHandler) Create(c echo.Context) error {
	owner, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createCarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "model, brand and year are required"})
	}

	car := model.Car{
		Model:    req.Model,
		Brand:    req.Brand,
		Year:     req.Year,
		UserID:   owner,
		GarageID: req.GarageID,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Cars.Create(ctx, &car); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create car"})
	}
	return c.JSON(http.StatusCreated, car)
}

// List handles GET /cars with the standard pagination window.
func (h *CarHandler) List(c echo.Context) error {
	p, err := paginationFrom(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	cars, err := h.Cars.List(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cars)
}

// Get handles GET /cars/:id.
func (h *CarHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, car)
}

// Update handles PATCH /cars/:id.  Only the owner (or an ADMIN) may
// modify a car; provided fields overwrite, absent fields are kept.
func (h *CarHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateCarReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if car.UserID != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Brand != nil {
		car.Brand = *req.Brand
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Unpark {
		car.GarageID = nil
	} else if req.GarageID != nil {
		car.GarageID = req.GarageID
	}

	if err := h.Cars.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /cars/:id with the same ownership rule as
// Update.
func (h *CarHandler) Delete(c echo.Context) error {
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

	car, err := h.Cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if car.UserID != caller && !callerIsAdmin(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Cars.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "car deleted"})
}
