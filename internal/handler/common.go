package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/repository"
)

// errNoIdentity signals that the JWT middleware did not run or stored
// no usable user id.
var errNoIdentity = errors.New("no authenticated user in context")

// callerID extracts the authenticated user's id placed in the context
// by the JWT middleware.
func callerID(c echo.Context) (string, error) {
	id, ok := c.Get("user_id").(string)
	if !ok || id == "" {
		return "", errNoIdentity
	}
	return id, nil
}

// callerIsAdmin reports whether the authenticated caller carries the
// ADMIN role claim.
func callerIsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}

// paginationFrom reads the ?page=&step= query parameters.  Absent
// parameters fall back to the default window; malformed or negative
// values are a client error.
func paginationFrom(c echo.Context) (repository.Pagination, error) {
	var p repository.Pagination
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return p, errors.New("page must be a non-negative integer")
		}
		p.Page = n
	}
	if raw := c.QueryParam("step"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return p, errors.New("step must be a positive integer")
		}
		p.Step = n
	}
	return p.Normalize(), nil
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
