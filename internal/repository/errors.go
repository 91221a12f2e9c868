// Package repository contains data access logic separated from HTTP
// handlers.  Sentinel errors defined here let handlers translate
// datastore outcomes into stable HTTP status codes without inspecting
// driver-specific error strings.
package repository

import "errors"

// ErrNotFound is returned when a row targeted by a get, update or
// delete does not exist.  Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert would violate the unique
// email constraint.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrTokenInvalid is returned when a reset token is unknown or has
// already been revoked.  Handlers translate it into HTTP 401.
var ErrTokenInvalid = errors.New("reset token invalid")
