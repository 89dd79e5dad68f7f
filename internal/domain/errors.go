package domain

import "errors"

// Sentinel errors shared across services. Repositories translate storage-level
// misses into ErrNotFound; services wrap these with context via fmt.Errorf and
// the HTTP layer maps them to status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
