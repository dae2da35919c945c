package models

import "errors"

// Sentinel errors shared by the service layer. Handlers translate these to
// HTTP statuses: ErrInvalid 400, ErrNotFound 404, ErrNotAllowed 403,
// ErrConflict 409.
var (
	ErrInvalid    = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrNotAllowed = errors.New("not allowed")
	ErrConflict   = errors.New("conflict")
)
