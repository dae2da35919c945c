package handlers

import (
	"errors"

	"github.com/farebid/farebid-backend/internal/models"
)

// statusFromError maps the service layer's sentinel errors to HTTP statuses.
// Conflicts (409) tell the caller they lost a race and should re-read state;
// validation failures (400) tell them the input itself was bad.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalid):
		return 400
	case errors.Is(err, models.ErrNotAllowed):
		return 403
	case errors.Is(err, models.ErrNotFound):
		return 404
	case errors.Is(err, models.ErrConflict):
		return 409
	}
	return 500
}
