package review

import (
	"errors"
	"net/http"
)

// Domain errors for review-queue operations.
var (
	ErrNotFound       = errors.New("review entry not found")
	ErrDuplicate      = errors.New("review entry already exists")
	ErrInvalidStatus  = errors.New("review entry is not pending")
	ErrInvalidRequest = errors.New("invalid review request")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
