package impacts

import (
	"errors"
	"net/http"
)

// Domain errors for note-impact operations.
var (
	ErrNotFound       = errors.New("impact record not found")
	ErrDuplicate      = errors.New("impact record already exists")
	ErrInvalidRequest = errors.New("invalid classification request")
)

// MapHTTPStatus maps impact domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
