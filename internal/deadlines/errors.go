package deadlines

import (
	"errors"
	"net/http"
)

// Domain errors for deadline operations.
var (
	ErrNotFound    = errors.New("deadline not found")
	ErrDuplicate   = errors.New("deadline already exists")
	ErrInvalidRisk = errors.New("risk must be overdue, critical, high, medium, or low")
)

// MapHTTPStatus maps deadline domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRisk) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
