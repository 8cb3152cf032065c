package clients

import (
	"errors"
	"net/http"
)

// Domain errors for client operations.
var (
	ErrNotFound  = errors.New("client not found")
	ErrDuplicate = errors.New("client name already exists")
	ErrHasFiles  = errors.New("client has case files and cannot be deleted")
)

// MapHTTPStatus maps client domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrHasFiles) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
