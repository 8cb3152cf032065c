package extractions

import (
	"errors"
	"net/http"

	"github.com/plazo-io/plazo/internal/documents"
	"github.com/plazo-io/plazo/pipeline"
)

// Domain errors for extraction operations.
var (
	ErrNotFound    = errors.New("extraction not found")
	ErrNoBatch     = errors.New("batch requires at least one document id")
	ErrInvalidType = errors.New("validation type must be classification or deadlines")
)

// MapHTTPStatus maps extraction domain errors to appropriate HTTP status
// codes. Fatal pipeline errors map to 502: the primary provider could not
// produce a result.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNoBatch) || errors.Is(err, ErrInvalidType) {
		return http.StatusBadRequest
	}
	if errors.Is(err, documents.ErrNotFound) || errors.Is(err, documents.ErrNoText) {
		return documents.MapHTTPStatus(err)
	}

	var fatal *pipeline.FatalError
	if errors.As(err, &fatal) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
