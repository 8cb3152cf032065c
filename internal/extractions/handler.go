package extractions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pipeline"
	"github.com/plazo-io/plazo/pkg/handlers"
	"github.com/plazo-io/plazo/pkg/routes"
)

// Handler provides HTTP endpoints for extraction operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// ProcessRequest selects the pipeline purpose for a processing request.
type ProcessRequest struct {
	Purpose string `json:"purpose"`
}

// BatchRequest carries a batch processing request.
type BatchRequest struct {
	DocumentIDs []uuid.UUID `json:"document_ids"`
	Purpose     string      `json:"purpose"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "extractions"),
	}
}

// Routes returns the route group definition for extraction endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/extractions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/documents/{id}", Handler: h.Process},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
			{Method: "GET", Pattern: "/documents/{id}", Handler: h.FindExtraction},
			{Method: "GET", Pattern: "/validations/{type}/{id}", Handler: h.FindValidation},
		},
	}
}

// Process runs the pipeline against a stored document. The JSON body
// selects the purpose: classify or deadlines.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	purpose, err := pipeline.ParsePurpose(req.Purpose)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Process(r.Context(), id, purpose)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Batch processes multiple documents concurrently with one purpose.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.DocumentIDs) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoBatch)
		return
	}

	purpose, err := pipeline.ParsePurpose(req.Purpose)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	results := h.sys.ProcessBatch(r.Context(), req.DocumentIDs, purpose)
	handlers.RespondJSON(w, http.StatusOK, results)
}

// FindExtraction returns the most recent preprocessing hint record for a
// document.
func (h *Handler) FindExtraction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	extraction, err := h.sys.FindExtraction(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, extraction)
}

// FindValidation returns the most recent verdict for an entity by
// validation type and entity id.
func (h *Handler) FindValidation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	validation, err := h.sys.FindValidation(r.Context(), r.PathValue("type"), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, validation)
}
