package deadlines

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/handlers"
	"github.com/plazo-io/plazo/pkg/pagination"
	"github.com/plazo-io/plazo/pkg/routes"
	"github.com/plazo-io/plazo/pkg/workdays"
)

const defaultUpcomingDays = 10

// Handler provides HTTP endpoints for deadline operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "deadlines"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for deadline endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/deadlines",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/upcoming", Handler: h.Upcoming},
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
			{Method: "GET", Pattern: "/risks", Handler: h.Risks},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of deadlines with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upcoming returns deadlines due within the next n working days.
// The window defaults to 10 working days and is bounded by the "days"
// query parameter.
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := defaultUpcomingDays
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v > 0 {
			days = v
		}
	}

	upcoming, err := h.sys.Upcoming(r.Context(), days)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, upcoming)
}

// Stats returns deadline counts grouped by risk level, optionally
// scoped by the "client_id" query parameter.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var clientID *uuid.UUID
	if c := r.URL.Query().Get("client_id"); c != "" {
		id, err := uuid.Parse(c)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
			return
		}
		clientID = &id
	}

	stats, err := h.sys.Stats(r.Context(), clientID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}

// Risks returns the list of valid risk levels.
func (h *Handler) Risks(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, workdays.Levels())
}

// Find returns a single deadline by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	deadline, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, deadline)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching deadlines.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete removes a deadline by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
