package api

import (
	"log/slog"
	"net/http"

	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/service"
)

// RequestHandler handles /api/v1/user/request requests. Every route sits
// behind the auth middleware.
type RequestHandler struct {
	requests service.RequestService
	logger   *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(requests service.RequestService, logger *slog.Logger) *RequestHandler {
	if logger == nil {
		panic("logger cannot be nil for RequestHandler")
	}
	return &RequestHandler{
		requests: requests,
		logger:   logger.With("component", "request_handler"),
	}
}

// List handles GET /api/v1/user/request?userEmail=...|foodId=...
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	requests, err := h.requests.List(r.Context(), identity, q.Get("userEmail"), q.Get(domain.FieldFoodID))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, requests)
}

// Create handles POST /api/v1/user/request.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var request domain.Request
	if err := shared.DecodeJSON(w, r, &request); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := h.requests.Create(r.Context(), identity, &request)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, res)
}

// UpdateStatus handles PATCH /api/v1/user/request/{id}. Only the donator of
// the requested listing may change the status.
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError(domain.FieldFoodStatus, "is required", service.ErrMissingStatus), "")
		return
	}

	res, err := h.requests.UpdateStatus(r.Context(), identity, pathID(r), req.FoodStatus)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// Delete handles DELETE /api/v1/user/request/{id}. Only the requester may
// delete.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.requests.Delete(r.Context(), identity, pathID(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}
