package api

import (
	"log/slog"
	"net/http"

	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/domain"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/service"
	"github.com/Sakebul-islam/kola-server-side/internal/service/query"
)

// ListingHandler handles /api/v1/foods requests.
type ListingHandler struct {
	listings service.ListingService
	logger   *slog.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings service.ListingService, logger *slog.Logger) *ListingHandler {
	if logger == nil {
		panic("logger cannot be nil for ListingHandler")
	}
	return &ListingHandler{
		listings: listings,
		logger:   logger.With("component", "listing_handler"),
	}
}

// List handles GET /api/v1/foods.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.List(r.Context(), query.Build(r.URL.Query()))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list listings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, listings)
}

// Get handles GET /api/v1/foods/{id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.Get(r.Context(), pathID(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, listing)
}

// Create handles POST /api/v1/foods.
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var listing domain.Listing
	if err := shared.DecodeJSON(w, r, &listing); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := h.listings.Create(r.Context(), &listing)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create listing")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, res)
}

// Update handles PUT /api/v1/foods/{id}. Only the donator may update.
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var patch map[string]any
	if err := shared.DecodeJSON(w, r, &patch); err != nil || patch == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	res, err := h.listings.Update(r.Context(), identity, pathID(r), patch)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("listing update failed",
			slog.String("listing_id", pathID(r)))
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}

// Delete handles DELETE /api/v1/foods/{id}.
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.listings.Delete(r.Context(), pathID(r))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, res)
}
