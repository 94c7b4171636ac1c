package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sakebul-islam/kola-server-side/internal/api/middleware"
	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
)

// idParam is the path parameter naming a listing or request.
const idParam = "id"

// identityFromRequest returns the authenticated caller's email. It writes a
// 401 and returns false when the auth middleware did not run or the claims
// carry no email.
func identityFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetIdentity(r)
	if !ok {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("identity not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized access")
		return "", false
	}
	return claims.Email, true
}

// pathID returns the raw id path parameter. Services validate its format.
func pathID(r *http.Request) string {
	return chi.URLParam(r, idParam)
}
