package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/redact"
	"github.com/Sakebul-islam/kola-server-side/internal/service/auth"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

// AuthMiddleware provides cookie token authentication for routes.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Authenticate verifies the token cookie and adds the caller's claims to the
// request context. Requests without a valid token get 401 before reaching
// next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "unauthorized access")
			return
		}

		claims, err := m.tokens.VerifyToken(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken),
				errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "unauthorized access", err)
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to verify token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.IdentityContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity extracts the verified claims from the request context.
// Returns the claims and a boolean indicating if they were found.
func GetIdentity(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(shared.IdentityContextKey).(*auth.Claims)
	if !ok || claims == nil || claims.Email == "" {
		return nil, false
	}
	return claims, true
}
