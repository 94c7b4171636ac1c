package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sakebul-islam/kola-server-side/internal/api/middleware"
	"github.com/Sakebul-islam/kola-server-side/internal/api/shared"
	"github.com/Sakebul-islam/kola-server-side/internal/config"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/logger"
	"github.com/Sakebul-islam/kola-server-side/internal/service/auth"
)

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

// CookieOptionsFromConfig converts the auth configuration.
func CookieOptionsFromConfig(cfg config.AuthConfig) CookieOptions {
	opts := CookieOptions{Secure: cfg.CookieSecure, SameSite: http.SameSiteNoneMode}
	switch strings.ToLower(cfg.CookieSameSite) {
	case "lax":
		opts.SameSite = http.SameSiteLaxMode
	case "strict":
		opts.SameSite = http.SameSiteStrictMode
	}
	return opts
}

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	tokens  auth.TokenService
	cookies CookieOptions
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(tokens auth.TokenService, cookies CookieOptions, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		tokens:  tokens,
		cookies: cookies,
		logger:  logger.With("component", "auth_handler"),
	}
}

// IssueToken handles POST /jwt. The JSON body becomes the token's claims and
// must carry a valid email.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var claims map[string]any
	if err := shared.DecodeJSON(w, r, &claims); err != nil || claims == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	email, _ := claims[auth.ClaimEmail].(string)
	if err := shared.ValidateRequest(&TokenRequest{Email: email}); err != nil {
		HandleAPIError(w, r, auth.ErrMissingEmail, "Invalid email: invalid email format")
		return
	}

	token, err := h.tokens.IssueToken(r.Context(), claims)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	http.SetCookie(w, h.cookie(token, int(h.tokens.TokenLifetime().Seconds())))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

// Logout handles POST /logout by expiring the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := h.cookie("", 0)
	c.MaxAge = -1 // sends Max-Age=0
	http.SetCookie(w, c)
	shared.RespondWithJSON(w, r, http.StatusOK, shared.SuccessResponse{Success: true})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: h.cookies.SameSite,
	}
}
