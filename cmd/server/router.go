package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Sakebul-islam/kola-server-side/internal/api"
	apiMiddleware "github.com/Sakebul-islam/kola-server-side/internal/api/middleware"
	"github.com/Sakebul-islam/kola-server-side/internal/redact"
)

// healthCheckTimeout bounds the store ping behind GET /health.
const healthCheckTimeout = 2 * time.Second

// setupRouter creates the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{apiMiddleware.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.tokens, api.CookieOptionsFromConfig(app.config.Auth), app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokens)
	listingHandler := api.NewListingHandler(app.listings, app.logger)
	requestHandler := api.NewRequestHandler(app.requests, app.logger)

	r.Get("/", app.handleRoot)
	r.Get("/health", app.handleHealth)

	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/logout", authHandler.Logout)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/foods", func(r chi.Router) {
			r.Get("/", listingHandler.List)
			r.Post("/", listingHandler.Create)
			r.Get("/{id}", listingHandler.Get)
			r.Delete("/{id}", listingHandler.Delete)
			r.With(authMiddleware.Authenticate).Put("/{id}", listingHandler.Update)
		})

		r.Route("/user/request", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", requestHandler.List)
			r.Post("/", requestHandler.Create)
			r.Patch("/{id}", requestHandler.UpdateStatus)
			r.Delete("/{id}", requestHandler.Delete)
		})
	})

	return r
}

func (app *application) handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte("Kola Food Sharing server is running")); err != nil {
		app.logger.Error("Failed to write root response", "error", err)
	}
}

// handleHealth reports 200 when the document store answers a ping.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status, body := http.StatusOK, "OK"
	if err := app.store.Ping(ctx); err != nil {
		app.logger.Warn("Health check failed", "error", redact.Error(err))
		status, body = http.StatusServiceUnavailable, "Service Unavailable"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
