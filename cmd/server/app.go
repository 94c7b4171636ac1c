package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sakebul-islam/kola-server-side/internal/config"
	"github.com/Sakebul-islam/kola-server-side/internal/service"
	"github.com/Sakebul-islam/kola-server-side/internal/service/auth"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// application holds the dependencies shared by every handler.
type application struct {
	config *config.Config
	logger *slog.Logger
	store  store.DocumentStore

	tokens   auth.TokenService
	listings service.ListingService
	requests service.RequestService
}

// newApplication wires services over an already connected document store.
// The store is owned by the application from here on.
func newApplication(cfg *config.Config, logger *slog.Logger, ds store.DocumentStore) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		store:  ds,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return app, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.listings, err = service.NewListingService(ds, logger)
	if err != nil {
		return app, fmt.Errorf("failed to create listing service: %w", err)
	}

	app.requests, err = service.NewRequestService(ds, logger)
	if err != nil {
		return app, fmt.Errorf("failed to create request service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled, then shuts down and releases the
// store.
func (app *application) Run(ctx context.Context) error {
	defer app.closeStore()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) shutdownTimeout() time.Duration {
	return time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
}

// closeStore disconnects the document store. Safe on a nil receiver.
func (app *application) closeStore() {
	if app == nil || app.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout())
	defer cancel()

	if err := app.store.Close(ctx); err != nil {
		app.logger.Error("Error closing document store", "error", err)
		return
	}
	app.logger.Info("Document store closed")
}
