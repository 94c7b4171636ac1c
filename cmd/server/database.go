package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Sakebul-islam/kola-server-side/internal/config"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/memstore"
	"github.com/Sakebul-islam/kola-server-side/internal/platform/mongo"
	"github.com/Sakebul-islam/kola-server-side/internal/store"
)

// openDocumentStore connects the store selected by cfg.Driver.
func openDocumentStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.DocumentStore, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory document store; data is lost on restart")
		return memstore.New(logger), nil
	case "mongo":
		ds, err := mongo.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to document store: %w", err)
		}
		logger.Info("Document store connection established", "database", cfg.Name)
		return ds, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
