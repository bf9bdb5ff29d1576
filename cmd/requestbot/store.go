package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/config"
	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

// openStore returns the configured snapshot store and a function releasing
// whatever it holds open.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (db.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		database, err := db.New(cfg)
		if err != nil {
			return nil, nil, err
		}

		if err := db.RunMigrations(ctx, database.Conn); err != nil {
			database.Close()
			return nil, nil, err
		}

		closeFn := func() {
			if err := database.Close(); err != nil {
				logger.Warn("cannot close database", zap.Error(err))
			}
		}

		return db.NewPostgresStore(database.Conn, logger), closeFn, nil
	case config.BackendFile:
		store, err := db.NewFileStore(cfg.DatabaseFile, logger)
		if err != nil {
			return nil, nil, err
		}

		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
