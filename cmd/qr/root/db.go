package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"questrank/internal/config"
	"questrank/internal/engine"
	"questrank/internal/logger"
	"questrank/internal/random"
	"questrank/internal/storage"
	"questrank/internal/storage/bolt"
)

// openStore opens the configured backend at path.
func openStore(ctx context.Context, cfg config.Config, path string) (engine.StateStore, func(), error) {
	switch cfg.Store {
	case config.StoreBolt:
		db, err := bolt.Open(boltPath(path))
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		db, err := storage.Open(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
}

// boltPath keeps the bolt file next to, not on top of, a sqlite file.
func boltPath(path string) string {
	return strings.TrimSuffix(path, ".db") + ".bolt"
}

// openService wires config, logging, storage and randomness into a loaded
// service and runs the periodic sweep once so the state is current.
func openService(cmd *cobra.Command) (*engine.Service, func(), error) {
	ctx := cmdContext(cmd)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flag, _ := cmd.Flags().GetString("db"); flag != "" {
		cfg.DBPath = flag
	}
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	store, closeStore, err := openStore(ctx, cfg, path)
	if err != nil {
		log.Sync()
		return nil, nil, err
	}
	rng, err := random.New(cfg.Seed)
	if err != nil {
		closeStore()
		log.Sync()
		return nil, nil, err
	}

	svc := engine.NewService(engine.Options{
		Store:  store,
		Logger: log.With("store", cfg.Store, "path", path),
		Rand:   rng,
	})
	cleanup := func() {
		closeStore()
		log.Sync()
	}
	if err := svc.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	if _, err := svc.Tick(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
