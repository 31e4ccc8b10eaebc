package main

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/estately-app/estately-backend/api/controllers"
	"github.com/estately-app/estately-backend/api/routes"
	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/internal/store"
	"github.com/estately-app/estately-backend/pkg/config"
	"github.com/estately-app/estately-backend/pkg/logger"
	"github.com/estately-app/estately-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kv, closer, pinger, err := newStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap persisted store", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				logg.Error(context.Background(), "error closing persisted store", err)
			}
		}()
	}

	catalogService, err := catalog.NewService(catalog.NewSource(cfg.Catalog))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	sessionMetrics := metrics.NewSessionMetrics(registry)

	distributor := session.NewDistributor()
	manager, err := session.NewManager(session.ManagerParams{
		Store:       kv,
		Guests:      catalogService,
		Distributor: distributor,
		Logger:      logg,
		Metrics:     sessionMetrics,
		LoginDelay:  cfg.Session.LoginDelay,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}
	manager.Hydrate(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"store_driver": cfg.Store.NormalizedDriver(),
	})
	logg.Info(ctx, "starting api server")

	var pingers []controllers.Pinger
	if pinger != nil {
		pingers = append(pingers, pinger)
	}
	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, manager, distributor, catalogService, registry, pingers...),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// newStore binds the configured driver and wraps it so a dead backend
// degrades the session to in-memory persistence instead of failing
// every mutation.
func newStore(ctx context.Context, cfg *config.Config) (store.KV, io.Closer, controllers.Pinger, error) {
	var (
		primary store.KV
		closer  io.Closer
		pinger  controllers.Pinger
	)
	switch cfg.Store.NormalizedDriver() {
	case config.StoreDriverMemory:
		return store.NewMemory(), nil, nil, nil
	case config.StoreDriverFile:
		file, err := store.NewFile(cfg.Store.FilePath)
		if err != nil {
			return nil, nil, nil, err
		}
		primary = file
	case config.StoreDriverSQLite:
		db, err := store.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		primary, closer, pinger = db, db, db
	case config.StoreDriverRedis:
		client, err := store.NewRedis(ctx, cfg.Redis, cfg.Store.Namespace)
		if err != nil {
			return nil, nil, nil, err
		}
		primary, closer, pinger = client, client, client
	}
	return store.NewFallback(primary, store.NewMemory()), closer, pinger, nil
}
