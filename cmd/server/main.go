// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Command server runs the PlacePulse profiling service under a suture
// supervision tree:
//
//  1. Configuration: layered defaults, YAML file, environment
//  2. Profile registry: in-memory or BadgerDB
//  3. Activity source: optional JSON snapshot
//  4. Recommendation engine: profile-backed scoring and ranking
//  5. Refresh sweep: rebuilds stale profiles in the background
//  6. Ops HTTP server: health probes and Prometheus metrics
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/api"
	"github.com/avela/placepulse/internal/config"
	"github.com/avela/placepulse/internal/logging"
	"github.com/avela/placepulse/internal/ops"
	"github.com/avela/placepulse/internal/profile"
	"github.com/avela/placepulse/internal/profile/store"
	"github.com/avela/placepulse/internal/recommend"
	"github.com/avela/placepulse/internal/supervisor"
	"github.com/avela/placepulse/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("store", cfg.Store.Backend).
		Str("listen_addr", cfg.Server.ListenAddr).
		Msg("starting placepulse")

	// Profile registry
	var registry profile.Registry
	var ready ops.ReadyChecker

	switch cfg.Store.Backend {
	case "badger":
		opts := badger.DefaultOptions(cfg.Store.Path).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("failed to open profile store")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("error closing profile store")
			}
		}()
		badgerStore := store.NewBadgerStore(db)
		registry = badgerStore
		ready = badgerStore
	default:
		memStore := store.NewMemoryStore()
		registry = memStore
		ready = memStore
	}

	builder := profile.NewBuilder(registry, logging.Logger())

	// Activity source (optional)
	var provider activity.Provider
	if cfg.Activity.SnapshotPath != "" {
		snapshot, err := activity.LoadSnapshot(cfg.Activity.SnapshotPath)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Activity.SnapshotPath).Msg("failed to load activity snapshot")
		}
		provider = snapshot
		logging.Info().Str("path", cfg.Activity.SnapshotPath).Msg("activity snapshot loaded")
	} else {
		logging.Info().Msg("no activity snapshot configured; profiles must be built externally")
	}

	// Recommendation engine
	engine, err := recommend.NewEngine(cfg.Recommend, builder, provider, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create recommendation engine")
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	if provider != nil {
		refresh := services.NewRefreshService(builder, provider, services.RefreshServiceConfig{
			Interval:          cfg.Profiles.RefreshInterval,
			ProfileTTL:        cfg.Profiles.TTL,
			RebuildsPerSecond: cfg.Profiles.RebuildsPerSecond,
			RebuildBurst:      cfg.Profiles.RebuildBurst,
			RefreshOnStartup:  cfg.Profiles.RefreshOnStartup,
		}, logging.Logger())
		tree.AddProfileService(refresh)
		logging.Info().
			Dur("interval", cfg.Profiles.RefreshInterval).
			Dur("ttl", cfg.Profiles.TTL).
			Msg("profile refresh service added")
	}

	opsRouter := ops.NewRouter(ready, version, logging.Logger())
	apiHandler := api.NewHandler(engine, builder, logging.Logger())
	server := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      api.NewRouter(apiHandler, opsRouter),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("ops server service added")

	// Signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("placepulse stopped gracefully")
}
