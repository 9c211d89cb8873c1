// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/wealthwise-sync/internal/adapter"
	"github.com/MKhiriev/wealthwise-sync/internal/clock"
	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/service"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/internal/workers"
	"github.com/MKhiriev/wealthwise-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	// must be registered before config parses the command line
	once := flag.Bool("once", false, "Run a single full sync, print the result and exit")

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewClientLogger("wealthwise-syncd")
	log.Info().
		Any("build", buildInfo).
		Str("remote_mode", cfg.Remote.Mode).
		Msg("starting sync daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err = run(ctx, *cfg, *once, log); err != nil {
		log.Error().Err(err).Msg("sync daemon failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.ClientConfig, once bool, log *logger.Logger) error {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating local storages: %w", err)
	}
	defer storages.Close()

	remotes, closeRemotes, err := newRemotes(ctx, cfg.Remote, log)
	if err != nil {
		return fmt.Errorf("error creating remote: %w", err)
	}
	defer closeRemotes()

	services, err := service.NewClientServices(ctx, storages, remotes, cfg, clock.RealClock{}, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	if once {
		result, syncErr := services.Orchestrator.PerformFullSync(ctx)
		if syncErr != nil {
			return syncErr
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	return workers.NewWorkers(
		workers.NewSyncWorker(services.Orchestrator, services.SyncJob, cfg.Sync.Interval, log),
	).Run(ctx)
}

// newRemotes opens the remote side selected by cfg.Mode. The returned
// func releases whatever was opened.
func newRemotes(ctx context.Context, cfg config.ClientRemote, log *logger.Logger) (store.Remotes, func(), error) {
	switch cfg.Mode {
	case config.RemoteModePostgres:
		storages, err := store.NewRemoteStorages(ctx, cfg.DB, log)
		if err != nil {
			return store.Remotes{}, nil, err
		}
		return storages.Remotes(), func() { _ = storages.Close() }, nil
	default:
		remotes, err := adapter.NewHTTPRemotes(cfg, log)
		if err != nil {
			return store.Remotes{}, nil, err
		}
		return remotes, func() {}, nil
	}
}
