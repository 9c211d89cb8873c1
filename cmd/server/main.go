// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/handler"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/internal/server"
	"github.com/MKhiriev/wealthwise-sync/internal/service"
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("wealthwise-sync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildInfo.Version
	}

	log.Debug().
		Str("address", cfg.HTTPAddress).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewRemoteStorages(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
