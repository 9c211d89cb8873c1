// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/handler"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	drain      time.Duration
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.ServerConfig, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		drain:      shutdownTimeout(cfg),
		logger:     logger,
	}, nil
}

// RunServer blocks until ctx is cancelled (the caller wires it to
// SIGINT/SIGTERM) or the listener fails.
func (s *server) RunServer(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Msg("Launching HTTP server")
		return s.httpServer.RunServer(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.drain)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
