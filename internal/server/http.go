// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/config"
	"github.com/MKhiriev/wealthwise-sync/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger

	// ready is closed once the listener is bound; addr is valid after that.
	ready chan struct{}
	addr  net.Addr
}

func newHTTPServer(handler http.Handler, cfg config.ServerConfig, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
			IdleTimeout:       2 * cfg.RequestTimeout,
		},
		logger: logger,
		ready:  make(chan struct{}),
	}
}

func (h *httpServer) RunServer(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", h.server.Addr, err)
	}
	h.addr = ln.Addr()
	close(h.ready)

	h.logger.Info().Str("address", h.addr.String()).Msg("HTTP server listening")

	if err = h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}

// shutdownTimeout bounds the drain of in-flight requests.
func shutdownTimeout(cfg config.ServerConfig) time.Duration {
	if cfg.RequestTimeout <= 0 {
		return config.DefaultRequestTimeout
	}
	return cfg.RequestTimeout
}
