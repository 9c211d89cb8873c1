// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// DefaultServerAddress is used when neither SERVER_ADDRESS nor -a is set.
const DefaultServerAddress = "localhost:8080"

// ServerConfig is the sync server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	Version        string
	HTTPAddress    string
	RequestTimeout time.Duration
	DB             RemoteDB
}

// GetServerConfig builds and validates the sync server config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		Version:        cfg.App.Version,
		HTTPAddress:    orDefault(cfg.Server.HTTPAddress, DefaultServerAddress),
		RequestTimeout: orDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		DB:             newRemoteDB(cfg.Remote),
	}
}
