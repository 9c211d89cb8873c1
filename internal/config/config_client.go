// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by the config views when a source leaves a field unset.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = time.Minute
	DefaultStaleThreshold = 15 * time.Minute
	DefaultMaxOpenConns   = 10
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 50 * time.Millisecond
)

// ClientDB contains local database connection settings for the daemon.
type ClientDB struct {
	// DSN is the SQLite connection string.
	DSN string
}

// ClientStorage groups daemon storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// RemoteDB contains the connection and retry settings of the shared
// PostgreSQL store.
type RemoteDB struct {
	DSN            string
	MaxOpenConns   int
	MaxRetries     uint64
	RetryBaseDelay time.Duration
	// PageSize limits a single change feed page; zero is unlimited.
	PageSize uint64
}

// ClientRemote describes the remote side of the daemon.
type ClientRemote struct {
	// Mode is [RemoteModeHTTP] or [RemoteModePostgres].
	Mode string
	// HTTPAddress is the sync server endpoint used in http mode.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// DB is used in postgres mode.
	DB RemoteDB
}

// ClientSync holds the sync engine settings of the daemon.
type ClientSync struct {
	Interval       time.Duration
	DirtyPolicy    string
	StaleThreshold time.Duration
	MaxParallel    int
	Download       bool
}

// ClientConfig is the daemon configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Storage ClientStorage
	Remote  ClientRemote
	Sync    ClientSync
}

// GetClientConfig builds and validates a daemon-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the daemon, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Remote: ClientRemote{
			Mode:           orDefault(cfg.Remote.Mode, RemoteModeHTTP),
			HTTPAddress:    cfg.Remote.HTTPAddress,
			RequestTimeout: orDefault(cfg.Remote.RequestTimeout, DefaultRequestTimeout),
			DB:             newRemoteDB(cfg.Remote),
		},
		Sync: ClientSync{
			Interval:       orDefault(cfg.Sync.Interval, DefaultSyncInterval),
			DirtyPolicy:    orDefault(cfg.Sync.DirtyPolicy, DirtyPolicyModified),
			StaleThreshold: orDefault(cfg.Sync.StaleThreshold, DefaultStaleThreshold),
			MaxParallel:    max(cfg.Sync.MaxParallel, 1),
			Download:       cfg.Sync.Download,
		},
	}

	return clientCfg
}

func newRemoteDB(remote Remote) RemoteDB {
	return RemoteDB{
		DSN:            remote.DatabaseURI,
		MaxOpenConns:   orDefault(remote.MaxOpenConns, DefaultMaxOpenConns),
		MaxRetries:     orDefault(remote.MaxRetries, DefaultMaxRetries),
		RetryBaseDelay: orDefault(remote.RetryBaseDelay, DefaultRetryBaseDelay),
		PageSize:       remote.PageSize,
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
