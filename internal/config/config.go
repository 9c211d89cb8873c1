// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync daemon and the sync server. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds the device-local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Remote describes where local changes are pushed to.
	Remote Remote `envPrefix:"REMOTE_"`

	// Sync holds the sync engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Server holds network address and timeout settings for the sync server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration of the device-local store.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path or "file:" URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Remote transport modes.
const (
	RemoteModeHTTP     = "http"
	RemoteModePostgres = "postgres"
)

// Remote holds the settings of the remote store the daemon syncs with.
type Remote struct {
	// Mode selects the transport: "http" talks to a sync server,
	// "postgres" writes to the shared database directly.
	// Env: REMOTE_MODE
	Mode string `env:"MODE"`

	// HTTPAddress is the base URL or host:port of the sync server.
	// Env: REMOTE_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// DatabaseURI is the PostgreSQL connection string used in postgres mode
	// and by the sync server.
	// Env: REMOTE_DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI"`

	// RequestTimeout bounds a single outbound request.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxOpenConns caps the PostgreSQL connection pool.
	// Env: REMOTE_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`

	// MaxRetries is the number of retries for retryable PostgreSQL errors.
	// Env: REMOTE_MAX_RETRIES
	MaxRetries uint64 `env:"MAX_RETRIES"`

	// RetryBaseDelay is the first backoff step between retries.
	// Env: REMOTE_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`

	// PageSize limits how many changed records one download returns.
	// Zero means unlimited.
	// Env: REMOTE_PAGE_SIZE
	PageSize uint64 `env:"PAGE_SIZE"`
}

// Dirty policies accepted by Sync.DirtyPolicy.
const (
	DirtyPolicyModified = "modified"
	DirtyPolicyStale    = "stale"
)

// Sync holds the sync engine settings.
type Sync struct {
	// Interval is the period of the background sync job.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// DirtyPolicy is "modified" (default) or "stale".
	// Env: SYNC_DIRTY_POLICY
	DirtyPolicy string `env:"DIRTY_POLICY"`

	// StaleThreshold is the age after which a synced record is pushed again
	// under the stale policy.
	// Env: SYNC_STALE_THRESHOLD
	StaleThreshold time.Duration `env:"STALE_THRESHOLD"`

	// MaxParallel is the number of entity adapters run at once.
	// Values below 2 keep the sequential order.
	// Env: SYNC_MAX_PARALLEL
	MaxParallel int `env:"MAX_PARALLEL"`

	// Download enables the remote-to-local direction when the remote
	// supports a change feed.
	// Env: SYNC_DOWNLOAD
	Download bool `env:"DOWNLOAD"`
}

// Server holds network and timeout settings for the sync server.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
