// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.layers)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones while zero fields keep the earlier value.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.add("env", &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "env.db"}},
		Sync:    Sync{Interval: time.Minute, DirtyPolicy: DirtyPolicyStale},
	})
	b.add("json", &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "json.db"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Sync.Interval)
	assert.Equal(t, DirtyPolicyStale, cfg.Sync.DirtyPolicy)
}

func TestBuild_NormalizesChoices(t *testing.T) {
	b := newConfigBuilder()
	b.add("env", &StructuredConfig{
		Remote: Remote{Mode: " Postgres"},
		Sync:   Sync{DirtyPolicy: "STALE "},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, RemoteModePostgres, cfg.Remote.Mode)
	assert.Equal(t, DirtyPolicyStale, cfg.Sync.DirtyPolicy)
}

func TestBuild_RejectsUnknownDirtyPolicy(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{Sync: Sync{DirtyPolicy: "sometimes"}})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

func TestBuild_RejectsUnknownRemoteMode(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{Remote: Remote{Mode: "carrier-pigeon"}})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRemoteConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("SYNC_DIRTY_POLICY", "stale")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.layers, 1)
	assert.Equal(t, "env-version", b.layers[0].cfg.App.Version)
	assert.Equal(t, DirtyPolicyStale, b.layers[0].cfg.Sync.DirtyPolicy)
}

func TestWithEnv_SetsErrorOnBadDuration(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SYNC_INTERVAL", "every now and then")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.layers)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_AppendsParsedFlags(t *testing.T) {
	resetFlags(t, "-d", "flags.db")

	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags())
	require.Len(t, b.layers, 1)
	assert.Equal(t, "flags.db", b.layers[0].cfg.Storage.DB.DSN)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.add("test", &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.layers, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Sync.Interval = Duration(2 * time.Minute)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.add("test", &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 2)
	assert.Equal(t, "json "+path, b.layers[1].source)
	assert.Equal(t, "json-version", b.layers[1].cfg.App.Version)
	assert.Equal(t, 2*time.Minute, b.layers[1].cfg.Sync.Interval)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.add("flags", &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.add("env", &StructuredConfig{JSONFilePath: "/nonexistent/first.json"})
	b.add("flags", &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.layers, 3)
	assert.Equal(t, "last-wins", b.layers[2].cfg.App.Version)
}

// ── views ─────────────────────────────────────────────────────────────────────

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: "local.db"}},
		Remote:  Remote{HTTPAddress: "localhost:8080"},
	})

	require.NoError(t, cfg.validate())
	assert.Equal(t, RemoteModeHTTP, cfg.Remote.Mode)
	assert.Equal(t, DefaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, DirtyPolicyModified, cfg.Sync.DirtyPolicy)
	assert.Equal(t, DefaultStaleThreshold, cfg.Sync.StaleThreshold)
	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, 1, cfg.Sync.MaxParallel)
	assert.Equal(t, uint64(DefaultMaxRetries), cfg.Remote.DB.MaxRetries)
	assert.False(t, cfg.Sync.Download)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "missing dsn",
			cfg:     StructuredConfig{Remote: Remote{HTTPAddress: "localhost:8080"}},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "http mode without address",
			cfg:     StructuredConfig{Storage: Storage{DB: DB{DSN: "local.db"}}},
			wantErr: ErrInvalidRemoteConfigs,
		},
		{
			name: "postgres mode without uri",
			cfg: StructuredConfig{
				Storage: Storage{DB: DB{DSN: "local.db"}},
				Remote:  Remote{Mode: RemoteModePostgres},
			},
			wantErr: ErrInvalidRemoteConfigs,
		},
		{
			name: "postgres mode",
			cfg: StructuredConfig{
				Storage: Storage{DB: DB{DSN: "local.db"}},
				Remote:  Remote{Mode: RemoteModePostgres, DatabaseURI: "postgres://localhost/sync"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newClientConfig(&tt.cfg).validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewServerConfig(t *testing.T) {
	cfg := newServerConfig(&StructuredConfig{
		App:    App{Version: "1.2.3"},
		Remote: Remote{DatabaseURI: "postgres://localhost/sync", PageSize: 100},
	})

	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultServerAddress, cfg.HTTPAddress)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, uint64(100), cfg.DB.PageSize)

	assert.ErrorIs(t, newServerConfig(&StructuredConfig{}).validate(), ErrInvalidRemoteConfigs)
}
