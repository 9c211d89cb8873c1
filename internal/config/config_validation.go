// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of which binary consumes them.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Remote.Mode {
	case "", RemoteModeHTTP, RemoteModePostgres:
	default:
		return fmt.Errorf("%w: unknown remote mode %q", ErrInvalidRemoteConfigs, cfg.Remote.Mode)
	}

	switch cfg.Sync.DirtyPolicy {
	case "", DirtyPolicyModified, DirtyPolicyStale:
	default:
		return fmt.Errorf("%w: unknown dirty policy %q", ErrInvalidSyncConfigs, cfg.Sync.DirtyPolicy)
	}

	if cfg.Sync.Interval < 0 || cfg.Sync.StaleThreshold < 0 || cfg.Sync.MaxParallel < 0 {
		return fmt.Errorf("%w: negative value", ErrInvalidSyncConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Remote.Mode {
	case RemoteModeHTTP:
		if cfg.Remote.HTTPAddress == "" {
			return fmt.Errorf("%w: remote address is required in http mode", ErrInvalidRemoteConfigs)
		}
	case RemoteModePostgres:
		if cfg.Remote.DB.DSN == "" {
			return fmt.Errorf("%w: remote database uri is required in postgres mode", ErrInvalidRemoteConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown remote mode %q", ErrInvalidRemoteConfigs, cfg.Remote.Mode)
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.StaleThreshold <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("%w: remote database uri is required", ErrInvalidRemoteConfigs)
	}

	return nil
}
