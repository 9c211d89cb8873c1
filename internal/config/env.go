// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom fills cfg from environ. Keys are the envPrefix and env tags
// joined together, e.g. SYNC_DIRTY_POLICY or REMOTE_PAGE_SIZE; durations use
// time.ParseDuration syntax ("90s", "15m"). Unset keys leave the zero value,
// which the client and server views later replace with their defaults.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
