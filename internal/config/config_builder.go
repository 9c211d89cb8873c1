// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
)

// configLayer is one configuration source. Later layers override the
// non-zero fields of earlier ones.
type configLayer struct {
	source string
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []configLayer
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		layers: make([]configLayer, 0, 3),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, layer := range b.layers {
		if err := mergo.Merge(merged, layer.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", layer.source, err)
		}
	}

	// REMOTE_MODE=Postgres and "dirty-policy": " stale" are accepted
	merged.Remote.Mode = normalizeChoice(merged.Remote.Mode)
	merged.Sync.DirtyPolicy = normalizeChoice(merged.Sync.DirtyPolicy)

	return merged, merged.validate()
}

func (b *configBuilder) add(source string, cfg *StructuredConfig) *configBuilder {
	b.layers = append(b.layers, configLayer{source: source, cfg: cfg})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := new(StructuredConfig)
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	return b.add("env", envCfg)
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add("flags", ParseFlags())
}

// withJSON loads the file named by the last layer that set CONFIG or -c.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, layer := range b.layers {
		if layer.cfg.JSONFilePath != "" {
			jsonPath = layer.cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	return b.add("json "+jsonPath, jsonCfg)
}

func normalizeChoice(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
