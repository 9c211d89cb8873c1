// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		Mode           string   `json:"mode"`
		HTTPAddress    string   `json:"address"`
		DatabaseURI    string   `json:"database_uri"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxOpenConns   int      `json:"max_open_conns"`
		MaxRetries     uint64   `json:"max_retries"`
		RetryBaseDelay Duration `json:"retry_base_delay"`
		PageSize       uint64   `json:"page_size"`
	} `json:"remote,omitempty"`

	Sync struct {
		Interval       Duration `json:"interval"`
		DirtyPolicy    string   `json:"dirty_policy"`
		StaleThreshold Duration `json:"stale_threshold"`
		MaxParallel    int      `json:"max_parallel"`
		Download       bool     `json:"download"`
	} `json:"sync,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Remote: Remote{
			Mode:           jsonCfg.Remote.Mode,
			HTTPAddress:    jsonCfg.Remote.HTTPAddress,
			DatabaseURI:    jsonCfg.Remote.DatabaseURI,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			MaxOpenConns:   jsonCfg.Remote.MaxOpenConns,
			MaxRetries:     jsonCfg.Remote.MaxRetries,
			RetryBaseDelay: time.Duration(jsonCfg.Remote.RetryBaseDelay),
			PageSize:       jsonCfg.Remote.PageSize,
		},
		Sync: Sync{
			Interval:       time.Duration(jsonCfg.Sync.Interval),
			DirtyPolicy:    jsonCfg.Sync.DirtyPolicy,
			StaleThreshold: time.Duration(jsonCfg.Sync.StaleThreshold),
			MaxParallel:    jsonCfg.Sync.MaxParallel,
			Download:       jsonCfg.Sync.Download,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
