// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidRemoteConfigs indicates an unknown remote mode or a missing
	// address for the selected one.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidSyncConfigs indicates invalid sync engine settings
	// (for example, an unknown dirty policy).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
