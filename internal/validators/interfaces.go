// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks synchronised records against the business rules
// of the finance domain before they leave the device or enter the shared
// store.
//
// The sync adapter validates every dirty record before pushing it, and the
// sync server validates every record it receives before the upsert.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
