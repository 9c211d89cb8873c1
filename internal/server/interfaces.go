// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// RunServer serves requests until ctx is done, then shuts down
	// gracefully. It returns nil after a clean shutdown.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight
	// requests until ctx expires.
	Shutdown(ctx context.Context) error
}
