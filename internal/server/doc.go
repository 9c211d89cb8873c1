// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the sync server's HTTP transport.
//
// It owns the listener lifecycle: startup, waiting for a stop signal and
// graceful shutdown with in-flight requests drained.
package server
