// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the sync server.
//
// Clients push single records with PUT /api/sync/{entity}/{id} and pull
// records changed after a cursor with GET /api/sync/{entity}?since=...
// Request tracing, access logging, panic recovery and response compression
// are handled here before requests reach the service layer.
package http
