// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ChangesResponse is returned by GET /api/sync/{entity}?since=…
// Records are kept raw so the client can decode them into the concrete
// entity type it asked for.
type ChangesResponse struct {
	// Records changed on the server strictly after the requested cursor.
	Records []json.RawMessage `json:"records"`

	// Cursor is the server-side change time of the newest record returned,
	// or the requested cursor when nothing changed. Clients pass it back
	// verbatim on the next pull.
	Cursor time.Time `json:"cursor"`

	// Length is len(Records).
	Length int `json:"length"`
}
