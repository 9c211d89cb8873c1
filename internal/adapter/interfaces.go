// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the client sync engine to a remote sync server
// over HTTP.
//
// [HTTPRemoteRepository] implements both [store.RemoteRepository] and
// [store.ChangeFeed] for one entity type, so a client talking to the server
// syncs in both directions exactly as if it had direct access to the
// PostgreSQL store. [NewHTTPRemotes] builds the full set for all four
// entity types on one shared connection pool.
//
// HTTP statuses are mapped to the sentinel values in errors.go. Transport
// failures and gateway statuses (502, 503, 504) wrap
// [store.ErrRemoteUnavailable], which aborts the entity sync; every other
// non-2xx status concerns the pushed record only.
package adapter

import (
	"github.com/MKhiriev/wealthwise-sync/internal/store"
	"github.com/MKhiriev/wealthwise-sync/models"
)

var (
	_ store.RemoteRepositoryWithFeed[*models.Account]     = (*HTTPRemoteRepository[*models.Account])(nil)
	_ store.RemoteRepositoryWithFeed[*models.Transaction] = (*HTTPRemoteRepository[*models.Transaction])(nil)
	_ store.RemoteRepositoryWithFeed[*models.Budget]      = (*HTTPRemoteRepository[*models.Budget])(nil)
	_ store.RemoteRepositoryWithFeed[*models.Goal]        = (*HTTPRemoteRepository[*models.Goal])(nil)
)
