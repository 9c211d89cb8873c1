// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/wealthwise-sync/models"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrSyncInProgress is returned by PerformFullSync when another full
	// sync is still running. The running sync is not affected.
	ErrSyncInProgress = errors.New("sync already in progress")

	ErrUnknownDirtyPolicy    = errors.New("unknown dirty policy")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrValidation = errors.New("record validation failed")
)

// SyncError reports the entity type whose adapter aborted a full sync.
// Adapters that completed before it keep their effects.
type SyncError struct {
	Entity models.EntityType
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync of %s failed: %v", e.Entity, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
