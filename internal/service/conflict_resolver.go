// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/wealthwise-sync/internal/logger"
	"github.com/MKhiriev/wealthwise-sync/models"
)

// Side names the copy that won a conflict.
type Side string

const (
	SideLocal  Side = "local"
	SideRemote Side = "remote"
)

// ConflictResolver picks between two versions of the same record using
// last-write-wins on UpdatedAt:
//   - a local version without UpdatedAt loses;
//   - otherwise a remote version without UpdatedAt loses;
//   - otherwise the strictly later version wins;
//   - equal timestamps go to the remote version.
//
// The winner is returned whole. Fields changed only on the losing side are
// lost; there is no field-level merge.
type ConflictResolver[T models.Syncable] struct {
	logger *logger.Logger
}

// NewConflictResolver returns a resolver that logs every decision to log.
func NewConflictResolver[T models.Syncable](log *logger.Logger) *ConflictResolver[T] {
	if log == nil {
		log = logger.Nop()
	}
	return &ConflictResolver[T]{logger: log}
}

// Resolve returns the winning version and which side it came from.
func (r *ConflictResolver[T]) Resolve(local, remote T) (T, Side) {
	side := pickSide(local.GetUpdatedAt(), remote.GetUpdatedAt())

	r.logger.Info().
		Str(logger.FieldRecordID, local.GetID()).
		Any("local_updated_at", local.GetUpdatedAt()).
		Any("remote_updated_at", remote.GetUpdatedAt()).
		Str("winner", string(side)).
		Msg("sync conflict resolved")

	if side == SideLocal {
		return local, SideLocal
	}
	return remote, SideRemote
}

func pickSide(local, remote *time.Time) Side {
	switch {
	case local == nil:
		return SideRemote
	case remote == nil:
		return SideLocal
	case local.After(*remote):
		return SideLocal
	default:
		return SideRemote
	}
}
