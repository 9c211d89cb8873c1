// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Goal is a savings target.
type Goal struct {
	SyncMeta

	Name        string     `json:"name"`
	TargetMinor int64      `json:"target_minor"`
	SavedMinor  int64      `json:"saved_minor"`
	Currency    string     `json:"currency"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
}

// NewGoal builds a dirty goal with a fresh identity.
func NewGoal(id string, now time.Time) *Goal {
	g := &Goal{}
	g.InitSyncMeta(id, now)
	return g
}
