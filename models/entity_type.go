// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityType names one family of synchronised records. It is used as the
// table suffix in both stores and as the path segment of the sync API.
type EntityType string

const (
	EntityAccount     EntityType = "account"
	EntityTransaction EntityType = "transaction"
	EntityBudget      EntityType = "budget"
	EntityGoal        EntityType = "goal"
)

// AllEntityTypes returns every entity type in the order the orchestrator
// syncs them. Accounts go first so transactions never reference an account
// the remote store has not seen yet.
func AllEntityTypes() []EntityType {
	return []EntityType{EntityAccount, EntityTransaction, EntityBudget, EntityGoal}
}

// IsValid reports whether e is one of the known entity types.
func (e EntityType) IsValid() bool {
	switch e {
	case EntityAccount, EntityTransaction, EntityBudget, EntityGoal:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (e EntityType) String() string {
	return string(e)
}
