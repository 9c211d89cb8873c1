// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BudgetPeriod is the recurrence window of a budget.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
	BudgetYearly  BudgetPeriod = "yearly"
)

// Budget caps spending for a category over a recurring period.
type Budget struct {
	SyncMeta

	Name       string       `json:"name"`
	Category   string       `json:"category"`
	LimitMinor int64        `json:"limit_minor"`
	Currency   string       `json:"currency"`
	Period     BudgetPeriod `json:"period"`
	StartsOn   time.Time    `json:"starts_on"`
}

// NewBudget builds a dirty budget with a fresh identity.
func NewBudget(id string, now time.Time) *Budget {
	b := &Budget{}
	b.InitSyncMeta(id, now)
	return b
}
