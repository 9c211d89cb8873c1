// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Transaction is a single money movement on an account. Positive amounts
// are income, negative amounts are expenses.
type Transaction struct {
	SyncMeta

	AccountID   string    `json:"account_id"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewTransaction builds a dirty transaction with a fresh identity.
func NewTransaction(id string, now time.Time) *Transaction {
	t := &Transaction{}
	t.InitSyncMeta(id, now)
	return t
}
