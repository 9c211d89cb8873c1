// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AccountKind classifies an account.
type AccountKind string

const (
	AccountChecking   AccountKind = "checking"
	AccountSavings    AccountKind = "savings"
	AccountCreditCard AccountKind = "credit_card"
	AccountCash       AccountKind = "cash"
	AccountInvestment AccountKind = "investment"
)

// Account is a bank account, card, wallet or any other place money lives.
type Account struct {
	SyncMeta

	// Name is the human-readable display name.
	Name string `json:"name"`

	// Kind is the account classification.
	Kind AccountKind `json:"kind"`

	// Currency is the ISO 4217 code, e.g. "INR".
	Currency string `json:"currency"`

	// BalanceMinor is the current balance in minor units (paise, cents).
	BalanceMinor int64 `json:"balance_minor"`

	// Institution is the optional bank or provider name.
	Institution string `json:"institution,omitempty"`

	// Archived hides the account from day-to-day views without deleting it.
	Archived bool `json:"archived"`
}

// NewAccount builds a dirty account with a fresh identity.
func NewAccount(id string, now time.Time) *Account {
	a := &Account{}
	a.InitSyncMeta(id, now)
	return a
}
