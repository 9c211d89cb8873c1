// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID          = errors.New("invalid record id")
	ErrMissingUpdatedAt   = errors.New("updated_at is required")
	ErrEmptyName          = errors.New("name is required")
	ErrInvalidCurrency    = errors.New("currency must be a 3-letter ISO 4217 code")
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrInvalidAccountID   = errors.New("invalid account id")
	ErrZeroAmount         = errors.New("amount must not be zero")
	ErrInvalidLimit       = errors.New("limit must be positive")
	ErrInvalidPeriod      = errors.New("invalid budget period")
	ErrInvalidTarget      = errors.New("target must be positive")
	ErrNegativeSaved      = errors.New("saved amount must not be negative")
)
