// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/wealthwise-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the stable record identity.
	FieldID = "id"

	// FieldUpdatedAt targets the last-modification timestamp. It is not part
	// of the default field set: a partially initialised record may still be
	// pushed, the conflict resolver treats it as older than anything else.
	FieldUpdatedAt = "updated_at"

	FieldName     = "name"
	FieldCurrency = "currency"

	// FieldKind targets the account classification.
	FieldKind = "kind"

	// FieldAccountID targets the account a transaction belongs to.
	FieldAccountID = "account_id"

	// FieldAmount targets the transaction amount.
	FieldAmount = "amount"

	// FieldLimit targets the budget limit.
	FieldLimit = "limit"

	// FieldPeriod targets the budget period.
	FieldPeriod = "period"

	// FieldTarget targets the goal target amount.
	FieldTarget = "target"

	// FieldSaved targets the amount already saved towards a goal.
	FieldSaved = "saved"
)

var allowedAccountKinds = []models.AccountKind{
	models.AccountChecking,
	models.AccountSavings,
	models.AccountCreditCard,
	models.AccountCash,
	models.AccountInvestment,
}

var allowedBudgetPeriods = []models.BudgetPeriod{
	models.BudgetWeekly,
	models.BudgetMonthly,
	models.BudgetYearly,
}

// RecordValidator implements [Validator] for every synchronised entity:
// Account, Transaction, Budget and Goal, by value or by pointer.
//
// Called with no field names it checks the full default set of the entity.
// Passing field names restricts the check to those fields; a name that does
// not apply to the entity yields [ErrUnknownField].
type RecordValidator struct{}

// NewRecordValidator returns a ready to use [RecordValidator].
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate implements [Validator].
func (v *RecordValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch value := value.(type) {
	case models.Account:
		return v.validateAccount(ctx, &value, fields...)
	case *models.Account:
		return v.validateAccount(ctx, value, fields...)

	case models.Transaction:
		return v.validateTransaction(ctx, &value, fields...)
	case *models.Transaction:
		return v.validateTransaction(ctx, value, fields...)

	case models.Budget:
		return v.validateBudget(ctx, &value, fields...)
	case *models.Budget:
		return v.validateBudget(ctx, value, fields...)

	case models.Goal:
		return v.validateGoal(ctx, &value, fields...)
	case *models.Goal:
		return v.validateGoal(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateAccount(_ context.Context, a *models.Account, fields ...string) error {
	if a == nil {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldCurrency, FieldKind}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			if a.Name == "" {
				err = ErrEmptyName
			}
		case FieldCurrency:
			err = checkCurrency(a.Currency)
		case FieldKind:
			if a.Kind != "" && !slices.Contains(allowedAccountKinds, a.Kind) {
				err = ErrInvalidAccountKind
			}
		default:
			err = checkMeta(&a.SyncMeta, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RecordValidator) validateTransaction(_ context.Context, t *models.Transaction, fields ...string) error {
	if t == nil {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = []string{FieldID, FieldAccountID, FieldAmount, FieldCurrency}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAccountID:
			if t.AccountID == "" {
				err = ErrInvalidAccountID
			}
		case FieldAmount:
			if t.AmountMinor == 0 {
				err = ErrZeroAmount
			}
		case FieldCurrency:
			err = checkCurrency(t.Currency)
		default:
			err = checkMeta(&t.SyncMeta, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RecordValidator) validateBudget(_ context.Context, b *models.Budget, fields ...string) error {
	if b == nil {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldLimit, FieldCurrency, FieldPeriod}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			if b.Name == "" {
				err = ErrEmptyName
			}
		case FieldLimit:
			if b.LimitMinor <= 0 {
				err = ErrInvalidLimit
			}
		case FieldCurrency:
			err = checkCurrency(b.Currency)
		case FieldPeriod:
			if !slices.Contains(allowedBudgetPeriods, b.Period) {
				err = ErrInvalidPeriod
			}
		default:
			err = checkMeta(&b.SyncMeta, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RecordValidator) validateGoal(_ context.Context, g *models.Goal, fields ...string) error {
	if g == nil {
		return ErrUnsupportedType
	}
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldTarget, FieldSaved, FieldCurrency}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldName:
			if g.Name == "" {
				err = ErrEmptyName
			}
		case FieldTarget:
			if g.TargetMinor <= 0 {
				err = ErrInvalidTarget
			}
		case FieldSaved:
			if g.SavedMinor < 0 {
				err = ErrNegativeSaved
			}
		case FieldCurrency:
			err = checkCurrency(g.Currency)
		default:
			err = checkMeta(&g.SyncMeta, f)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// checkMeta handles the fields shared by every entity.
func checkMeta(m *models.SyncMeta, field string) error {
	switch field {
	case FieldID:
		if m.ID == "" {
			return ErrInvalidID
		}
	case FieldUpdatedAt:
		if m.UpdatedAt == nil {
			return ErrMissingUpdatedAt
		}
	default:
		return ErrUnknownField
	}
	return nil
}

func checkCurrency(code string) error {
	if len(code) != 3 {
		return ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ErrInvalidCurrency
		}
	}
	return nil
}
