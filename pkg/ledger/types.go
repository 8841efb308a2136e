// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/canonical/finance-tracker/internal/types"
)

// Request payloads never carry organization or creator: both come from the resolved membership.

type AccountRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=255"`
	Type          string  `json:"type" validate:"required,account_type"`
	Currency      string  `json:"currency" validate:"required,iso4217"`
	Institution   *string `json:"institution,omitempty" validate:"omitnil,max=255"`
	AccountNumber *string `json:"account_number,omitempty" validate:"omitnil,max=64"`
}

func (r *AccountRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

func (r *AccountRequest) account() *types.Account {
	return &types.Account{
		Instrument: types.Instrument{
			Name:          r.Name,
			Type:          r.Type,
			Currency:      r.Currency,
			Institution:   r.Institution,
			AccountNumber: r.AccountNumber,
			IsActive:      true,
		},
	}
}

type AccountUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Type          *string `json:"type,omitempty" validate:"omitnil,account_type"`
	Currency      *string `json:"currency,omitempty" validate:"omitnil,iso4217"`
	Institution   *string `json:"institution,omitempty" validate:"omitnil,max=255"`
	AccountNumber *string `json:"account_number,omitempty" validate:"omitnil,max=64"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

func (r *AccountUpdateRequest) normalize() {
	trim(r.Name, false)
	trim(r.Type, true)
	trim(r.Currency, true)
}

func (r *AccountUpdateRequest) changes() map[string]any {
	changes := make(map[string]any)
	set(changes, "name", r.Name)
	set(changes, "type", r.Type)
	set(changes, "currency", r.Currency)
	set(changes, "institution", r.Institution)
	set(changes, "account_number", r.AccountNumber)
	set(changes, "is_active", r.IsActive)

	return changes
}

type LiabilityRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=255"`
	Type           string           `json:"type" validate:"required,liability_type"`
	Currency       string           `json:"currency" validate:"required,iso4217"`
	Institution    *string          `json:"institution,omitempty" validate:"omitnil,max=255"`
	AccountNumber  *string          `json:"account_number,omitempty" validate:"omitnil,max=64"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty" validate:"omitnil,gte=0,lte=100"`
	MinimumPayment *decimal.Decimal `json:"minimum_payment,omitempty" validate:"omitnil,gte=0"`
	DueDate        *int16           `json:"due_date,omitempty" validate:"omitnil,gte=1,lte=31"`
}

func (r *LiabilityRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

func (r *LiabilityRequest) liability() *types.Liability {
	return &types.Liability{
		Instrument: types.Instrument{
			Name:          r.Name,
			Type:          r.Type,
			Currency:      r.Currency,
			Institution:   r.Institution,
			AccountNumber: r.AccountNumber,
			IsActive:      true,
		},
		InterestRate:   r.InterestRate,
		MinimumPayment: r.MinimumPayment,
		DueDate:        r.DueDate,
	}
}

type LiabilityUpdateRequest struct {
	Name           *string          `json:"name,omitempty" validate:"omitnil,min=1,max=255"`
	Type           *string          `json:"type,omitempty" validate:"omitnil,liability_type"`
	Currency       *string          `json:"currency,omitempty" validate:"omitnil,iso4217"`
	Institution    *string          `json:"institution,omitempty" validate:"omitnil,max=255"`
	AccountNumber  *string          `json:"account_number,omitempty" validate:"omitnil,max=64"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty" validate:"omitnil,gte=0,lte=100"`
	MinimumPayment *decimal.Decimal `json:"minimum_payment,omitempty" validate:"omitnil,gte=0"`
	DueDate        *int16           `json:"due_date,omitempty" validate:"omitnil,gte=1,lte=31"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

func (r *LiabilityUpdateRequest) normalize() {
	trim(r.Name, false)
	trim(r.Type, true)
	trim(r.Currency, true)
}

func (r *LiabilityUpdateRequest) changes() map[string]any {
	changes := make(map[string]any)
	set(changes, "name", r.Name)
	set(changes, "type", r.Type)
	set(changes, "currency", r.Currency)
	set(changes, "institution", r.Institution)
	set(changes, "account_number", r.AccountNumber)
	set(changes, "interest_rate", r.InterestRate)
	set(changes, "minimum_payment", r.MinimumPayment)
	set(changes, "due_date", r.DueDate)
	set(changes, "is_active", r.IsActive)

	return changes
}

// BalanceRequest references exactly one of AccountID and LiabilityID.
type BalanceRequest struct {
	AccountID   *string          `json:"account_id,omitempty" validate:"omitnil,uuid"`
	LiabilityID *string          `json:"liability_id,omitempty" validate:"omitnil,uuid"`
	Date        types.Date       `json:"date" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

func (r *BalanceRequest) balance() *types.Balance {
	return &types.Balance{
		AccountID:   r.AccountID,
		LiabilityID: r.LiabilityID,
		Date:        r.Date,
		Amount:      *r.Amount,
	}
}

type BalanceUpdateRequest struct {
	Date   *types.Date      `json:"date,omitempty" validate:"omitnil"`
	Amount *decimal.Decimal `json:"amount,omitempty" validate:"omitnil"`
}

func (r *BalanceUpdateRequest) changes() map[string]any {
	changes := make(map[string]any)
	set(changes, "date", r.Date)
	set(changes, "amount", r.Amount)

	return changes
}

type BalanceEntryRequest struct {
	AccountID   *string          `json:"account_id,omitempty" validate:"omitnil,uuid"`
	LiabilityID *string          `json:"liability_id,omitempty" validate:"omitnil,uuid"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

// BulkBalanceRequest records many snapshots for the same date.
type BulkBalanceRequest struct {
	Date    types.Date            `json:"date" validate:"required"`
	Entries []BalanceEntryRequest `json:"entries" validate:"required,min=1,max=500,dive"`
}

func (r *BulkBalanceRequest) entries() []types.BalanceEntry {
	entries := make([]types.BalanceEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, types.BalanceEntry{
			AccountID:   e.AccountID,
			LiabilityID: e.LiabilityID,
			Amount:      *e.Amount,
		})
	}

	return entries
}

func set[T any](changes map[string]any, column string, v *T) {
	if v != nil {
		changes[column] = *v
	}
}

func trim(s *string, upper bool) {
	if s == nil {
		return
	}

	*s = strings.TrimSpace(*s)
	if upper {
		*s = strings.ToUpper(*s)
	}
}
