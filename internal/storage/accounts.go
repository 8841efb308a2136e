// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/finance-tracker/internal/types"
)

var instrumentColumns = []string{
	"id", "organization_id", "created_by", "name", "type", "currency", "institution",
	"account_number", "is_active", "created_at", "updated_at", "deleted_at", "deleted_by",
}

func instrumentDest(i *types.Instrument) []any {
	return []any{
		&i.ID, &i.OrganizationID, &i.CreatedBy, &i.Name, &i.Type, &i.Currency, &i.Institution,
		&i.AccountNumber, &i.IsActive, &i.CreatedAt, &i.UpdatedAt, &i.DeletedAt, &i.DeletedBy,
	}
}

func instrumentValues(i *types.Instrument) map[string]any {
	return map[string]any{
		"name":           i.Name,
		"type":           i.Type,
		"currency":       i.Currency,
		"institution":    i.Institution,
		"account_number": i.AccountNumber,
		"is_active":      i.IsActive,
	}
}

var accounts = instrumentTable[types.Account]{
	name:    "accounts",
	kind:    "account",
	columns: instrumentColumns,
	scan: func(row sq.RowScanner) (*types.Account, error) {
		a := new(types.Account)
		if err := row.Scan(instrumentDest(&a.Instrument)...); err != nil {
			return nil, err
		}
		return a, nil
	},
}

func (s *Storage) ListAccounts(ctx context.Context, scope types.Scope, filter types.InstrumentFilter) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAccounts")
	defer span.End()

	return accounts.list(ctx, s, scope, filter)
}

func (s *Storage) GetAccount(ctx context.Context, scope types.Scope, id string) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAccount")
	defer span.End()

	return accounts.get(ctx, s, scope, id)
}

// CreateAccount ignores any organization or creator carried by a; both come from the caller's context.
func (s *Storage) CreateAccount(ctx context.Context, organizationID, actorID string, a *types.Account) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAccount")
	defer span.End()

	return accounts.insert(ctx, s, organizationID, actorID, instrumentValues(&a.Instrument))
}

func (s *Storage) UpdateAccount(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAccount")
	defer span.End()

	return accounts.update(ctx, s, scope, id, changes)
}

func (s *Storage) SoftDeleteAccount(ctx context.Context, scope types.Scope, id, actorID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SoftDeleteAccount")
	defer span.End()

	return accounts.softDelete(ctx, s, scope, id, actorID)
}

func (s *Storage) HardDeleteAccount(ctx context.Context, scope types.Scope, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.HardDeleteAccount")
	defer span.End()

	return accounts.hardDelete(ctx, s, scope, id)
}
