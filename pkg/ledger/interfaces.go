// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"

	"github.com/canonical/finance-tracker/internal/types"
)

type ServiceInterface interface {
	ListAccounts(ctx context.Context, filter types.InstrumentFilter, includeInactive bool) ([]*types.Account, error)
	GetAccount(ctx context.Context, id string, includeInactive bool) (*types.Account, error)
	CreateAccount(ctx context.Context, req *AccountRequest) (*types.Account, error)
	UpdateAccount(ctx context.Context, id string, req *AccountUpdateRequest) (*types.Account, error)
	DeleteAccount(ctx context.Context, id string, hard bool) error

	ListLiabilities(ctx context.Context, filter types.InstrumentFilter, includeInactive bool) ([]*types.Liability, error)
	GetLiability(ctx context.Context, id string, includeInactive bool) (*types.Liability, error)
	CreateLiability(ctx context.Context, req *LiabilityRequest) (*types.Liability, error)
	UpdateLiability(ctx context.Context, id string, req *LiabilityUpdateRequest) (*types.Liability, error)
	DeleteLiability(ctx context.Context, id string, hard bool) error

	ListBalances(ctx context.Context, filter types.BalanceFilter, includeInactive bool) ([]*types.Balance, error)
	GetBalance(ctx context.Context, id string, includeInactive bool) (*types.Balance, error)
	UpsertBalance(ctx context.Context, req *BalanceRequest) (*types.Balance, error)
	BulkUpsertBalances(ctx context.Context, req *BulkBalanceRequest) ([]*types.Balance, error)
	UpdateBalance(ctx context.Context, id string, req *BalanceUpdateRequest) (*types.Balance, error)
	DeleteBalance(ctx context.Context, id string) error
}

// StorageInterface is the tenant-scoped subset of internal/storage.
type StorageInterface interface {
	ListAccounts(ctx context.Context, scope types.Scope, filter types.InstrumentFilter) ([]*types.Account, error)
	GetAccount(ctx context.Context, scope types.Scope, id string) (*types.Account, error)
	CreateAccount(ctx context.Context, organizationID, actorID string, a *types.Account) (*types.Account, error)
	UpdateAccount(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Account, error)
	SoftDeleteAccount(ctx context.Context, scope types.Scope, id, actorID string) error
	HardDeleteAccount(ctx context.Context, scope types.Scope, id string) error

	ListLiabilities(ctx context.Context, scope types.Scope, filter types.InstrumentFilter) ([]*types.Liability, error)
	GetLiability(ctx context.Context, scope types.Scope, id string) (*types.Liability, error)
	CreateLiability(ctx context.Context, organizationID, actorID string, l *types.Liability) (*types.Liability, error)
	UpdateLiability(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Liability, error)
	SoftDeleteLiability(ctx context.Context, scope types.Scope, id, actorID string) error
	HardDeleteLiability(ctx context.Context, scope types.Scope, id string) error

	ListBalances(ctx context.Context, scope types.Scope, filter types.BalanceFilter) ([]*types.Balance, error)
	GetBalance(ctx context.Context, scope types.Scope, id string) (*types.Balance, error)
	UpsertBalance(ctx context.Context, organizationID, actorID string, b *types.Balance) (*types.Balance, error)
	BulkUpsertBalances(ctx context.Context, organizationID, actorID string, date types.Date, entries []types.BalanceEntry) ([]*types.Balance, error)
	UpdateBalance(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Balance, error)
	DeleteBalance(ctx context.Context, scope types.Scope, id string) error
}
