// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/finance-tracker/internal/types"
)

type StorageInterface interface {
	UserStorageInterface
	TenancyStorageInterface
	InvitationStorageInterface
	LedgerStorageInterface
}

type UserStorageInterface interface {
	UpsertUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUser(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type TenancyStorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	GetOrganization(ctx context.Context, id string) (*types.Organization, error)
	SoftDeleteOrganization(ctx context.Context, id, actorID string) error
	CreateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]*types.Membership, error)
	ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error)
}

type InvitationStorageInterface interface {
	UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	GetInvitation(ctx context.Context, organizationID, id string) (*types.Invitation, error)
	GetInvitationByEmail(ctx context.Context, organizationID, email string) (*types.Invitation, error)
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (*types.Invitation, error)
	ListInvitations(ctx context.Context, organizationID string) ([]*types.Invitation, error)
	ClaimInvitation(ctx context.Context, id string, at time.Time) error
	RevokeInvitation(ctx context.Context, organizationID, id string, at time.Time) (*types.Invitation, error)
}

type LedgerStorageInterface interface {
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
