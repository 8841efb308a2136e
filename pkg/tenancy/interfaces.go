// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/finance-tracker/internal/types"
)

type ServiceInterface interface {
	ResolveMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error)
	CreateOrganization(ctx context.Context, userID, name, plan string) (*types.Membership, error)
	GetCurrentOrganization(ctx context.Context) (*types.Membership, error)
	ListMembers(ctx context.Context) ([]*types.Membership, error)
	DeleteOrganization(ctx context.Context) error
}

// StorageInterface is the subset of internal/storage used by the directory.
type StorageInterface interface {
	CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error)
	SoftDeleteOrganization(ctx context.Context, id, actorID string) error
	CreateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]*types.Membership, error)
	ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error)
}

type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}
