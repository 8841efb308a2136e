// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"time"

	"github.com/canonical/finance-tracker/internal/mail"
	"github.com/canonical/finance-tracker/internal/types"
)

type ServiceInterface interface {
	Send(ctx context.Context, req *SendRequest) (*types.Invitation, error)
	List(ctx context.Context) (*List, error)
	Accept(ctx context.Context, userID, token string) (*types.Membership, error)
	Revoke(ctx context.Context, invitationID string) (*types.Invitation, error)
}

// StorageInterface is the subset of internal/storage the invitation engine writes through.
type StorageInterface interface {
	UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error)
	GetInvitation(ctx context.Context, organizationID, id string) (*types.Invitation, error)
	GetInvitationByEmail(ctx context.Context, organizationID, email string) (*types.Invitation, error)
	GetInvitationByTokenHash(ctx context.Context, tokenHash string) (*types.Invitation, error)
	ListInvitations(ctx context.Context, organizationID string) ([]*types.Invitation, error)
	ClaimInvitation(ctx context.Context, id string, at time.Time) error
	RevokeInvitation(ctx context.Context, organizationID, id string, at time.Time) (*types.Invitation, error)

	GetOrganization(ctx context.Context, id string) (*types.Organization, error)
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	CreateMembership(ctx context.Context, membership *types.Membership) (*types.Membership, error)
}

type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	// AfterCommit runs fn once the transaction carried by ctx commits.
	AfterCommit(ctx context.Context, fn func())
}

type DirectoryInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	FindUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type DispatcherInterface interface {
	SendInvitationEmail(ctx context.Context, email mail.InvitationEmail) error
}
