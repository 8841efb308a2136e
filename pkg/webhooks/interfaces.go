// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/finance-tracker/internal/types"
)

// StorageInterface is the subset of the users storage written by the registration hook.
type StorageInterface interface {
	UpsertUser(ctx context.Context, u *types.User) (*types.User, error)
}

// TenancyInterface resolves the membership whose claims are added to issued tokens.
type TenancyInterface interface {
	ResolveMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identity *KratosIdentity) (*types.User, error)
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}
