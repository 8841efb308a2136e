// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/finance-tracker/internal/types"
)

type contextKey struct{}

var membershipContextKey = contextKey{}

// WithMembership attaches the caller's resolved membership to ctx.
func WithMembership(ctx context.Context, m *types.Membership) context.Context {
	return context.WithValue(ctx, membershipContextKey, m)
}

// MembershipFromContext returns the membership resolved for the current request.
func MembershipFromContext(ctx context.Context) (*types.Membership, bool) {
	m, ok := ctx.Value(membershipContextKey).(*types.Membership)
	return m, ok && m != nil
}
