// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

type contextKey int

const (
	userContextKey contextKey = iota
	organizationHintContextKey
)

// WithUserID returns a new context with the given user ID derived from the parent context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey, userID)
}

// GetUserID retrieves the user ID from the context.
// Returns an empty string and false if the user ID is not present or empty.
func GetUserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userContextKey).(string)
	return id, ok && id != ""
}

// WithOrganizationHint records the organization a token was minted for.
func WithOrganizationHint(ctx context.Context, organizationID string) context.Context {
	return context.WithValue(ctx, organizationHintContextKey, organizationID)
}

// OrganizationHint returns the organization carried by the caller's token, if any.
func OrganizationHint(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organizationHintContextKey).(string)
	return id, ok && id != ""
}
