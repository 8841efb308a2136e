// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/finance-tracker/internal/types"
)

type AuthorizerInterface interface {
	// Authorize returns nil when the membership's role may perform action,
	// a Forbidden error naming the minimum role otherwise.
	Authorize(context.Context, *types.Membership, Action) error
}
