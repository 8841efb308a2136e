// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"github.com/canonical/finance-tracker/internal/types"
)

type SendRequest struct {
	Email string     `json:"email" validate:"required,email,max=320"`
	Role  types.Role `json:"role,omitempty" validate:"omitempty,role"`
}

type AcceptRequest struct {
	Token string `json:"token" validate:"required,max=128"`
}

// List groups an organization's invitations by their state at read time.
type List struct {
	Pending  []*types.Invitation `json:"pending"`
	Expired  []*types.Invitation `json:"expired"`
	Accepted []*types.Invitation `json:"accepted"`
	Revoked  []*types.Invitation `json:"revoked"`
}

func (l *List) Counts() map[string]int {
	return map[string]int{
		"pending":  len(l.Pending),
		"expired":  len(l.Expired),
		"accepted": len(l.Accepted),
		"revoked":  len(l.Revoked),
	}
}

func (l *List) Total() int {
	return len(l.Pending) + len(l.Expired) + len(l.Accepted) + len(l.Revoked)
}
