// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"context"

	"github.com/canonical/finance-tracker/internal/types"
)

// InvitationEmail is everything a template needs to render the invitation.
type InvitationEmail struct {
	To               string     `json:"to"`
	OrganizationName string     `json:"organization_name"`
	InviterName      string     `json:"inviter_name"`
	Token            string     `json:"token"`
	AcceptURL        string     `json:"accept_url"`
	Role             types.Role `json:"role"`
}

type DispatcherInterface interface {
	SendInvitationEmail(context.Context, InvitationEmail) error
}
