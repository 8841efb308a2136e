// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
)

type Action string

const (
	ActionCreate             Action = "create"
	ActionEdit               Action = "edit"
	ActionDelete             Action = "delete"
	ActionInvite             Action = "invite"
	ActionRevokeInvite       Action = "revokeInvite"
	ActionManageOrganization Action = "manageOrganization"
)

// policy maps every action to the least privileged role allowed to perform it.
// Roles are totally ordered, so any role at or above the minimum is allowed.
var policy = map[Action]types.Role{
	ActionCreate:             types.RoleMember,
	ActionEdit:               types.RoleMember,
	ActionDelete:             types.RoleAdmin,
	ActionInvite:             types.RoleAdmin,
	ActionRevokeInvite:       types.RoleAdmin,
	ActionManageOrganization: types.RoleOwner,
}

// Actions lists the known actions in a stable order.
func Actions() []Action {
	return []Action{
		ActionCreate, ActionEdit, ActionDelete, ActionInvite, ActionRevokeInvite, ActionManageOrganization,
	}
}

// MinimumRole returns the least privileged role allowed to perform action.
func MinimumRole(action Action) (types.Role, bool) {
	role, ok := policy[action]
	return role, ok
}

// CanPerform is a pure function of the role and the action; unknown values are denied.
func CanPerform(role types.Role, action Action) bool {
	min, ok := policy[action]
	if !ok {
		return false
	}

	return role.AtLeast(min)
}

type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Authorize(ctx context.Context, membership *types.Membership, action Action) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.Authorize")
	defer span.End()

	if membership == nil {
		return apperrors.NoOrganization()
	}

	span.SetAttributes(
		attribute.String("action", string(action)),
		attribute.String("role", string(membership.Role)),
	)

	if CanPerform(membership.Role, action) {
		return nil
	}

	min, _ := MinimumRole(action)
	a.logger.Security().AuthzFailure(
		membership.UserID,
		string(action),
		logging.WithLabel("organization_id", membership.OrganizationID),
		logging.WithLabel("role", string(membership.Role)),
	)

	return apperrors.Forbidden(string(action), string(min))
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
