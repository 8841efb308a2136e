// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
)

const DefaultPlan = "FREE"

type Service struct {
	storage StorageInterface
	tx      TxRunnerInterface
	authz   authorization.AuthorizerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tx TxRunnerInterface,
	authz authorization.AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tx:      tx,
		authz:   authz,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// ResolveMembership picks the caller's membership in a live organization.
// An explicit organizationID narrows the choice to that organization; otherwise the
// first membership in storage order wins.
func (s *Service) ResolveMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenancy.Service.ResolveMembership")
	defer span.End()

	if userID == "" {
		return nil, apperrors.Unauthenticated()
	}

	if organizationID != "" {
		m, err := s.storage.GetMembership(ctx, organizationID, userID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NoOrganization()
		}
		if err != nil {
			return nil, apperrors.Internal(fmt.Errorf("failed to get membership: %w", err))
		}

		return m, nil
	}

	memberships, err := s.storage.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list memberships: %w", err))
	}

	if len(memberships) == 0 {
		return nil, apperrors.NoOrganization()
	}

	return memberships[0], nil
}

// CreateOrganization creates the organization and makes userID its owner in one transaction.
func (s *Service) CreateOrganization(ctx context.Context, userID, name, plan string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenancy.Service.CreateOrganization")
	defer span.End()

	if userID == "" {
		return nil, apperrors.Unauthenticated()
	}

	if plan == "" {
		plan = DefaultPlan
	}

	var membership *types.Membership
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		org, err := s.storage.CreateOrganization(ctx, &types.Organization{Name: name, Plan: plan})
		if err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		now := time.Now().UTC()
		membership, err = s.storage.CreateMembership(ctx, &types.Membership{
			OrganizationID: org.ID,
			UserID:         userID,
			Role:           types.RoleOwner,
			AcceptedAt:     &now,
		})
		if err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Errorf("failed to create organization for user %s: %v", userID, err)
		return nil, apperrors.Internal(err)
	}

	s.logger.Security().AdminAction(userID, "create", "organization", membership.OrganizationID)

	return membership, nil
}

func (s *Service) GetCurrentOrganization(ctx context.Context) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "tenancy.Service.GetCurrentOrganization")
	defer span.End()

	m, ok := MembershipFromContext(ctx)
	if !ok {
		return nil, apperrors.NoOrganization()
	}

	return m, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenancy.Service.ListMembers")
	defer span.End()

	m, ok := MembershipFromContext(ctx)
	if !ok {
		return nil, apperrors.NoOrganization()
	}

	members, err := s.storage.ListMembers(ctx, m.OrganizationID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list members: %w", err))
	}

	return members, nil
}

// DeleteOrganization soft-deletes the caller's organization. Only owners may do so.
func (s *Service) DeleteOrganization(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "tenancy.Service.DeleteOrganization")
	defer span.End()

	m, ok := MembershipFromContext(ctx)
	if !ok {
		return apperrors.NoOrganization()
	}

	if err := s.authz.Authorize(ctx, m, authorization.ActionManageOrganization); err != nil {
		return err
	}

	err := s.storage.SoftDeleteOrganization(ctx, m.OrganizationID, m.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NotFound("organization %s not found", m.OrganizationID)
	}
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete organization: %w", err))
	}

	s.logger.Security().AdminAction(m.UserID, "delete", "organization", m.OrganizationID)

	return nil
}
