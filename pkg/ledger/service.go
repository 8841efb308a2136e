// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

const (
	kindAccount   = "account"
	kindLiability = "liability"
	kindBalance   = "balance"
)

// Service is the only way handlers reach financial records. Every call runs against the
// membership resolved for the request, so the organization scope cannot be chosen by the caller.
type Service struct {
	storage   StorageInterface
	authz     authorization.AuthorizerInterface
	validator *validation.Validator
	tracer    tracing.TracingInterface
	monitor   monitoring.MonitorInterface
	logger    logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	authz authorization.AuthorizerInterface,
	validator *validation.Validator,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   storage,
		authz:     authz,
		validator: validator,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (s *Service) membership(ctx context.Context) (*types.Membership, error) {
	m, ok := tenancy.MembershipFromContext(ctx)
	if !ok {
		return nil, apperrors.NoOrganization()
	}

	return m, nil
}

// authorize resolves the membership and checks it may perform action.
func (s *Service) authorize(ctx context.Context, action authorization.Action) (*types.Membership, error) {
	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, m, action); err != nil {
		return nil, err
	}

	return m, nil
}

func scope(m *types.Membership, includeInactive bool) types.Scope {
	return types.Scope{OrganizationID: m.OrganizationID, IncludeInactive: includeInactive}
}

func (s *Service) audit(m *types.Membership, action, kind, id string) {
	s.logger.Security().AdminAction(m.UserID, action, kind, id, logging.WithLabel("organization_id", m.OrganizationID))
}

// storageError translates storage sentinels into API error kinds.
func (s *Service) storageError(err error, kind, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		if id == "" {
			return apperrors.NotFound("%s not found", kind)
		}
		return apperrors.NotFound("%s %s not found", kind, id)
	case errors.Is(err, storage.ErrDuplicateKey):
		if kind == kindBalance {
			return apperrors.Conflict("a balance already exists for this instrument and date")
		}
		return apperrors.Conflict("an active %s with this name already exists", kind)
	case errors.Is(err, storage.ErrCheckViolation):
		return apperrors.ValidationField(kind, "violates a data constraint")
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return apperrors.NotFound("referenced record not found")
	case errors.Is(err, storage.ErrMissingScope):
		return apperrors.NoOrganization()
	}

	s.logger.Errorf("%s storage failure: %v", kind, err)
	return apperrors.Internal(fmt.Errorf("%s: %w", kind, err))
}
