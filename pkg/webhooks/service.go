// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

const (
	ClaimOrganizationID = authentication.ClaimOrganizationID
	ClaimRole           = authentication.ClaimRole
)

type Service struct {
	storage StorageInterface
	tenancy TenancyInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tenancy TenancyInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tenancy: tenancy,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration records a freshly registered identity in the users table so
// invitations can be matched against its email.
func (s *Service) HandleRegistration(ctx context.Context, kratosIdentity *KratosIdentity) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	email := identity.NormalizeEmail(kratosIdentity.Traits.Email)

	s.logger.Debugf("handling registration for identity %s", kratosIdentity.ID)

	fields := make(map[string]string)
	if kratosIdentity.ID == "" {
		fields["id"] = "identity id is required"
	}
	if email == "" {
		fields["traits.email"] = "email is required"
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	user := &types.User{
		ID:    kratosIdentity.ID,
		Email: email,
	}

	for _, addr := range kratosIdentity.VerifiableAddresses {
		if identity.NormalizeEmail(addr.Value) == email && addr.Verified {
			user.EmailVerified = true
		}
	}

	saved, err := s.storage.UpsertUser(ctx, user)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to save user: %w", err))
	}

	s.logger.Infof("registered user %s", saved.ID)

	return saved, nil
}

// HandleTokenHook adds the subject's organization and role to the tokens Hydra is about
// to issue. Subjects without a membership get their tokens unchanged.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	resp := new(TokenHookResponse)

	subject := ""
	if req.Session != nil && req.Session.DefaultSession != nil {
		subject = req.Session.DefaultSession.Subject
	}

	if subject == "" {
		return resp, nil
	}

	m, err := s.tenancy.ResolveMembership(ctx, subject, "")
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindNoOrganization, apperrors.KindUnauthenticated:
			return resp, nil
		default:
			return nil, err
		}
	}

	claims := map[string]any{
		ClaimOrganizationID: m.OrganizationID,
		ClaimRole:           string(m.Role),
	}

	resp.Session.IDToken = claims
	resp.Session.AccessToken = claims

	return resp, nil
}
