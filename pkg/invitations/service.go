// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/mail"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

// DefaultLifetime is how long an invitation stays acceptable when Config.Lifetime is unset.
const DefaultLifetime = 7 * 24 * time.Hour

type Config struct {
	// Lifetime is how long a sent invitation stays acceptable.
	Lifetime time.Duration
	// PublicURL is the base of the acceptance link put in the email.
	PublicURL string
}

type Service struct {
	storage    StorageInterface
	tx         TxRunnerInterface
	directory  DirectoryInterface
	dispatcher DispatcherInterface
	authz      authorization.AuthorizerInterface
	validator  *validation.Validator

	lifetime  time.Duration
	publicURL string
	now       func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Send issues a fresh token for email, replacing any expired, revoked or accepted invitation
// of the same address. The plaintext token only leaves the service inside the email, which is
// dispatched once the invitation row has committed.
func (s *Service) Send(ctx context.Context, req *SendRequest) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Send")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionInvite)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	role := req.Role
	if role == "" {
		role = types.RoleMember
	}

	if err := s.validator.Struct(&SendRequest{Email: email, Role: role}); err != nil {
		return nil, err
	}

	if !m.Role.AtLeast(role) {
		return nil, apperrors.Denied(fmt.Sprintf("cannot invite with role %s above your own", role))
	}

	if err := s.checkInvitee(ctx, m, email); err != nil {
		return nil, err
	}

	now := s.now()

	existing, err := s.storage.GetInvitationByEmail(ctx, m.OrganizationID, email)
	switch {
	case err == nil && existing.State(now) == types.InvitationPending:
		return nil, apperrors.Conflict("an active invitation already exists")
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		return nil, apperrors.Internal(fmt.Errorf("failed to look up invitation: %w", err))
	}

	token, tokenHash, err := newToken()
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var inv *types.Invitation
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.storage.UpsertInvitation(ctx, &types.Invitation{
			OrganizationID: m.OrganizationID,
			Email:          email,
			Role:           role,
			TokenHash:      tokenHash,
			InvitedBy:      m.UserID,
			SentAt:         now,
			ExpiresAt:      now.Add(s.lifetime),
		})
		if err != nil {
			return apperrors.Internal(fmt.Errorf("failed to save invitation: %w", err))
		}

		s.tx.AfterCommit(ctx, func() { s.dispatch(ctx, m, inv, token) })

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().InvitationSent(m.UserID, m.OrganizationID, inv.Email, logging.WithLabel("role", string(inv.Role)))
	s.event("sent")

	return inv, nil
}

// checkInvitee rejects inviting oneself or someone who already belongs to the organization.
func (s *Service) checkInvitee(ctx context.Context, m *types.Membership, email string) error {
	inviter, err := s.directory.GetUser(ctx, m.UserID)
	switch {
	case err == nil && strings.TrimSpace(inviter.Email) == email:
		return apperrors.Conflict("cannot invite yourself")
	case err != nil && !errors.Is(err, identity.ErrUserNotFound):
		return apperrors.Internal(fmt.Errorf("failed to look up inviter: %w", err))
	}

	invitee, err := s.directory.FindUserByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to look up invitee: %w", err))
	}

	_, err = s.storage.GetMembership(ctx, m.OrganizationID, invitee.ID)
	switch {
	case err == nil:
		return apperrors.Conflict("user is already a member of this organization")
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return apperrors.Internal(fmt.Errorf("failed to look up membership: %w", err))
	}
}

// dispatch hands the email to the dispatcher. A failure is logged and never fails the send:
// the invitation is stored and can be re-sent.
func (s *Service) dispatch(ctx context.Context, m *types.Membership, inv *types.Invitation, token string) {
	email := mail.InvitationEmail{
		To:          inv.Email,
		InviterName: m.UserID,
		Token:       token,
		AcceptURL:   s.acceptURL(token),
		Role:        inv.Role,
	}

	if m.Organization != nil {
		email.OrganizationName = m.Organization.Name
	}

	if inviter, err := s.directory.GetUser(ctx, m.UserID); err == nil {
		email.InviterName = inviter.Email
	}

	if err := s.dispatcher.SendInvitationEmail(ctx, email); err != nil {
		s.logger.Errorf("failed to dispatch invitation %s: %v", inv.ID, err)
		s.event("dispatch_failed")
	}
}

func (s *Service) acceptURL(token string) string {
	q := url.Values{}
	q.Set("token", token)

	return strings.TrimRight(s.publicURL, "/") + "/invitations/accept?" + q.Encode()
}

func (s *Service) List(ctx context.Context) (*List, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.List")
	defer span.End()

	m, ok := tenancy.MembershipFromContext(ctx)
	if !ok {
		return nil, apperrors.NoOrganization()
	}

	all, err := s.storage.ListInvitations(ctx, m.OrganizationID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list invitations: %w", err))
	}

	now := s.now()
	list := &List{
		Pending:  make([]*types.Invitation, 0),
		Expired:  make([]*types.Invitation, 0),
		Accepted: make([]*types.Invitation, 0),
		Revoked:  make([]*types.Invitation, 0),
	}

	for _, inv := range all {
		switch inv.State(now) {
		case types.InvitationPending:
			list.Pending = append(list.Pending, inv)
		case types.InvitationExpired:
			list.Expired = append(list.Expired, inv)
		case types.InvitationAccepted:
			list.Accepted = append(list.Accepted, inv)
		case types.InvitationRevoked:
			list.Revoked = append(list.Revoked, inv)
		}
	}

	return list, nil
}

// Accept turns a pending invitation into a membership of userID. Claiming the invitation and
// inserting the membership happen in one transaction; a concurrent accept of the same
// invitation loses the claim and gets a conflict.
func (s *Service) Accept(ctx context.Context, userID, token string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Accept")
	defer span.End()

	if userID == "" {
		return nil, apperrors.Unauthenticated()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.InvalidToken("invitation token is invalid")
	}

	inv, err := s.storage.GetInvitationByTokenHash(ctx, hashToken(token))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.InvalidToken("invitation token is invalid")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to look up invitation: %w", err))
	}

	now := s.now()
	switch inv.State(now) {
	case types.InvitationAccepted:
		return nil, apperrors.Conflict("invitation already accepted")
	case types.InvitationRevoked:
		return nil, apperrors.Conflict("invitation has been revoked")
	case types.InvitationExpired:
		return nil, apperrors.Expired("invitation has expired")
	}

	if _, err := s.storage.GetOrganization(ctx, inv.OrganizationID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NotFound("organization no longer exists")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to look up organization: %w", err))
	}

	user, err := s.directory.GetUser(ctx, userID)
	if errors.Is(err, identity.ErrUserNotFound) {
		return nil, apperrors.Denied("invitation email does not match the caller")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to look up caller: %w", err))
	}

	// bound to the address exactly as invited, no case folding
	if strings.TrimSpace(user.Email) != inv.Email {
		s.logger.Security().AuthzFailure(userID, "acceptInvitation", logging.WithLabel("organization_id", inv.OrganizationID))
		return nil, apperrors.Denied("invitation email does not match the caller")
	}

	var membership *types.Membership
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.storage.GetMembership(ctx, inv.OrganizationID, userID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return apperrors.Internal(fmt.Errorf("failed to look up membership: %w", err))
		}

		if err := s.storage.ClaimInvitation(ctx, inv.ID, now); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return apperrors.Conflict("invitation already accepted")
			}
			return apperrors.Internal(fmt.Errorf("failed to claim invitation: %w", err))
		}

		if existing != nil {
			membership = existing
			return nil
		}

		invitedBy, invitedAt := inv.InvitedBy, inv.SentAt
		membership, err = s.storage.CreateMembership(ctx, &types.Membership{
			OrganizationID: inv.OrganizationID,
			UserID:         userID,
			Role:           inv.Role,
			InvitedBy:      &invitedBy,
			InvitedAt:      &invitedAt,
			AcceptedAt:     &now,
		})
		if errors.Is(err, storage.ErrDuplicateKey) {
			return apperrors.Conflict("invitation already accepted")
		}
		if err != nil {
			return apperrors.Internal(fmt.Errorf("failed to create membership: %w", err))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Security().InvitationAccepted(userID, inv.OrganizationID, logging.WithLabel("role", string(membership.Role)))
	s.event("accepted")

	return membership, nil
}

// Revoke stamps revokedAt on a pending or expired invitation of the caller's organization.
func (s *Service) Revoke(ctx context.Context, invitationID string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Revoke")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionRevokeInvite)
	if err != nil {
		return nil, err
	}

	inv, err := s.storage.GetInvitation(ctx, m.OrganizationID, invitationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.NotFound("invitation %s not found", invitationID)
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to look up invitation: %w", err))
	}

	switch inv.State(s.now()) {
	case types.InvitationAccepted:
		return nil, apperrors.Conflict("cannot revoke an accepted invitation")
	case types.InvitationRevoked:
		return nil, apperrors.Conflict("invitation already revoked")
	}

	revoked, err := s.storage.RevokeInvitation(ctx, m.OrganizationID, inv.ID, s.now())
	if errors.Is(err, storage.ErrConflict) {
		return nil, apperrors.Conflict("invitation is no longer pending")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to revoke invitation: %w", err))
	}

	s.logger.Security().InvitationRevoked(m.UserID, m.OrganizationID, inv.ID)
	s.event("revoked")

	return revoked, nil
}

func (s *Service) authorize(ctx context.Context, action authorization.Action) (*types.Membership, error) {
	m, ok := tenancy.MembershipFromContext(ctx)
	if !ok {
		return nil, apperrors.NoOrganization()
	}

	if err := s.authz.Authorize(ctx, m, action); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) event(name string) {
	if err := s.monitor.IncInvitationEvent(map[string]string{"event": name}); err != nil {
		s.logger.Debugf("failed to count invitation event %s: %v", name, err)
	}
}

func NewService(
	storage StorageInterface,
	tx TxRunnerInterface,
	directory DirectoryInterface,
	dispatcher DispatcherInterface,
	authz authorization.AuthorizerInterface,
	validator *validation.Validator,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage
	s.tx = tx
	s.directory = directory
	s.dispatcher = dispatcher
	s.authz = authz
	s.validator = validator

	s.lifetime = cfg.Lifetime
	if s.lifetime <= 0 {
		s.lifetime = DefaultLifetime
	}
	s.publicURL = cfg.PublicURL
	s.now = func() time.Time { return time.Now().UTC() }

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
