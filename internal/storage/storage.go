// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

var userColumns = []string{"id", "email", "email_verified", "created_at", "deleted_at", "deleted_by"}

func scanUser(row sq.RowScanner) (*types.User, error) {
	u := new(types.User)
	if err := row.Scan(&u.ID, &u.Email, &u.EmailVerified, &u.CreatedAt, &u.DeletedAt, &u.DeletedBy); err != nil {
		return nil, err
	}
	return u, nil
}

// UpsertUser mirrors an identity from the identity provider, keyed by its id.
func (s *Storage) UpsertUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertUser")
	defer span.End()

	user, err := scanUser(
		s.db.Statement(ctx).
			Insert("users").
			Columns("id", "email", "email_verified").
			Values(u.ID, u.Email, u.EmailVerified).
			Suffix("ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, email_verified = EXCLUDED.email_verified").
			Suffix("RETURNING " + columns(userColumns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to upsert user")
	}

	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUser")
	defer span.End()

	user, err := scanUser(
		s.db.Statement(ctx).
			Select(userColumns...).
			From("users").
			Where(sq.Eq{"id": id, "deleted_at": nil}).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to get user")
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	user, err := scanUser(
		s.db.Statement(ctx).
			Select(userColumns...).
			From("users").
			Where(sq.Eq{"email": email, "deleted_at": nil}).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to get user by email")
	}

	return user, nil
}

var organizationColumns = []string{"id", "name", "plan", "created_at", "updated_at", "deleted_at", "deleted_by"}

func scanOrganization(row sq.RowScanner) (*types.Organization, error) {
	o := new(types.Organization)
	if err := row.Scan(&o.ID, &o.Name, &o.Plan, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt, &o.DeletedBy); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Storage) CreateOrganization(ctx context.Context, o *types.Organization) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateOrganization")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate organization ID: %w", err)
	}

	org, err := scanOrganization(
		s.db.Statement(ctx).
			Insert("organizations").
			Columns("id", "name", "plan").
			Values(id.String(), o.Name, o.Plan).
			Suffix("RETURNING " + columns(organizationColumns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to insert organization")
	}

	return org, nil
}

// GetOrganization never returns soft-deleted organizations.
func (s *Storage) GetOrganization(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetOrganization")
	defer span.End()

	if !validID(id) {
		return nil, ErrNotFound
	}

	org, err := scanOrganization(
		s.db.Statement(ctx).
			Select(organizationColumns...).
			From("organizations").
			Where(sq.Eq{"id": id, "deleted_at": nil}).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to get organization")
	}

	return org, nil
}

func (s *Storage) SoftDeleteOrganization(ctx context.Context, id, actorID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SoftDeleteOrganization")
	defer span.End()

	if !validID(id) {
		return ErrNotFound
	}

	res, err := s.db.Statement(ctx).
		Update("organizations").
		Set("deleted_at", sq.Expr("now()")).
		Set("deleted_by", actorID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete organization")
	}

	return expectAffected(res, "organization")
}

var membershipColumns = []string{
	"m.id", "m.organization_id", "m.user_id", "m.role", "m.invited_by", "m.invited_at", "m.accepted_at", "m.created_at",
	"o.id", "o.name", "o.plan", "o.created_at", "o.updated_at", "o.deleted_at", "o.deleted_by",
}

func scanMembership(row sq.RowScanner) (*types.Membership, error) {
	m := new(types.Membership)
	o := new(types.Organization)

	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.UserID, &m.Role, &m.InvitedBy, &m.InvitedAt, &m.AcceptedAt, &m.CreatedAt,
		&o.ID, &o.Name, &o.Plan, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt, &o.DeletedBy,
	)
	if err != nil {
		return nil, err
	}

	m.Organization = o
	return m, nil
}

// membershipQuery joins memberships with their organization, dropping soft-deleted organizations.
func (s *Storage) membershipQuery(ctx context.Context) sq.SelectBuilder {
	return s.db.Statement(ctx).
		Select(membershipColumns...).
		From("organization_members m").
		Join("organizations o ON o.id = m.organization_id").
		Where(sq.Eq{"o.deleted_at": nil})
}

func (s *Storage) CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMembership")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("organization_members").
		Columns("id", "organization_id", "user_id", "role", "invited_by", "invited_at", "accepted_at").
		Values(id.String(), m.OrganizationID, m.UserID, m.Role, m.InvitedBy, m.InvitedAt, m.AcceptedAt).
		ExecContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to insert membership")
	}

	return s.GetMembership(ctx, m.OrganizationID, m.UserID)
}

func (s *Storage) GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrNotFound
	}

	m, err := scanMembership(
		s.membershipQuery(ctx).
			Where(sq.Eq{"m.organization_id": organizationID, "m.user_id": userID}).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to get membership")
	}

	return m, nil
}

// ListMembershipsByUser returns the user's memberships in a stable order:
// earliest accepted first, then creation time, then organization id.
func (s *Storage) ListMembershipsByUser(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByUser")
	defer span.End()

	rows, err := s.membershipQuery(ctx).
		Where(sq.Eq{"m.user_id": userID}).
		OrderBy("m.accepted_at ASC NULLS LAST", "m.created_at ASC", "m.organization_id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list memberships")
	}
	defer rows.Close()

	var memberships []*types.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembers")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrNotFound
	}

	rows, err := s.membershipQuery(ctx).
		Where(sq.Eq{"m.organization_id": organizationID}).
		OrderBy("m.created_at ASC", "m.user_id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list members")
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
