// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/finance-tracker/internal/types"
)

var invitationColumns = []string{
	"id", "organization_id", "email", "role", "token_hash", "invited_by", "sent_at", "expires_at", "accepted_at", "revoked_at",
}

func scanInvitation(row sq.RowScanner) (*types.Invitation, error) {
	i := new(types.Invitation)
	err := row.Scan(
		&i.ID, &i.OrganizationID, &i.Email, &i.Role, &i.TokenHash, &i.InvitedBy, &i.SentAt, &i.ExpiresAt, &i.AcceptedAt, &i.RevokedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// UpsertInvitation keeps one row per (organization, email). Re-inviting overwrites the
// token and timestamps and clears the terminal markers, which puts the row back to pending.
func (s *Storage) UpsertInvitation(ctx context.Context, inv *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertInvitation")
	defer span.End()

	if !validID(inv.OrganizationID) {
		return nil, ErrMissingScope
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	out, err := scanInvitation(
		s.db.Statement(ctx).
			Insert("invitations").
			Columns("id", "organization_id", "email", "role", "token_hash", "invited_by", "sent_at", "expires_at").
			Values(id.String(), inv.OrganizationID, inv.Email, inv.Role, inv.TokenHash, inv.InvitedBy, inv.SentAt, inv.ExpiresAt).
			Suffix(`ON CONFLICT (organization_id, email) DO UPDATE SET
				role = EXCLUDED.role,
				token_hash = EXCLUDED.token_hash,
				invited_by = EXCLUDED.invited_by,
				sent_at = EXCLUDED.sent_at,
				expires_at = EXCLUDED.expires_at,
				accepted_at = NULL,
				revoked_at = NULL`).
			Suffix("RETURNING " + columns(invitationColumns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to upsert invitation")
	}

	return out, nil
}

func (s *Storage) getInvitation(ctx context.Context, where sq.Sqlizer) (*types.Invitation, error) {
	return scanInvitation(
		s.db.Statement(ctx).
			Select(invitationColumns...).
			From("invitations").
			Where(where).
			QueryRowContext(ctx),
	)
}

func (s *Storage) GetInvitation(ctx context.Context, organizationID, id string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitation")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	if !validID(id) {
		return nil, fmt.Errorf("invitation %q: %w", id, ErrNotFound)
	}

	inv, err := s.getInvitation(ctx, sq.Eq{"id": id, "organization_id": organizationID})
	if err != nil {
		return nil, classify(err, "failed to get invitation")
	}

	return inv, nil
}

func (s *Storage) GetInvitationByEmail(ctx context.Context, organizationID, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByEmail")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	inv, err := s.getInvitation(ctx, sq.Eq{"organization_id": organizationID, "email": email})
	if err != nil {
		return nil, classify(err, "failed to get invitation")
	}

	return inv, nil
}

// GetInvitationByTokenHash is the only unscoped invitation lookup: the token itself
// designates the organization.
func (s *Storage) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByTokenHash")
	defer span.End()

	inv, err := s.getInvitation(ctx, sq.Eq{"token_hash": tokenHash})
	if err != nil {
		return nil, classify(err, "failed to get invitation")
	}

	return inv, nil
}

func (s *Storage) ListInvitations(ctx context.Context, organizationID string) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitations")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"organization_id": organizationID}).
		OrderBy("sent_at DESC", "id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list invitations")
	}
	defer rows.Close()

	invitations := make([]*types.Invitation, 0)
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// ClaimInvitation marks an open invitation accepted. It returns ErrConflict when the row
// was accepted or revoked in the meantime.
func (s *Storage) ClaimInvitation(ctx context.Context, id string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimInvitation")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("accepted_at", at).
		Where(sq.Eq{"id": id, "accepted_at": nil, "revoked_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to claim invitation")
	}

	if err := expectAffected(res, "invitation"); err != nil {
		return fmt.Errorf("invitation %s already closed: %w", id, ErrConflict)
	}

	return nil
}

// RevokeInvitation stamps revokedAt on an open invitation of the organization.
// A row that closed concurrently yields ErrConflict.
func (s *Storage) RevokeInvitation(ctx context.Context, organizationID, id string, at time.Time) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RevokeInvitation")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	inv, err := scanInvitation(
		s.db.Statement(ctx).
			Update("invitations").
			Set("revoked_at", at).
			Where(sq.Eq{"id": id, "organization_id": organizationID, "accepted_at": nil, "revoked_at": nil}).
			Suffix("RETURNING " + columns(invitationColumns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("invitation %s already closed: %w", id, ErrConflict)
		}
		return nil, classify(err, "failed to revoke invitation")
	}

	return inv, nil
}
