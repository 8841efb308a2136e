// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRoleOrdering(t *testing.T) {
	testCases := []struct {
		role     Role
		min      Role
		expected bool
	}{
		{role: RoleOwner, min: RoleAdmin, expected: true},
		{role: RoleAdmin, min: RoleAdmin, expected: true},
		{role: RoleMember, min: RoleAdmin, expected: false},
		{role: RoleViewer, min: RoleMember, expected: false},
		{role: RoleViewer, min: RoleViewer, expected: true},
		{role: Role("SUPERUSER"), min: RoleViewer, expected: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role)+">="+string(tc.min), func(t *testing.T) {
			if got := tc.role.AtLeast(tc.min); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(" admin "); err != nil || r != RoleAdmin {
		t.Errorf("expected ADMIN, got %q (%v)", r, err)
	}

	if _, err := ParseRole("root"); err == nil {
		t.Errorf("expected an error for an unknown role")
	}
}

func TestInvitationState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	testCases := []struct {
		name       string
		invitation Invitation
		expected   InvitationState
	}{
		{name: "pending", invitation: Invitation{ExpiresAt: future}, expected: InvitationPending},
		{name: "expired", invitation: Invitation{ExpiresAt: past}, expected: InvitationExpired},
		{name: "expires exactly now", invitation: Invitation{ExpiresAt: now}, expected: InvitationExpired},
		{name: "accepted", invitation: Invitation{ExpiresAt: past, AcceptedAt: &past}, expected: InvitationAccepted},
		{name: "revoked", invitation: Invitation{ExpiresAt: future, RevokedAt: &past}, expected: InvitationRevoked},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.invitation.State(now); got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.January, 31)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(b) != `"2026-01-31"` {
		t.Errorf("unexpected encoding %s", b)
	}

	var decoded Date
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !decoded.Equal(d.Time) {
		t.Errorf("expected %s, got %s", d, decoded)
	}

	if err := json.Unmarshal([]byte(`"31/01/2026"`), &decoded); err == nil {
		t.Errorf("expected an error for a malformed date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date

	if err := d.Scan(time.Date(2026, 2, 3, 0, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.String() != "2026-02-03" {
		t.Errorf("expected 2026-02-03, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Errorf("expected an error for an unsupported source")
	}
}
