// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/mail"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_invitations.go -source=./interfaces.go

const (
	ownerID    = "owner-1"
	inviteeID  = "invitee-1"
	strangerID = "stranger-1"
)

var (
	owner    = &types.User{ID: ownerID, Email: "owner@example.com"}
	invitee  = &types.User{ID: inviteeID, Email: "invitee@example.com"}
	stranger = &types.User{ID: strangerID, Email: "stranger@example.com"}
)

type testEnv struct {
	service    *Service
	store      *fakeStore
	dispatcher *MockDispatcherInterface
	orgID      string
	clock      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)

	store := newFakeStore()
	dispatcher := NewMockDispatcherInterface(ctrl)
	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")

	env := &testEnv{
		store:      store,
		dispatcher: dispatcher,
		clock:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	env.service = NewService(
		store,
		store,
		newFakeDirectory(owner, invitee, stranger),
		dispatcher,
		authorization.NewAuthorizer(tracer, monitor, logger),
		validation.NewValidator(),
		Config{PublicURL: "https://finance.example.com/"},
		tracer,
		monitor,
		logger,
	)
	env.service.now = func() time.Time { return env.clock }

	env.orgID = store.addOrganization("Household")
	store.addMember(env.orgID, ownerID, types.RoleOwner)

	return env
}

func (e *testEnv) as(userID string, role types.Role) context.Context {
	return tenancy.WithMembership(context.Background(), &types.Membership{
		OrganizationID: e.orgID,
		UserID:         userID,
		Role:           role,
		Organization:   &types.Organization{ID: e.orgID, Name: "Household"},
	})
}

// send invites email as the owner and returns the invitation with the token the email carried.
func (e *testEnv) send(t *testing.T, email string, role types.Role) (*types.Invitation, string) {
	t.Helper()

	var token string
	e.dispatcher.EXPECT().SendInvitationEmail(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg mail.InvitationEmail) error {
			token = msg.Token
			return nil
		},
	)

	inv, err := e.service.Send(e.as(ownerID, types.RoleOwner), &SendRequest{Email: email, Role: role})
	if err != nil {
		t.Fatalf("unexpected send error: %v", err)
	}

	return inv, token
}

func TestService_SendStoresOnlyTheHash(t *testing.T) {
	env := newTestEnv(t)

	var msg mail.InvitationEmail
	env.dispatcher.EXPECT().SendInvitationEmail(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m mail.InvitationEmail) error {
			msg = m
			return nil
		},
	)

	req := &SendRequest{Email: " Carol@Example.com "}

	inv, err := env.service.Send(env.as(ownerID, types.RoleOwner), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.Email != "Carol@Example.com" || inv.Role != types.RoleMember {
		t.Errorf("expected the trimmed email as given and MEMBER role, got %s %s", inv.Email, inv.Role)
	}

	if req.Email != " Carol@Example.com " || req.Role != "" {
		t.Errorf("expected the request to be left untouched, got %+v", req)
	}

	if !inv.ExpiresAt.Equal(env.clock.Add(DefaultLifetime)) {
		t.Errorf("expected expiry after 7 days, got %s", inv.ExpiresAt)
	}

	stored := env.store.invitation(inv.ID)
	if stored.TokenHash == msg.Token || stored.TokenHash != hashToken(msg.Token) {
		t.Error("expected only the token hash to be stored")
	}

	if msg.OrganizationName != "Household" || msg.InviterName != owner.Email {
		t.Errorf("unexpected email %+v", msg)
	}

	u, err := url.Parse(msg.AcceptURL)
	if err != nil {
		t.Fatalf("invalid accept URL: %v", err)
	}
	if u.Path != "/invitations/accept" || u.Query().Get("token") != msg.Token {
		t.Errorf("unexpected accept URL %s", msg.AcceptURL)
	}
}

func TestService_SendRejections(t *testing.T) {
	testCases := []struct {
		name         string
		setup        func(*testing.T, *testEnv)
		userID       string
		role         types.Role
		req          *SendRequest
		expectedKind apperrors.Kind
	}{
		{
			name:         "member may not invite",
			userID:       ownerID,
			role:         types.RoleMember,
			req:          &SendRequest{Email: "new@example.com"},
			expectedKind: apperrors.KindForbidden,
		},
		{
			name:         "self invitation",
			userID:       ownerID,
			role:         types.RoleOwner,
			req:          &SendRequest{Email: " owner@example.com"},
			expectedKind: apperrors.KindConflict,
		},
		{
			name: "existing member",
			setup: func(_ *testing.T, env *testEnv) {
				env.store.addMember(env.orgID, inviteeID, types.RoleViewer)
			},
			userID:       ownerID,
			role:         types.RoleOwner,
			req:          &SendRequest{Email: "invitee@example.com"},
			expectedKind: apperrors.KindConflict,
		},
		{
			name: "pending invitation",
			setup: func(t *testing.T, env *testEnv) {
				env.send(t, "new@example.com", types.RoleMember)
			},
			userID:       ownerID,
			role:         types.RoleOwner,
			req:          &SendRequest{Email: "new@example.com"},
			expectedKind: apperrors.KindConflict,
		},
		{
			name:         "role above the inviter",
			userID:       ownerID,
			role:         types.RoleAdmin,
			req:          &SendRequest{Email: "new@example.com", Role: types.RoleOwner},
			expectedKind: apperrors.KindForbidden,
		},
		{
			name:         "malformed email",
			userID:       ownerID,
			role:         types.RoleOwner,
			req:          &SendRequest{Email: "not-an-email"},
			expectedKind: apperrors.KindValidationFailed,
		},
		{
			name:         "unknown role",
			userID:       ownerID,
			role:         types.RoleOwner,
			req:          &SendRequest{Email: "new@example.com", Role: "SUPERUSER"},
			expectedKind: apperrors.KindValidationFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tc.setup != nil {
				tc.setup(t, env)
			}

			_, err := env.service.Send(env.as(tc.userID, tc.role), tc.req)

			if kind := apperrors.KindOf(err); err == nil || kind != tc.expectedKind {
				t.Fatalf("expected %s, got %v", tc.expectedKind, err)
			}
		})
	}
}

func TestService_SendDispatchesAfterCommit(t *testing.T) {
	env := newTestEnv(t)
	env.store.commitErr = errors.New("could not serialize access")

	// no SendInvitationEmail expectation: the mock fails the test on any dispatch
	_, err := env.service.Send(env.as(ownerID, types.RoleOwner), &SendRequest{Email: "new@example.com"})
	if apperrors.KindOf(err) != apperrors.KindInternal {
		t.Fatalf("expected Internal on commit failure, got %v", err)
	}

	list, err := env.service.List(env.as(ownerID, types.RoleOwner))
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(list.Pending) != 0 {
		t.Errorf("expected the invitation to be rolled back, got %d pending", len(list.Pending))
	}
}

func TestService_SendSurvivesDispatchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.dispatcher.EXPECT().SendInvitationEmail(gomock.Any(), gomock.Any()).Return(errors.New("relay down"))

	inv, err := env.service.Send(env.as(ownerID, types.RoleOwner), &SendRequest{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("expected dispatch failure to be ignored, got %v", err)
	}
	if inv.State(env.clock) != types.InvitationPending {
		t.Errorf("expected pending invitation, got %s", inv.State(env.clock))
	}
}

func TestService_ResendAfterRevokeResetsToPending(t *testing.T) {
	env := newTestEnv(t)

	first, oldToken := env.send(t, "invitee@example.com", types.RoleMember)
	if _, err := env.service.Revoke(env.as(ownerID, types.RoleOwner), first.ID); err != nil {
		t.Fatalf("unexpected revoke error: %v", err)
	}

	env.clock = env.clock.Add(time.Hour)
	second, newToken := env.send(t, "invitee@example.com", types.RoleAdmin)

	if second.ID != first.ID {
		t.Errorf("expected the same row to be reused, got %s and %s", first.ID, second.ID)
	}
	if second.State(env.clock) != types.InvitationPending || second.Role != types.RoleAdmin {
		t.Errorf("expected pending ADMIN invitation, got %s %s", second.State(env.clock), second.Role)
	}

	if _, err := env.service.Accept(context.Background(), inviteeID, oldToken); apperrors.KindOf(err) != apperrors.KindInvalidToken {
		t.Errorf("expected the old token to be invalid, got %v", err)
	}
	if _, err := env.service.Accept(context.Background(), inviteeID, newToken); err != nil {
		t.Errorf("expected the new token to be accepted, got %v", err)
	}
}

func TestService_Accept(t *testing.T) {
	env := newTestEnv(t)
	inv, token := env.send(t, "invitee@example.com", types.RoleAdmin)

	m, err := env.service.Accept(context.Background(), inviteeID, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Role != types.RoleAdmin || m.OrganizationID != env.orgID || m.UserID != inviteeID {
		t.Errorf("unexpected membership %+v", m)
	}
	if m.InvitedBy == nil || *m.InvitedBy != ownerID || m.InvitedAt == nil || m.AcceptedAt == nil {
		t.Errorf("expected invitation attribution on the membership, got %+v", m)
	}

	if env.store.invitation(inv.ID).AcceptedAt == nil {
		t.Error("expected the invitation to be closed")
	}

	if _, err := env.service.Accept(context.Background(), inviteeID, token); apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("expected a second accept to conflict, got %v", err)
	}

	if n := env.store.memberCount(env.orgID); n != 2 {
		t.Errorf("expected exactly one new membership, got %d members", n)
	}
}

func TestService_AcceptRejections(t *testing.T) {
	testCases := []struct {
		name         string
		prepare      func(*testing.T, *testEnv, *types.Invitation)
		userID       string
		token        func(string) string
		expectedKind apperrors.Kind
	}{
		{
			name:         "unknown token",
			userID:       inviteeID,
			token:        func(string) string { return "not-a-token" },
			expectedKind: apperrors.KindInvalidToken,
		},
		{
			name: "expired",
			prepare: func(_ *testing.T, env *testEnv, _ *types.Invitation) {
				env.clock = env.clock.Add(DefaultLifetime + time.Second)
			},
			userID:       inviteeID,
			expectedKind: apperrors.KindExpired,
		},
		{
			name: "revoked",
			prepare: func(t *testing.T, env *testEnv, inv *types.Invitation) {
				if _, err := env.service.Revoke(env.as(ownerID, types.RoleOwner), inv.ID); err != nil {
					t.Fatalf("unexpected revoke error: %v", err)
				}
			},
			userID:       inviteeID,
			expectedKind: apperrors.KindConflict,
		},
		{
			name: "organization deleted",
			prepare: func(_ *testing.T, env *testEnv, _ *types.Invitation) {
				env.store.deleteOrganization(env.orgID)
			},
			userID:       inviteeID,
			expectedKind: apperrors.KindNotFound,
		},
		{
			name:         "email mismatch",
			userID:       strangerID,
			expectedKind: apperrors.KindForbidden,
		},
		{
			name:         "no identity",
			userID:       "",
			expectedKind: apperrors.KindUnauthenticated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			inv, token := env.send(t, "invitee@example.com", types.RoleMember)

			if tc.prepare != nil {
				tc.prepare(t, env, inv)
			}
			if tc.token != nil {
				token = tc.token(token)
			}

			_, err := env.service.Accept(context.Background(), tc.userID, token)

			if kind := apperrors.KindOf(err); err == nil || kind != tc.expectedKind {
				t.Fatalf("expected %s, got %v", tc.expectedKind, err)
			}
			if n := env.store.memberCount(env.orgID); n != 1 {
				t.Errorf("expected no membership to be created, got %d members", n)
			}
		})
	}
}

func TestService_AcceptRequiresExactEmail(t *testing.T) {
	env := newTestEnv(t)

	// invitee's address is invitee@example.com
	_, token := env.send(t, "Invitee@Example.com", types.RoleMember)

	if _, err := env.service.Accept(context.Background(), inviteeID, token); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Fatalf("expected Forbidden when the email case differs, got %v", err)
	}
	if n := env.store.memberCount(env.orgID); n != 1 {
		t.Errorf("expected no membership to be created, got %d members", n)
	}

	_, token = env.send(t, " invitee@example.com ", types.RoleMember)

	if _, err := env.service.Accept(context.Background(), inviteeID, token); err != nil {
		t.Errorf("expected surrounding whitespace to be ignored, got %v", err)
	}
}

func TestService_AcceptIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	inv, token := env.send(t, "invitee@example.com", types.RoleMember)

	env.store.createMembershipErr = errors.New("disk full")

	if _, err := env.service.Accept(context.Background(), inviteeID, token); apperrors.KindOf(err) != apperrors.KindInternal {
		t.Fatalf("expected Internal, got %v", err)
	}

	if env.store.invitation(inv.ID).AcceptedAt != nil {
		t.Error("expected the claim to be rolled back")
	}
	if n := env.store.memberCount(env.orgID); n != 1 {
		t.Errorf("expected no membership, got %d members", n)
	}

	env.store.createMembershipErr = nil
	if _, err := env.service.Accept(context.Background(), inviteeID, token); err != nil {
		t.Errorf("expected the invitation to stay acceptable, got %v", err)
	}
}

func TestService_AcceptByExistingMember(t *testing.T) {
	env := newTestEnv(t)
	inv, token := env.send(t, "invitee@example.com", types.RoleAdmin)

	env.store.addMember(env.orgID, inviteeID, types.RoleViewer)

	m, err := env.service.Accept(context.Background(), inviteeID, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Role != types.RoleViewer {
		t.Errorf("expected the existing membership to be kept, got role %s", m.Role)
	}
	if env.store.invitation(inv.ID).AcceptedAt == nil {
		t.Error("expected the invitation to be closed")
	}
}

func TestService_ConcurrentAccept(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.send(t, "invitee@example.com", types.RoleMember)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.Accept(context.Background(), inviteeID, token)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperrors.KindOf(err) != apperrors.KindConflict:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly one accept to succeed, got %d", succeeded)
	}
	if n := env.store.memberCount(env.orgID); n != 2 {
		t.Errorf("expected one new membership, got %d members", n)
	}
}

func TestService_Revoke(t *testing.T) {
	env := newTestEnv(t)
	inv, _ := env.send(t, "invitee@example.com", types.RoleMember)

	other := newTestEnv(t)
	if _, err := other.service.Revoke(other.as(ownerID, types.RoleOwner), inv.ID); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("expected NotFound from another organization, got %v", err)
	}

	if _, err := env.service.Revoke(env.as(ownerID, types.RoleMember), inv.ID); apperrors.KindOf(err) != apperrors.KindForbidden {
		t.Errorf("expected Forbidden for members, got %v", err)
	}

	revoked, err := env.service.Revoke(env.as(ownerID, types.RoleAdmin), inv.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked.State(env.clock) != types.InvitationRevoked {
		t.Errorf("expected REVOKED, got %s", revoked.State(env.clock))
	}

	if _, err := env.service.Revoke(env.as(ownerID, types.RoleAdmin), inv.ID); apperrors.KindOf(err) != apperrors.KindConflict {
		t.Errorf("expected a second revoke to conflict, got %v", err)
	}

	accepted, acceptedToken := env.send(t, "stranger@example.com", types.RoleMember)
	if _, err := env.service.Accept(context.Background(), strangerID, acceptedToken); err != nil {
		t.Fatalf("unexpected accept error: %v", err)
	}
	_, err = env.service.Revoke(env.as(ownerID, types.RoleOwner), accepted.ID)
	if apperrors.KindOf(err) != apperrors.KindConflict || !strings.Contains(err.Error(), "accepted") {
		t.Errorf("expected revoking an accepted invitation to conflict, got %v", err)
	}
}

func TestService_List(t *testing.T) {
	env := newTestEnv(t)

	_, token := env.send(t, "invitee@example.com", types.RoleMember)
	if _, err := env.service.Accept(context.Background(), inviteeID, token); err != nil {
		t.Fatalf("unexpected accept error: %v", err)
	}

	revoked, _ := env.send(t, "revoked@example.com", types.RoleMember)
	if _, err := env.service.Revoke(env.as(ownerID, types.RoleOwner), revoked.ID); err != nil {
		t.Fatalf("unexpected revoke error: %v", err)
	}

	env.send(t, "expired@example.com", types.RoleMember)
	env.clock = env.clock.Add(DefaultLifetime + time.Minute)
	env.send(t, "pending@example.com", types.RoleViewer)

	list, err := env.service.List(env.as(ownerID, types.RoleViewer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]int{"pending": 1, "expired": 1, "accepted": 1, "revoked": 1}
	for bucket, n := range list.Counts() {
		if expected[bucket] != n {
			t.Errorf("expected %d %s invitations, got %d", expected[bucket], bucket, n)
		}
	}
	if list.Total() != 4 {
		t.Errorf("expected 4 invitations, got %d", list.Total())
	}
}
