// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/types"
)

// fakeStore keeps rows in memory and restores a snapshot when a transaction fails,
// mirroring the unique constraints the real schema enforces.
type fakeStore struct {
	mu sync.Mutex
	// tx serializes transactions so a rollback never discards another one's writes.
	tx sync.Mutex

	organizations map[string]types.Organization
	invitations   map[string]types.Invitation
	memberships   map[string]types.Membership

	createMembershipErr error
	// commitErr fails every transaction after fn succeeds
	commitErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		organizations: make(map[string]types.Organization),
		invitations:   make(map[string]types.Invitation),
		memberships:   make(map[string]types.Membership),
	}
}

func membershipKey(organizationID, userID string) string {
	return organizationID + "/" + userID
}

type fakeTxKey struct{}

type fakeTx struct {
	afterCommit []func()
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		return fn(ctx)
	}

	f.tx.Lock()

	f.mu.Lock()
	organizations := maps.Clone(f.organizations)
	invitations := maps.Clone(f.invitations)
	memberships := maps.Clone(f.memberships)
	f.mu.Unlock()

	tx := new(fakeTx)

	err := fn(context.WithValue(ctx, fakeTxKey{}, tx))
	if err == nil {
		err = f.commitErr
	}

	if err != nil {
		f.mu.Lock()
		f.organizations = organizations
		f.invitations = invitations
		f.memberships = memberships
		f.mu.Unlock()
	}

	f.tx.Unlock()

	if err != nil {
		return err
	}

	for _, hook := range tx.afterCommit {
		hook()
	}

	return nil
}

func (f *fakeStore) AfterCommit(ctx context.Context, fn func()) {
	if tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx); ok {
		tx.afterCommit = append(tx.afterCommit, fn)
		return
	}

	fn()
}

func (f *fakeStore) addOrganization(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.NewString()
	f.organizations[id] = types.Organization{ID: id, Name: name}

	return id
}

func (f *fakeStore) deleteOrganization(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	org := f.organizations[id]
	now := time.Now()
	org.DeletedAt = &now
	f.organizations[id] = org
}

func (f *fakeStore) addMember(organizationID, userID string, role types.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.memberships[membershipKey(organizationID, userID)] = types.Membership{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         userID,
		Role:           role,
	}
}

func (f *fakeStore) memberCount(organizationID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, m := range f.memberships {
		if m.OrganizationID == organizationID {
			n++
		}
	}

	return n
}

func (f *fakeStore) invitation(id string) types.Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.invitations[id]
}

func (f *fakeStore) UpsertInvitation(_ context.Context, inv *types.Invitation) (*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row := *inv
	row.ID = uuid.NewString()
	for id, existing := range f.invitations {
		if existing.OrganizationID == inv.OrganizationID && existing.Email == inv.Email {
			row.ID = id
		}
	}
	row.AcceptedAt = nil
	row.RevokedAt = nil
	f.invitations[row.ID] = row

	return &row, nil
}

func (f *fakeStore) GetInvitation(_ context.Context, organizationID, id string) (*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.invitations[id]
	if !ok || inv.OrganizationID != organizationID {
		return nil, storage.ErrNotFound
	}

	return &inv, nil
}

func (f *fakeStore) GetInvitationByEmail(_ context.Context, organizationID, email string) (*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, inv := range f.invitations {
		if inv.OrganizationID == organizationID && inv.Email == email {
			return &inv, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (f *fakeStore) GetInvitationByTokenHash(_ context.Context, tokenHash string) (*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, inv := range f.invitations {
		if inv.TokenHash == tokenHash {
			return &inv, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (f *fakeStore) ListInvitations(_ context.Context, organizationID string) ([]*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*types.Invitation
	for _, inv := range f.invitations {
		if inv.OrganizationID == organizationID {
			out = append(out, &inv)
		}
	}

	return out, nil
}

func (f *fakeStore) ClaimInvitation(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.invitations[id]
	if !ok || inv.AcceptedAt != nil || inv.RevokedAt != nil {
		return storage.ErrConflict
	}

	inv.AcceptedAt = &at
	f.invitations[id] = inv

	return nil
}

func (f *fakeStore) RevokeInvitation(_ context.Context, organizationID, id string, at time.Time) (*types.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv, ok := f.invitations[id]
	if !ok || inv.OrganizationID != organizationID || inv.AcceptedAt != nil || inv.RevokedAt != nil {
		return nil, storage.ErrConflict
	}

	inv.RevokedAt = &at
	f.invitations[id] = inv

	return &inv, nil
}

func (f *fakeStore) GetOrganization(_ context.Context, id string) (*types.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	org, ok := f.organizations[id]
	if !ok || org.DeletedAt != nil {
		return nil, storage.ErrNotFound
	}

	return &org, nil
}

func (f *fakeStore) GetMembership(_ context.Context, organizationID, userID string) (*types.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.memberships[membershipKey(organizationID, userID)]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &m, nil
}

func (f *fakeStore) CreateMembership(_ context.Context, m *types.Membership) (*types.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createMembershipErr != nil {
		return nil, f.createMembershipErr
	}

	key := membershipKey(m.OrganizationID, m.UserID)
	if _, ok := f.memberships[key]; ok {
		return nil, fmt.Errorf("membership: %w", storage.ErrDuplicateKey)
	}

	row := *m
	row.ID = uuid.NewString()
	f.memberships[key] = row

	return &row, nil
}

type fakeDirectory struct {
	users map[string]*types.User
}

func newFakeDirectory(users ...*types.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]*types.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}

	return d
}

func (d *fakeDirectory) GetUser(_ context.Context, id string) (*types.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}

	return nil, identity.ErrUserNotFound
}

func (d *fakeDirectory) FindUserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, u := range d.users {
		if identity.NormalizeEmail(u.Email) == identity.NormalizeEmail(email) {
			return u, nil
		}
	}

	return nil, identity.ErrUserNotFound
}
