// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/finance-tracker/internal/kratos"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

func TestMiddleware_HTTPMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		expectedID string
		expectedOK bool
	}{
		{name: "header present", header: "user-1", expectedID: "user-1", expectedOK: true},
		{name: "header blank", header: "   ", expectedOK: false},
		{name: "header missing", expectedOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := NewMiddleware(tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			var gotID string
			var gotOK bool
			handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = authentication.GetUserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if test.header != "" {
				req.Header.Set(HeaderName, test.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotOK != test.expectedOK || gotID != test.expectedID {
				t.Errorf("expected (%q, %v), got (%q, %v)", test.expectedID, test.expectedOK, gotID, gotOK)
			}
		})
	}
}

type fakeUsers struct {
	byID map[string]*types.User
}

func (f *fakeUsers) UpsertUser(_ context.Context, u *types.User) (*types.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*types.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user: %w", storage.ErrNotFound)
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", storage.ErrNotFound)
}

type fakeKratos struct {
	user *types.User
}

func (f *fakeKratos) GetUser(_ context.Context, id string) (*types.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, kratos.ErrIdentityNotFound
}

func (f *fakeKratos) FindUserByEmail(_ context.Context, email string) (*types.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, kratos.ErrIdentityNotFound
}

func TestDirectories(t *testing.T) {
	carol := &types.User{ID: "user-1", Email: "carol@example.com"}

	directories := map[string]DirectoryInterface{
		"database": NewDatabaseDirectory(&fakeUsers{byID: map[string]*types.User{carol.ID: carol}}),
		"kratos":   NewKratosDirectory(&fakeKratos{user: carol}),
	}

	for name, d := range directories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			user, err := d.GetUser(ctx, "user-1")
			if err != nil || user.Email != carol.Email {
				t.Fatalf("unexpected result %v, %v", user, err)
			}

			user, err = d.FindUserByEmail(ctx, " Carol@Example.com ")
			if err != nil || user.ID != carol.ID {
				t.Fatalf("lookup must normalize the email, got %v, %v", user, err)
			}

			if _, err := d.GetUser(ctx, "user-2"); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("expected ErrUserNotFound, got %v", err)
			}

			if _, err := d.FindUserByEmail(ctx, "dave@example.com"); !errors.Is(err, ErrUserNotFound) {
				t.Errorf("expected ErrUserNotFound, got %v", err)
			}
		})
	}
}
