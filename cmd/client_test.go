// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/status"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

func TestAPIClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(identity.HeaderName) != "user-1" || r.Header.Get(tenancy.OrganizationHeader) != "org-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/api/v0/accounts":
			_ = httptypes.WriteData(w, http.StatusOK, "accounts", []*types.Account{{Instrument: types.Instrument{ID: "acc-1", Name: "Checking"}}}, &httptypes.Meta{Page: 1, Size: 100, Total: 1})
		default:
			_ = httptypes.WriteError(w, errors.New("boom"))
		}
	}))
	defer srv.Close()

	c := &apiClient{
		endpoint:       srv.URL,
		userID:         "user-1",
		organizationID: "org-1",
		token:          "secret",
		http:           newAPIClient().http,
	}
	c.http.RetryMax = 0

	var accounts []*types.Account
	meta, err := c.do(context.Background(), http.MethodGet, "/accounts", nil, nil, &accounts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 1 || accounts[0].ID != "acc-1" || meta == nil || meta.Total != 1 {
		t.Errorf("unexpected result %+v %+v", accounts, meta)
	}

	_, err = c.do(context.Background(), http.MethodGet, "/missing", nil, nil, &accounts)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected an api error, got %v", err)
	}
}

func TestParseBalanceEntry(t *testing.T) {
	tests := []struct {
		arg     string
		wantErr bool
	}{
		{arg: "account:acc-1=120.50"},
		{arg: "liability:lia-1=-3"},
		{arg: "account:acc-1", wantErr: true},
		{arg: "stock:x=1", wantErr: true},
		{arg: "account:=1", wantErr: true},
		{arg: "account:acc-1=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			entry, err := parseBalanceEntry(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (entry.AccountID == nil) == (entry.LiabilityID == nil) {
				t.Errorf("expected exactly one instrument, got %+v", entry)
			}
			if entry.Amount == nil {
				t.Error("expected an amount")
			}

			raw, _ := json.Marshal(entry)
			if len(raw) == 0 {
				t.Error("expected entry to encode")
			}
		})
	}
}

func TestAPIClient_ServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0/version" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(status.BuildInfo{Version: "1.2.3", Name: "finance-tracker", CommitHash: "abc"})
	}))
	defer srv.Close()

	c := &apiClient{endpoint: srv.URL, http: newAPIClient().http}
	c.http.RetryMax = 0

	info, err := c.serverVersion(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Version != "1.2.3" || info.CommitHash != "abc" {
		t.Errorf("unexpected build info %+v", info)
	}
}

func TestMigrateArgs(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
	}{
		{args: nil},
		{args: []string{"up"}},
		{args: []string{"status"}},
		{args: []string{"down", "3"}},
		{args: []string{"sideways"}, wantErr: true},
		{args: []string{"up", "3"}, wantErr: true},
		{args: []string{"down", "-1"}, wantErr: true},
		{args: []string{"down", "1", "2"}, wantErr: true},
	}

	for _, test := range tests {
		err := migrateArgs(migrateCmd, test.args)
		if (err != nil) != test.wantErr {
			t.Errorf("migrateArgs(%q) error = %v, wantErr %v", test.args, err, test.wantErr)
		}
	}
}
