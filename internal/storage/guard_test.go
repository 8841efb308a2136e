// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"reflect"
	"testing"

	"github.com/canonical/finance-tracker/internal/types"
)

const orgID = "0195b3a4-8e1c-7c9e-a3a1-3f2d1c0b9a87"

func TestTenantScope(t *testing.T) {
	testCases := []struct {
		name         string
		alias        string
		scope        types.Scope
		expectedSQL  string
		expectedArgs []any
		expectedErr  error
	}{
		{
			name:         "default scope hides inactive rows",
			scope:        types.Scope{OrganizationID: orgID},
			expectedSQL:  "(organization_id = ? AND deleted_at IS NULL AND is_active = ?)",
			expectedArgs: []any{orgID, true},
		},
		{
			name:         "include inactive keeps the organization predicate",
			scope:        types.Scope{OrganizationID: orgID, IncludeInactive: true},
			expectedSQL:  "(organization_id = ?)",
			expectedArgs: []any{orgID},
		},
		{
			name:         "aliased columns",
			alias:        "a",
			scope:        types.Scope{OrganizationID: orgID},
			expectedSQL:  "(a.organization_id = ? AND a.deleted_at IS NULL AND a.is_active = ?)",
			expectedArgs: []any{orgID, true},
		},
		{
			name:        "missing organization",
			scope:       types.Scope{},
			expectedErr: ErrMissingScope,
		},
		{
			name:        "malformed organization",
			scope:       types.Scope{OrganizationID: "' OR 1=1 --"},
			expectedErr: ErrMissingScope,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			pred, err := TenantScope(test.alias, test.scope)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected error %v, got %v", test.expectedErr, err)
			}

			if test.expectedErr != nil {
				return
			}

			sql, args, err := pred.ToSql()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if sql != test.expectedSQL {
				t.Errorf("expected %q, got %q", test.expectedSQL, sql)
			}

			if !reflect.DeepEqual(args, test.expectedArgs) {
				t.Errorf("expected args %v, got %v", test.expectedArgs, args)
			}
		})
	}
}

func TestBalanceScope(t *testing.T) {
	pred, err := balanceScope(types.Scope{OrganizationID: orgID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sql, args, err := pred.ToSql()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "(b.organization_id = ? AND COALESCE(a.deleted_at, l.deleted_at) IS NULL AND COALESCE(a.is_active, l.is_active) = true)"
	if sql != expected {
		t.Errorf("expected %q, got %q", expected, sql)
	}

	if len(args) != 1 || args[0] != orgID {
		t.Errorf("unexpected args %v", args)
	}

	pred, err = balanceScope(types.Scope{OrganizationID: orgID, IncludeInactive: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sql, _, _ := pred.ToSql(); sql != "(b.organization_id = ?)" {
		t.Errorf("include inactive must only keep the organization predicate, got %q", sql)
	}

	if _, err := balanceScope(types.Scope{}); !errors.Is(err, ErrMissingScope) {
		t.Errorf("expected ErrMissingScope, got %v", err)
	}
}

func TestWithoutProtected(t *testing.T) {
	changes := map[string]any{
		"name":            "Savings",
		"organization_id": "other",
		"created_by":      "mallory",
		"deleted_at":      nil,
		"id":              "x",
	}

	set := withoutProtected(changes)

	if !reflect.DeepEqual(set, map[string]any{"name": "Savings"}) {
		t.Errorf("unexpected change set %v", set)
	}

	if len(changes) != 5 {
		t.Errorf("input map must not be modified")
	}
}

func TestExactlyOne(t *testing.T) {
	id := orgID

	testCases := []struct {
		name        string
		accountID   *string
		liabilityID *string
		expected    bool
	}{
		{name: "account only", accountID: &id, expected: true},
		{name: "liability only", liabilityID: &id, expected: true},
		{name: "both", accountID: &id, liabilityID: &id, expected: false},
		{name: "neither", expected: false},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if got := exactlyOne(test.accountID, test.liabilityID); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}
