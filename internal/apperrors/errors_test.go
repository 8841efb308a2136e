// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected int
	}{
		{kind: KindUnauthenticated, expected: http.StatusUnauthorized},
		{kind: KindNoOrganization, expected: http.StatusForbidden},
		{kind: KindForbidden, expected: http.StatusForbidden},
		{kind: KindNotFound, expected: http.StatusNotFound},
		{kind: KindValidationFailed, expected: http.StatusBadRequest},
		{kind: KindConflict, expected: http.StatusConflict},
		{kind: KindInvalidToken, expected: http.StatusBadRequest},
		{kind: KindExpired, expected: http.StatusGone},
		{kind: KindInternal, expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if got := tc.kind.HTTPStatus(); got != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("loading account: %w", NotFound("account %s not found", "acc-1"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}

	if errors.Is(err, ErrForbidden) {
		t.Fatalf("NotFound must not match ErrForbidden")
	}

	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %s", KindOf(err))
	}
}

func TestForbiddenCarriesRequiredRole(t *testing.T) {
	err := Forbidden("delete", "ADMIN")

	if err.RequiredRole != "ADMIN" || err.Action != "delete" {
		t.Fatalf("unexpected forbidden error %+v", err)
	}

	if err.Error() != "Forbidden: delete requires role ADMIN or higher" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := Validation(map[string]string{"name": "is required", "currency": "must be an ISO 4217 code"})

	expected := "ValidationFailed: validation failed (currency: must be an ISO 4217 code; name: is required)"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestAsClassifiesUnknownErrors(t *testing.T) {
	e := As(errors.New("boom"))

	if e.Kind != KindInternal {
		t.Errorf("expected KindInternal, got %s", e.Kind)
	}

	if e.Message != "internal error" {
		t.Errorf("internal errors must not leak their cause, got %q", e.Message)
	}
}
