// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/canonical/finance-tracker/internal/apperrors"
)

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorResponse
	}{
		{
			name: "forbidden carries the required role",
			err:  apperrors.Forbidden("delete", "ADMIN"),
			expected: ErrorResponse{
				Status:       http.StatusForbidden,
				Message:      "delete requires role ADMIN or higher",
				Kind:         "Forbidden",
				RequiredRole: "ADMIN",
			},
		},
		{
			name: "validation carries fields",
			err:  apperrors.ValidationField("name", "is required"),
			expected: ErrorResponse{
				Status:  http.StatusBadRequest,
				Message: "validation failed",
				Kind:    "ValidationFailed",
				Fields:  map[string]string{"name": "is required"},
			},
		},
		{
			name: "expired",
			err:  apperrors.Expired("invitation expired"),
			expected: ErrorResponse{
				Status:  http.StatusGone,
				Message: "invitation expired",
				Kind:    "Expired",
			},
		},
		{
			name: "unknown errors are hidden",
			err:  errors.New("pq: password authentication failed"),
			expected: ErrorResponse{
				Status:  http.StatusInternalServerError,
				Message: "Internal Server Error",
				Kind:    "Internal",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NewErrorResponse(test.err)
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("expected %+v, got %+v", test.expected, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	status := WriteError(rr, apperrors.NotFound("account %s not found", "a1"))

	if status != http.StatusNotFound || rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d/%d", status, rr.Code)
	}

	var body ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Kind != "NotFound" || body.Message != "account a1 not found" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name        string
		body        string
		expectedErr bool
	}{
		{name: "valid", body: `{"name":"Checking"}`},
		{name: "empty", body: ``, expectedErr: true},
		{name: "unknown field", body: `{"name":"x","organization_id":"other"}`, expectedErr: true},
		{name: "wrong type", body: `{"name":1}`, expectedErr: true},
		{name: "trailing object", body: `{"name":"x"}{"name":"y"}`, expectedErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))

			var p payload
			err := DecodeJSON(req, &p)

			if test.expectedErr {
				if apperrors.KindOf(err) != apperrors.KindValidationFailed {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
