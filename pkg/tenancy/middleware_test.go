// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

func TestMiddleware_ResolveMembership(t *testing.T) {
	testCases := []struct {
		name           string
		userID         string
		header         string
		hint           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedCalled bool
	}{
		{
			name:   "membership attached to the request",
			userID: userID,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, "").Return(membership(types.RoleMember), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:   "organization header is forwarded",
			userID: userID,
			header: " " + orgID + " ",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, orgID).Return(membership(types.RoleMember), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:   "token organization used without header",
			userID: userID,
			hint:   orgID,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, orgID).Return(membership(types.RoleMember), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:   "header wins over token organization",
			userID: userID,
			header: orgID,
			hint:   "other-org",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, orgID).Return(membership(types.RoleMember), nil)
			},
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:           "no user",
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "no organization",
			userID: userID,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, "").Return(nil, apperrors.NoOrganization())
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockSvc)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if _, ok := MembershipFromContext(r.Context()); !ok {
					t.Error("expected membership in context")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
			if tc.userID != "" {
				req = req.WithContext(authentication.WithUserID(req.Context(), tc.userID))
			}
			if tc.hint != "" {
				req = req.WithContext(authentication.WithOrganizationHint(req.Context(), tc.hint))
			}
			if tc.header != "" {
				req.Header.Set(OrganizationHeader, tc.header)
			}
			w := httptest.NewRecorder()

			NewMiddleware(mockSvc, logging.NewNoopLogger()).ResolveMembership(next).ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if called != tc.expectedCalled {
				t.Errorf("expected next called %v, got %v", tc.expectedCalled, called)
			}
		})
	}
}

func TestMiddleware_ResolveMembershipMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockServiceInterface(ctrl)
	mockSvc.EXPECT().ResolveMembership(gomock.Any(), userID, "").Return(membership(types.RoleMember), nil).Times(1)

	mdw := NewMiddleware(mockSvc, logging.NewNoopLogger())
	handler := mdw.ResolveMembership(mdw.ResolveMembership(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), userID))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestMiddleware_RequireUser(t *testing.T) {
	mdw := NewMiddleware(nil, logging.NewNoopLogger())
	handler := mdw.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/organizations", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/organizations", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), userID))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
