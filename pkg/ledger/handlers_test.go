// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/types"
)

func newTestRouter(mockSvc *MockServiceInterface) *chi.Mux {
	mux := chi.NewMux()
	NewAPI(mockSvc, logging.NewNoopLogger()).RegisterEndpoints(mux)

	return mux
}

func TestHandler_ListAccounts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMocks func(*MockServiceInterface)
		wantStatus int
		wantMeta   httptypes.Meta
	}{
		{
			name:  "defaults",
			query: "",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ListAccounts(gomock.Any(), types.InstrumentFilter{}, false).Return([]*types.Account{{}}, nil)
			},
			wantStatus: http.StatusOK,
			wantMeta:   httptypes.Meta{Page: 1, Size: 100, Total: 1},
		},
		{
			name:  "filters and include inactive",
			query: "?type=SAVINGS&currency=EUR&page=2&size=10&include_inactive=true",
			setupMocks: func(mockSvc *MockServiceInterface) {
				filter := types.InstrumentFilter{Type: "SAVINGS", Currency: "EUR", Pagination: types.Pagination{Page: 2, Size: 10}}
				mockSvc.EXPECT().ListAccounts(gomock.Any(), filter, true).Return([]*types.Account{}, nil)
			},
			wantStatus: http.StatusOK,
			wantMeta:   httptypes.Meta{Page: 2, Size: 10},
		},
		{
			name:       "invalid page",
			query:      "?page=zero",
			setupMocks: func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "no organization",
			query: "",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().ListAccounts(gomock.Any(), gomock.Any(), false).Return(nil, apperrors.NoOrganization())
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			tt.setupMocks(mockSvc)

			w := httptest.NewRecorder()
			newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			var body httptypes.Response
			body.Meta = new(httptypes.Meta)
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Meta.Page != tt.wantMeta.Page || body.Meta.Size != tt.wantMeta.Size || body.Meta.Total != tt.wantMeta.Total {
				t.Errorf("expected meta %+v, got %+v", tt.wantMeta, *body.Meta)
			}
		})
	}
}

func TestHandler_DeleteAccount(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		hard       bool
		err        error
		wantStatus int
	}{
		{name: "soft", wantStatus: http.StatusNoContent},
		{name: "hard", query: "?hard=true", hard: true, wantStatus: http.StatusNoContent},
		{name: "other tenant", err: apperrors.NotFound("account x not found"), wantStatus: http.StatusNotFound},
		{name: "member", err: apperrors.Forbidden("delete", "ADMIN"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			mockSvc.EXPECT().DeleteAccount(gomock.Any(), "acc-1", tt.hard).Return(tt.err)

			w := httptest.NewRecorder()
			newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/accounts/acc-1"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestHandler_CreateAccountRejectsOrganizationField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockServiceInterface(ctrl)

	body := `{"name": "Everyday", "type": "CHECKING", "currency": "USD", "organization_id": "other"}`
	w := httptest.NewRecorder()
	newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestHandler_ListBalancesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockServiceInterface(ctrl)
	mockSvc.EXPECT().ListBalances(gomock.Any(), gomock.Any(), false).DoAndReturn(
		func(_ any, filter types.BalanceFilter, _ bool) ([]*types.Balance, error) {
			if filter.AccountID != "acc-1" {
				t.Errorf("expected account filter, got %q", filter.AccountID)
			}
			if filter.From == nil || filter.From.String() != "2026-01-01" || filter.To != nil {
				t.Errorf("unexpected date filter %+v", filter)
			}
			return []*types.Balance{}, nil
		},
	)

	w := httptest.NewRecorder()
	newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/balances?account_id=acc-1&from=2026-01-01", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/balances?to=31-12-2026", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a malformed date, got %d", w.Code)
	}
}

func TestHandler_BulkUpsertBalances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockServiceInterface(ctrl)
	mockSvc.EXPECT().BulkUpsertBalances(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req *BulkBalanceRequest) ([]*types.Balance, error) {
			if len(req.Entries) != 2 || req.Date.String() != "2026-03-31" {
				t.Errorf("unexpected request %+v", req)
			}
			return []*types.Balance{{}, {}}, nil
		},
	)

	body := `{"date": "2026-03-31", "entries": [
		{"account_id": "0190c2a4-7b3e-7c1d-9a4e-000000000001", "amount": "10.50"},
		{"liability_id": "0190c2a4-7b3e-7c1d-9a4e-000000000002", "amount": "-3"}
	]}`
	w := httptest.NewRecorder()
	newTestRouter(mockSvc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/balances/bulk", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}
