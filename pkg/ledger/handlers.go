// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/db"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/types"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/accounts", a.listAccounts)
	mux.Post("/accounts", a.createAccount)
	mux.Get("/accounts/{id}", a.getAccount)
	mux.Patch("/accounts/{id}", a.updateAccount)
	mux.Delete("/accounts/{id}", a.deleteAccount)

	mux.Get("/liabilities", a.listLiabilities)
	mux.Post("/liabilities", a.createLiability)
	mux.Get("/liabilities/{id}", a.getLiability)
	mux.Patch("/liabilities/{id}", a.updateLiability)
	mux.Delete("/liabilities/{id}", a.deleteLiability)

	mux.Get("/balances", a.listBalances)
	mux.Post("/balances", a.upsertBalance)
	mux.Post("/balances/bulk", a.bulkUpsertBalances)
	mux.Get("/balances/{id}", a.getBalance)
	mux.Patch("/balances/{id}", a.updateBalance)
	mux.Delete("/balances/{id}", a.deleteBalance)
}

func (a *API) listAccounts(w http.ResponseWriter, r *http.Request) {
	filter, err := instrumentFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}

	accounts, err := a.service.ListAccounts(r.Context(), filter, flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "accounts", accounts, listMeta(filter.Pagination, len(accounts)))
}

func (a *API) getAccount(w http.ResponseWriter, r *http.Request) {
	account, err := a.service.GetAccount(r.Context(), chi.URLParam(r, "id"), flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "account", account, nil)
}

func (a *API) createAccount(w http.ResponseWriter, r *http.Request) {
	req := new(AccountRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	account, err := a.service.CreateAccount(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, "account created", account, nil)
}

func (a *API) updateAccount(w http.ResponseWriter, r *http.Request) {
	req := new(AccountUpdateRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	account, err := a.service.UpdateAccount(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "account updated", account, nil)
}

func (a *API) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteAccount(r.Context(), chi.URLParam(r, "id"), flag(r, "hard")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listLiabilities(w http.ResponseWriter, r *http.Request) {
	filter, err := instrumentFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}

	liabilities, err := a.service.ListLiabilities(r.Context(), filter, flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "liabilities", liabilities, listMeta(filter.Pagination, len(liabilities)))
}

func (a *API) getLiability(w http.ResponseWriter, r *http.Request) {
	liability, err := a.service.GetLiability(r.Context(), chi.URLParam(r, "id"), flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "liability", liability, nil)
}

func (a *API) createLiability(w http.ResponseWriter, r *http.Request) {
	req := new(LiabilityRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	liability, err := a.service.CreateLiability(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, "liability created", liability, nil)
}

func (a *API) updateLiability(w http.ResponseWriter, r *http.Request) {
	req := new(LiabilityUpdateRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	liability, err := a.service.UpdateLiability(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "liability updated", liability, nil)
}

func (a *API) deleteLiability(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteLiability(r.Context(), chi.URLParam(r, "id"), flag(r, "hard")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listBalances(w http.ResponseWriter, r *http.Request) {
	filter, err := balanceFilter(r.URL.Query())
	if err != nil {
		a.writeError(w, err)
		return
	}

	balances, err := a.service.ListBalances(r.Context(), filter, flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "balances", balances, listMeta(filter.Pagination, len(balances)))
}

func (a *API) getBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := a.service.GetBalance(r.Context(), chi.URLParam(r, "id"), flag(r, "include_inactive"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "balance", balance, nil)
}

func (a *API) upsertBalance(w http.ResponseWriter, r *http.Request) {
	req := new(BalanceRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	balance, err := a.service.UpsertBalance(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "balance recorded", balance, nil)
}

func (a *API) bulkUpsertBalances(w http.ResponseWriter, r *http.Request) {
	req := new(BulkBalanceRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	balances, err := a.service.BulkUpsertBalances(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "balances recorded", balances, &httptypes.Meta{Total: len(balances)})
}

func (a *API) updateBalance(w http.ResponseWriter, r *http.Request) {
	req := new(BalanceUpdateRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	balance, err := a.service.UpdateBalance(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "balance updated", balance, nil)
}

func (a *API) deleteBalance(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteBalance(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := httptypes.WriteError(w, err); status >= http.StatusInternalServerError {
		a.logger.Errorf("ledger request failed: %v", err)
	}
}

func flag(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func pagination(q url.Values) (types.Pagination, error) {
	var p types.Pagination
	fields := make(map[string]string)

	if v := q.Get("page"); v != "" {
		page, err := strconv.ParseInt(v, 10, 64)
		if err != nil || page < 1 {
			fields["page"] = "must be a positive integer"
		}
		p.Page = page
	}

	if v := q.Get("size"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size < 1 {
			fields["size"] = "must be a positive integer"
		}
		p.Size = size
	}

	if len(fields) > 0 {
		return p, apperrors.Validation(fields)
	}

	return p, nil
}

func instrumentFilter(q url.Values) (types.InstrumentFilter, error) {
	p, err := pagination(q)
	if err != nil {
		return types.InstrumentFilter{}, err
	}

	return types.InstrumentFilter{
		Type:       q.Get("type"),
		Currency:   q.Get("currency"),
		Pagination: p,
	}, nil
}

func balanceFilter(q url.Values) (types.BalanceFilter, error) {
	p, err := pagination(q)
	if err != nil {
		return types.BalanceFilter{}, err
	}

	filter := types.BalanceFilter{
		AccountID:   q.Get("account_id"),
		LiabilityID: q.Get("liability_id"),
		Pagination:  p,
	}

	for name, dst := range map[string]**types.Date{"from": &filter.From, "to": &filter.To} {
		v := q.Get(name)
		if v == "" {
			continue
		}

		d, err := types.ParseDate(v)
		if err != nil {
			return types.BalanceFilter{}, apperrors.ValidationField(name, err.Error())
		}
		*dst = &d
	}

	return filter, nil
}

func listMeta(p types.Pagination, total int) *httptypes.Meta {
	page := db.NewPage(p.Page, p.Size)

	return &httptypes.Meta{
		Page:  int64(page.Number),
		Size:  int64(page.Size),
		Total: total,
	}
}
