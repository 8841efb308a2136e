// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/pkg/authentication"
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

// RegisterEndpoints mounts the routes that act on the caller's organization.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/invitations", a.list)
	mux.Post("/invitations", a.send)
	mux.Delete("/invitations/{id}", a.revoke)
}

// RegisterAcceptEndpoint mounts acceptance, which needs an identity but no membership.
func (a *API) RegisterAcceptEndpoint(mux chi.Router) {
	mux.Post("/invitations/accept", a.accept)
}

func (a *API) send(w http.ResponseWriter, r *http.Request) {
	req := new(SendRequest)
	if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	inv, err := a.service.Send(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, "invitation sent", inv, nil)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	list, err := a.service.List(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "invitations", list, &httptypes.Meta{
		Total:  list.Total(),
		Counts: list.Counts(),
	})
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		a.writeError(w, apperrors.Unauthenticated())
		return
	}

	req := new(AcceptRequest)
	if token := r.URL.Query().Get("token"); token != "" && r.ContentLength == 0 {
		req.Token = token
	} else if err := httptypes.DecodeJSON(r, req); err != nil {
		a.writeError(w, err)
		return
	}

	membership, err := a.service.Accept(r.Context(), userID, req.Token)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "invitation accepted", membership, nil)
}

func (a *API) revoke(w http.ResponseWriter, r *http.Request) {
	inv, err := a.service.Revoke(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "invitation revoked", inv, nil)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := httptypes.WriteError(w, err); status >= http.StatusInternalServerError {
		a.logger.Errorf("invitation request failed: %v", err)
	}
}
