// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Plan string `json:"plan" validate:"omitempty,max=50"`
}

type API struct {
	service   ServiceInterface
	validator *validation.Validator
	logger    logging.LoggerInterface
}

func NewAPI(service ServiceInterface, validator *validation.Validator, logger logging.LoggerInterface) *API {
	return &API{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// RegisterUserEndpoints mounts the routes that need a user but no organization yet.
func (a *API) RegisterUserEndpoints(mux chi.Router) {
	mux.Post("/organizations", a.createOrganization)
}

// RegisterEndpoints mounts the routes that run against the resolved membership.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/organizations/current", a.getCurrentOrganization)
	mux.Delete("/organizations/current", a.deleteOrganization)
	mux.Get("/organizations/current/members", a.listMembers)
}

func (a *API) createOrganization(w http.ResponseWriter, r *http.Request) {
	userID, ok := authentication.GetUserID(r.Context())
	if !ok {
		a.writeError(w, apperrors.Unauthenticated())
		return
	}

	var req CreateOrganizationRequest
	if err := httptypes.DecodeJSON(r, &req); err != nil {
		a.writeError(w, err)
		return
	}

	if err := a.validator.Struct(req); err != nil {
		a.writeError(w, err)
		return
	}

	membership, err := a.service.CreateOrganization(r.Context(), userID, req.Name, req.Plan)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusCreated, "organization created", membership, nil)
}

func (a *API) getCurrentOrganization(w http.ResponseWriter, r *http.Request) {
	membership, err := a.service.GetCurrentOrganization(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "current organization", membership, nil)
}

func (a *API) deleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteOrganization(r.Context()); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.service.ListMembers(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "organization members", members, &httptypes.Meta{Total: len(members)})
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := httptypes.WriteError(w, err); status >= http.StatusInternalServerError {
		a.logger.Errorf("organization request failed: %v", err)
	}
}
