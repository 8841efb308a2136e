// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
)

// HeaderAPIKey carries the secret Kratos and Hydra are configured to send with every hook call.
const HeaderAPIKey = "X-Webhook-Api-Key"

type API struct {
	service ServiceInterface
	apiKey  []byte
	logger  logging.LoggerInterface
}

// NewAPI serves the identity webhooks. An empty apiKey rejects every call.
func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		apiKey:  []byte(apiKey),
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Group(func(r chi.Router) {
		r.Use(a.authenticate)
		r.Post("/webhooks/registration", a.registration)
		r.Post("/webhooks/token", a.tokenHook)
	})
}

func (a *API) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := []byte(r.Header.Get(HeaderAPIKey))

		if len(a.apiKey) == 0 || subtle.ConstantTimeCompare(key, a.apiKey) != 1 {
			a.logger.Security().AuthzFailure("anonymous", r.URL.Path, logging.WithLabel("reason", "invalid webhook api key"))
			httptypes.WriteError(w, apperrors.Unauthenticated())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	kratosIdentity := new(KratosIdentity)
	if err := json.NewDecoder(r.Body).Decode(kratosIdentity); err != nil {
		a.logger.Errorf("invalid registration payload: %v", err)
		httptypes.WriteError(w, apperrors.ValidationField("body", "invalid registration payload"))
		return
	}

	user, err := a.service.HandleRegistration(r.Context(), kratosIdentity)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteData(w, http.StatusOK, "user registered", user, nil)
}

// tokenHook answers Hydra with the claims to merge, so the body is the bare hook response.
func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("invalid token hook payload: %v", err)
		httptypes.WriteError(w, apperrors.ValidationField("body", "invalid token hook payload"))
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, resp)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	if status := httptypes.WriteError(w, err); status >= http.StatusInternalServerError {
		a.logger.Errorf("webhook failed: %v", err)
	}
}
