// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"net/http"
	"strings"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

// OrganizationHeader selects one of the caller's organizations explicitly.
const OrganizationHeader = "X-Organization-Id"

type Middleware struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

// RequireUser rejects requests without an authenticated user id.
func (mdw *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authentication.GetUserID(r.Context()); !ok {
			httptypes.WriteError(w, apperrors.Unauthenticated())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ResolveMembership resolves the caller's membership once and stores it on the request context.
func (mdw *Middleware) ResolveMembership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := MembershipFromContext(ctx); ok {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := authentication.GetUserID(ctx)
		if !ok {
			httptypes.WriteError(w, apperrors.Unauthenticated())
			return
		}

		// the header wins over the organization the token was minted for
		organizationID := strings.TrimSpace(r.Header.Get(OrganizationHeader))
		if organizationID == "" {
			organizationID, _ = authentication.OrganizationHint(ctx)
		}

		membership, err := mdw.service.ResolveMembership(ctx, userID, organizationID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindInternal {
				mdw.logger.Errorf("failed to resolve membership for user %s: %v", userID, err)
			}
			httptypes.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithMembership(ctx, membership)))
	})
}

func NewMiddleware(service ServiceInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		service: service,
		logger:  logger,
	}
}
