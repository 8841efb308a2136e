// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"strings"

	"github.com/canonical/finance-tracker/internal/apperrors"
	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
)

const bearerScheme = "bearer"

// Middleware turns a bearer token into the caller identity the tenancy layer reads.
type Middleware struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				reject(w, "missing authorization header")
				return
			}

			principal, err := m.verifier.VerifyToken(ctx, raw)
			if err != nil {
				m.logger.Debugf("JWT verification failed: %v", err)
				reject(w, "invalid token")
				return
			}

			ctx = WithUserID(ctx, principal.UserID)
			if principal.OrganizationID != "" {
				ctx = WithOrganizationHint(ctx, principal.OrganizationID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials of an RFC 6750 Authorization header.
// The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func reject(w http.ResponseWriter, message string) {
	err := apperrors.Unauthenticated()
	err.Message = message

	httptypes.WriteError(w, err)
}

func NewMiddleware(verifier TokenVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
