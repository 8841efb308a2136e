// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"net/http"
	"strings"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/pkg/authentication"
)

const (
	// HeaderName carries the identity id authenticated by the fronting proxy
	HeaderName = "X-Authenticated-User-Id"
)

// Middleware trusts HeaderName. Only mount it behind a proxy that strips the
// header from client requests.
type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HTTPMiddleware copies the header into the request context. Requests without it
// pass through unauthenticated and are rejected by the handlers that need a user.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		if userID := strings.TrimSpace(r.Header.Get(HeaderName)); userID != "" {
			ctx = authentication.WithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
