// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/ratelimit"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/invitations"
	"github.com/canonical/finance-tracker/pkg/ledger"
	"github.com/canonical/finance-tracker/pkg/metrics"
	"github.com/canonical/finance-tracker/pkg/status"
	"github.com/canonical/finance-tracker/pkg/tenancy"
	"github.com/canonical/finance-tracker/pkg/webhooks"
)

// Services groups the domain services the API exposes.
type Services struct {
	Tenancy     tenancy.ServiceInterface
	Ledger      ledger.ServiceInterface
	Invitations invitations.ServiceInterface
	Webhooks    webhooks.ServiceInterface
}

// Options tunes the outer surface of the router.
type Options struct {
	AllowedOrigins []string
	// Identity puts the caller's user id on the request context.
	Identity func(http.Handler) http.Handler
	// AcceptLimiter throttles invitation acceptance. Nil disables throttling.
	AcceptLimiter *ratelimit.Limiter
	// WebhookAPIKey is the secret identity webhooks must present.
	WebhookAPIKey string
}

func NewRouter(
	services Services,
	opts Options,
	dbClient db.DBClientInterface,
	validator *validation.Validator,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(opts.AllowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(services.Webhooks, opts.WebhookAPIKey, logger).RegisterEndpoints(router)

	tenancyMiddleware := tenancy.NewMiddleware(services.Tenancy, logger)
	tenancyAPI := tenancy.NewAPI(services.Tenancy, validator, logger)
	ledgerAPI := ledger.NewAPI(services.Ledger, logger)
	invitationsAPI := invitations.NewAPI(services.Invitations, logger)

	router.Route("/api/v0", func(r chi.Router) {
		if opts.Identity != nil {
			r.Use(opts.Identity)
		}
		r.Use(db.TransactionMiddleware(dbClient, logger))

		// the caller needs an identity but not yet a membership
		r.Group(func(r chi.Router) {
			r.Use(tenancyMiddleware.RequireUser)

			tenancyAPI.RegisterUserEndpoints(r)

			r.Group(func(r chi.Router) {
				if opts.AcceptLimiter != nil {
					r.Use(opts.AcceptLimiter.Middleware)
				}
				invitationsAPI.RegisterAcceptEndpoint(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(tenancyMiddleware.ResolveMembership)

			tenancyAPI.RegisterEndpoints(r)
			ledgerAPI.RegisterEndpoints(r)
			invitationsAPI.RegisterEndpoints(r)
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
