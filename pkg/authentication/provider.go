// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
)

var (
	otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	// access tokens are not audience-bound to this service
	verifierConfig = &oidc.Config{SkipClientIDCheck: true}
)

// Config locates the token issuer and carries the access policy.
type Config struct {
	Issuer string
	// JWKSURL skips OIDC discovery when set.
	JWKSURL string
	Policy  Policy
}

// NewVerifier builds a JWT verifier, using OIDC discovery unless a JWKS URL is configured.
func NewVerifier(
	ctx context.Context,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*JWTVerifier, error) {
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	if cfg.JWKSURL != "" {
		logger.Infof("Using manual JWKS URL: %s", cfg.JWKSURL)
		keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
		return NewJWTVerifier(oidc.NewVerifier(cfg.Issuer, keySet, verifierConfig), cfg.Policy, tracer, monitor, logger), nil
	}

	logger.Infof("Using OIDC discovery for issuer: %s", cfg.Issuer)
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %v", err)
	}

	return NewProviderVerifier(provider, cfg.Policy, tracer, monitor, logger), nil
}

// NewProviderVerifier builds a JWT verifier from an already discovered provider.
func NewProviderVerifier(
	provider ProviderInterface,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return NewJWTVerifier(provider.Verifier(verifierConfig), policy, tracer, monitor, logger)
}
