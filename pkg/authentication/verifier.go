// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
)

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrAccessDenied   = errors.New("missing required scope or subject not allowed")
)

// Policy restricts which verified tokens may call the API. An empty policy
// admits every token the issuer signed, which is what end-user logins need.
type Policy struct {
	AllowedSubjects []string
	RequiredScope   string
}

func (p Policy) admits(principal *Principal) bool {
	if slices.Contains(p.AllowedSubjects, principal.UserID) {
		return true
	}

	if p.RequiredScope != "" {
		return principal.HasScope(p.RequiredScope)
	}

	return len(p.AllowedSubjects) == 0
}

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   Policy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	claims := new(tokenClaims)
	if err := token.Claims(claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	principal := claims.principal()
	if principal.UserID == "" {
		return nil, ErrMissingSubject
	}

	if !v.policy.admits(principal) {
		v.logger.Security().AuthzFailure(principal.UserID, "jwt_api_access")
		return nil, ErrAccessDenied
	}

	return principal, nil
}

func NewJWTVerifier(
	verifier *oidc.IDTokenVerifier,
	policy Policy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return &JWTVerifier{
		verifier: verifier,
		policy:   policy,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
