// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// IdentityProvider selects where user emails are read from: "database" or "kratos"
	IdentityProvider string `envconfig:"identity_provider" default:"database"`
	KratosAdminURL   string `envconfig:"kratos_admin_url"`

	AuthenticationEnabled         bool     `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer          string   `envconfig:"authentication_issuer"`
	AuthenticationJWKSURL         string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubjects []string `envconfig:"authentication_allowed_subjects"`
	AuthenticationRequiredScope   string   `envconfig:"authentication_required_scope"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`
	PublicURL          string        `envconfig:"public_url" default:"http://localhost:8080"`
	MailRelayURL       string        `envconfig:"mail_relay_url"`
	MailRelayRetries   int           `envconfig:"mail_relay_retries" default:"3"`

	AcceptRateLimit float64 `envconfig:"accept_rate_limit" default:"0.2"`
	AcceptRateBurst int     `envconfig:"accept_rate_burst" default:"5"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	WebhookAPIKey string `envconfig:"webhook_api_key"`
}
