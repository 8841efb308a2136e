// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/config"
	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/internal/kratos"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/mail"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/monitoring/prometheus"
	"github.com/canonical/finance-tracker/internal/ratelimit"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/validation"
	"github.com/canonical/finance-tracker/pkg/authentication"
	"github.com/canonical/finance-tracker/pkg/invitations"
	"github.com/canonical/finance-tracker/pkg/ledger"
	"github.com/canonical/finance-tracker/pkg/tenancy"
	"github.com/canonical/finance-tracker/pkg/web"
	"github.com/canonical/finance-tracker/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		main()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("finance-tracker", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	authorizer := authorization.NewAuthorizer(tracer, monitor, logger)
	validator := validation.NewValidator()

	directory, err := newDirectory(specs, s, tracer, monitor, logger)
	if err != nil {
		return err
	}

	var dispatcher invitations.DispatcherInterface
	if specs.MailRelayURL != "" {
		dispatcher = mail.NewRelayDispatcher(specs.MailRelayURL, specs.MailRelayRetries, tracer, monitor, logger)
		logger.Infof("Invitation emails are relayed to %s", specs.MailRelayURL)
	} else {
		dispatcher = mail.NewLogDispatcher(logger)
		logger.Info("Invitation emails are only logged")
	}

	tenancyService := tenancy.NewService(s, dbClient, authorizer, tracer, monitor, logger)
	ledgerService := ledger.NewService(s, authorizer, validator, tracer, monitor, logger)
	invitationService := invitations.NewService(
		s,
		dbClient,
		directory,
		dispatcher,
		authorizer,
		validator,
		invitations.Config{
			Lifetime:  specs.InvitationLifetime,
			PublicURL: specs.PublicURL,
		},
		tracer,
		monitor,
		logger,
	)
	webhookService := webhooks.NewService(s, tenancyService, tracer, monitor, logger)

	identityMiddleware, err := newIdentityMiddleware(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}

	acceptLimiter := ratelimit.NewLimiter(
		specs.AcceptRateLimit,
		specs.AcceptRateBurst,
		ratelimit.FirstOf(callerID, ratelimit.RemoteIP),
		logger,
	)

	router := web.NewRouter(
		web.Services{
			Tenancy:     tenancyService,
			Ledger:      ledgerService,
			Invitations: invitationService,
			Webhooks:    webhookService,
		},
		web.Options{
			AllowedOrigins: specs.CORSAllowedOrigins,
			Identity:       identityMiddleware,
			AcceptLimiter:  acceptLimiter,
			WebhookAPIKey:  specs.WebhookAPIKey,
		},
		dbClient,
		validator,
		tracer,
		monitor,
		logger,
	)
	if specs.WebhookAPIKey == "" {
		logger.Warn("WEBHOOK_API_KEY is not set, identity webhooks reject every call")
	}

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func newDirectory(
	specs *config.EnvSpec,
	s *storage.Storage,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (identity.DirectoryInterface, error) {
	switch specs.IdentityProvider {
	case "database", "":
		logger.Info("Reading users from the database")
		return identity.NewDatabaseDirectory(s), nil
	case "kratos":
		if specs.KratosAdminURL == "" {
			return nil, fmt.Errorf("KRATOS_ADMIN_URL is required when IDENTITY_PROVIDER is kratos")
		}
		logger.Infof("Reading users from Kratos at %s", specs.KratosAdminURL)
		return identity.NewKratosDirectory(kratos.NewClient(specs.KratosAdminURL, tracer, monitor, logger)), nil
	default:
		return nil, fmt.Errorf("unknown identity provider %q", specs.IdentityProvider)
	}
}

// newIdentityMiddleware verifies bearer tokens when authentication is enabled, otherwise it
// trusts the identity header set by the fronting proxy.
func newIdentityMiddleware(
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (func(http.Handler) http.Handler, error) {
	if !specs.AuthenticationEnabled {
		logger.Info("Trusting the identity header, authentication is disabled")
		return identity.NewMiddleware(tracer, monitor, logger).HTTPMiddleware, nil
	}

	verifier, err := authentication.NewVerifier(
		context.Background(),
		authentication.Config{
			Issuer:  specs.AuthenticationIssuer,
			JWKSURL: specs.AuthenticationJWKSURL,
			Policy: authentication.Policy{
				AllowedSubjects: specs.AuthenticationAllowedSubjects,
				RequiredScope:   specs.AuthenticationRequiredScope,
			},
		},
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up authentication: %w", err)
	}

	return authentication.NewMiddleware(verifier, tracer, monitor, logger).Authenticate(), nil
}

func callerID(r *http.Request) string {
	id, _ := authentication.GetUserID(r.Context())
	return id
}

func main() {
	if err := serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
