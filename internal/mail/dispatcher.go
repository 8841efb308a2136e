// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
)

// LogDispatcher only logs invitations, the token is left out.
type LogDispatcher struct {
	logger logging.LoggerInterface
}

func (d *LogDispatcher) SendInvitationEmail(_ context.Context, email InvitationEmail) error {
	d.logger.Infow(
		"invitation email",
		"to", email.To,
		"organization", email.OrganizationName,
		"inviter", email.InviterName,
		"role", email.Role,
	)

	return nil
}

func NewLogDispatcher(logger logging.LoggerInterface) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// RelayDispatcher posts the invitation as JSON to a mail relay, retrying
// connection errors and 5xx responses.
type RelayDispatcher struct {
	url    string
	client *retryablehttp.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *RelayDispatcher) SendInvitationEmail(ctx context.Context, email InvitationEmail) error {
	ctx, span := d.tracer.Start(ctx, "mail.RelayDispatcher.SendInvitationEmail")
	defer span.End()

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to encode invitation email: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		_ = d.monitor.SetDependencyAvailability(map[string]string{"component": "mail_relay"}, 0)
		return fmt.Errorf("mail relay unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	_ = d.monitor.SetDependencyAvailability(map[string]string{"component": "mail_relay"}, 1)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail relay rejected the invitation with status %d", resp.StatusCode)
	}

	return nil
}

func NewRelayDispatcher(url string, retries int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RelayDispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = retries
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Transport = otelhttp.NewTransport(client.HTTPClient.Transport)
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = &leveledLogger{logger: logger}

	d := new(RelayDispatcher)
	d.url = url
	d.client = client
	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d
}

// leveledLogger routes retryablehttp logs through the service logger.
type leveledLogger struct {
	logger logging.LoggerInterface
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)
