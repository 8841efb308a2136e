// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package kratos resolves users against the Ory Kratos admin API.
package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
)

var ErrIdentityNotFound = errors.New("identity not found")

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	conf.HTTPClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetUser maps the Kratos identity onto a User; the email comes from the traits.
func (c *Client) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetUser")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		c.setAvailability(r)
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("identity %s: %w", id, ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	c.setAvailability(r)
	return toUser(identity), nil
}

// FindUserByEmail searches identities by credentials identifier, which is the email for the default schema.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.FindUserByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	c.setAvailability(r)
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("identity %s: %w", email, ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("identity %s: %w", email, ErrIdentityNotFound)
	}

	return toUser(&ids[0]), nil
}

func (c *Client) setAvailability(r *http.Response) {
	value := 1.0
	if r == nil || r.StatusCode >= http.StatusInternalServerError {
		value = 0
	}

	_ = c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, value)
}

func toUser(identity *ory.Identity) *types.User {
	user := &types.User{ID: identity.Id}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			user.Email = email
		}
	}

	for _, address := range identity.VerifiableAddresses {
		if strings.EqualFold(address.Value, user.Email) {
			user.EmailVerified = address.Verified
		}
	}

	if identity.CreatedAt != nil {
		user.CreatedAt = *identity.CreatedAt
	}

	return user
}
