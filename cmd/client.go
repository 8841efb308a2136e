// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/identity"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

const apiPrefix = "/api/v0"

// apiClient talks to the JSON API, unwrapping the response envelope into the caller's value.
type apiClient struct {
	endpoint       string
	userID         string
	organizationID string
	token          string

	http *retryablehttp.Client
}

func newAPIClient() *apiClient {
	endpoint := httpEndpoint
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.RetryWaitMax = 2 * time.Second
	c.Logger = nil
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &apiClient{
		endpoint:       strings.TrimSuffix(endpoint, "/"),
		userID:         userID,
		organizationID: organizationID,
		token:          bearerToken,
		http:           c,
	}
}

// APIError is a non 2xx answer from the API.
type APIError struct {
	httptypes.ErrorResponse
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error (status %d, %s): %s", e.Status, e.Kind, e.Message)
	for field, reason := range e.Fields {
		msg += fmt.Sprintf("\n  %s: %s", field, reason)
	}
	return msg
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, in, out any) (*httptypes.Meta, error) {
	target := c.endpoint + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(identity.HeaderName, c.userID)
	}
	if c.organizationID != "" {
		req.Header.Set(tenancy.OrganizationHeader, c.organizationID)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := new(APIError)
		if err := json.Unmarshal(raw, &apiErr.ErrorResponse); err != nil || apiErr.Message == "" {
			apiErr.Status = resp.StatusCode
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil, nil
	}

	envelope := httptypes.Response{Data: out}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return envelope.Meta, nil
}
