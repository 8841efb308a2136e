// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"slices"
	"strings"
)

const (
	// ClaimOrganizationID and ClaimRole are stamped on tokens by the token hook.
	ClaimOrganizationID = "organization_id"
	ClaimRole           = "role"
)

// Principal is the caller named by a verified token.
type Principal struct {
	UserID string
	Email  string

	// OrganizationID and Role echo the token hook claims. They are hints only,
	// membership is always re-read from the database.
	OrganizationID string
	Role           string

	Scopes []string
}

type tokenClaims struct {
	Subject        string   `json:"sub"`
	Email          string   `json:"email"`
	Scope          string   `json:"scope"`
	Scopes         []string `json:"scp"`
	OrganizationID string   `json:"organization_id"`
	Role           string   `json:"role"`

	// Hydra nests custom access token claims under ext.
	Ext struct {
		OrganizationID string `json:"organization_id"`
		Role           string `json:"role"`
	} `json:"ext"`
}

func (c *tokenClaims) principal() *Principal {
	p := &Principal{
		UserID:         c.Subject,
		Email:          strings.ToLower(strings.TrimSpace(c.Email)),
		OrganizationID: c.OrganizationID,
		Role:           c.Role,
		Scopes:         slices.Concat(strings.Fields(c.Scope), c.Scopes),
	}

	if p.OrganizationID == "" {
		p.OrganizationID = c.Ext.OrganizationID
		p.Role = c.Ext.Role
	}

	return p
}

// HasScope reports whether the token granted scope.
func (p *Principal) HasScope(scope string) bool {
	return slices.Contains(p.Scopes, scope)
}
