// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID            string     `db:"id" json:"id"`
	Email         string     `db:"email" json:"email"`
	EmailVerified bool       `db:"email_verified" json:"email_verified"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy     *string    `db:"deleted_by" json:"deleted_by,omitempty"`
}

type Organization struct {
	ID        string     `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Plan      string     `db:"plan" json:"plan"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy *string    `db:"deleted_by" json:"deleted_by,omitempty"`
}

// Membership is an organization_members row, optionally joined with its organization.
type Membership struct {
	ID             string     `db:"id" json:"id"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	UserID         string     `db:"user_id" json:"user_id"`
	Role           Role       `db:"role" json:"role"`
	InvitedBy      *string    `db:"invited_by" json:"invited_by,omitempty"`
	InvitedAt      *time.Time `db:"invited_at" json:"invited_at,omitempty"`
	AcceptedAt     *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`

	Organization *Organization `db:"-" json:"organization,omitempty"`
}

// Scope is the tenant boundary applied to every financial record query.
type Scope struct {
	OrganizationID string
	// IncludeInactive relaxes the activity and soft-delete predicates, never the organization one.
	IncludeInactive bool
}

// Pagination uses 1-based pages; zero values fall back to the storage defaults.
type Pagination struct {
	Page int64 `json:"page"`
	Size int64 `json:"size"`
}
