// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/canonical/finance-tracker/internal/kratos"
	"github.com/canonical/finance-tracker/internal/storage"
	"github.com/canonical/finance-tracker/internal/types"
)

// ErrUserNotFound is returned by every directory for unknown users.
var ErrUserNotFound = errors.New("user not found")

// DirectoryInterface is the read side of the identity provider: the core only needs
// a user's id and email.
type DirectoryInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	FindUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// DatabaseDirectory reads the users table, populated by the registration webhook.
type DatabaseDirectory struct {
	users storage.UserStorageInterface
}

func (d *DatabaseDirectory) GetUser(ctx context.Context, id string) (*types.User, error) {
	user, err := d.users.GetUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}

	return user, err
}

func (d *DatabaseDirectory) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	user, err := d.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
	}

	return user, err
}

func NewDatabaseDirectory(users storage.UserStorageInterface) *DatabaseDirectory {
	return &DatabaseDirectory{users: users}
}

type KratosClientInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	FindUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// KratosDirectory asks the Kratos admin API on every lookup.
type KratosDirectory struct {
	client KratosClientInterface
}

func (d *KratosDirectory) GetUser(ctx context.Context, id string) (*types.User, error) {
	user, err := d.client.GetUser(ctx, id)
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}

	return user, err
}

func (d *KratosDirectory) FindUserByEmail(ctx context.Context, email string) (*types.User, error) {
	user, err := d.client.FindUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, ErrUserNotFound)
	}

	return user, err
}

func NewKratosDirectory(client KratosClientInterface) *KratosDirectory {
	return &KratosDirectory{client: client}
}

// NormalizeEmail is the canonical form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
