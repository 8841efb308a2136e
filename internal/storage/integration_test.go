// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

//go:build integration

package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/migrations"
)

var testStorage *Storage

// TestMain starts one Postgres container for the package and migrates it.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, dsn, err := startPostgres(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres: %v\n", err)
		os.Exit(1)
	}

	code := func() int {
		defer func() { _ = container.Terminate(ctx) }()

		if err := migrate(ctx, dsn); err != nil {
			fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
			return 1
		}

		client, err := db.NewDBClient(
			db.Config{DSN: dsn, MaxConns: 10, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: time.Minute},
			tracing.NewNoopTracer(),
			monitoring.NewNoopMonitor("finance-tracker"),
			logging.NewNoopLogger(),
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
			return 1
		}
		defer client.Close()

		testStorage = NewStorage(client, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("finance-tracker"), logging.NewNoopLogger())

		return m.Run()
	}()

	os.Exit(code)
}

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "finance",
			"POSTGRES_PASSWORD": "finance",
			"POSTGRES_DB":       "finance",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, "", err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, "", err
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return container, "", err
	}

	return container, fmt.Sprintf("postgres://finance:finance@%s:%s/finance?sslmode=disable", host, port.Port()), nil
}

func migrate(ctx context.Context, dsn string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return err
	}

	conn := stdlib.OpenDB(*config)
	defer conn.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, conn, migrations.EmbedMigrations)
	if err != nil {
		return err
	}

	_, err = provider.Up(ctx)
	return err
}

func newOrganization(t *testing.T) *types.Organization {
	t.Helper()

	org, err := testStorage.CreateOrganization(context.Background(), &types.Organization{Name: faker.Word(), Plan: "FREE"})
	require.NoError(t, err)

	return org
}

func newAccount(t *testing.T, organizationID string) *types.Account {
	t.Helper()

	account, err := testStorage.CreateAccount(context.Background(), organizationID, faker.UUIDHyphenated(), &types.Account{
		Instrument: types.Instrument{
			Name:     faker.Name(),
			Type:     string(types.AccountChecking),
			Currency: "EUR",
			IsActive: true,
		},
	})
	require.NoError(t, err)

	return account
}

func TestIntegrationTenantIsolation(t *testing.T) {
	ctx := context.Background()
	orgA, orgB := newOrganization(t), newOrganization(t)

	account := newAccount(t, orgA.ID)
	require.Equal(t, orgA.ID, account.OrganizationID)

	scopeB := types.Scope{OrganizationID: orgB.ID}

	_, err := testStorage.GetAccount(ctx, scopeB, account.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = testStorage.UpdateAccount(ctx, scopeB, account.ID, map[string]any{"name": "stolen"})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, testStorage.SoftDeleteAccount(ctx, scopeB, account.ID, "mallory"), ErrNotFound)
	require.ErrorIs(t, testStorage.HardDeleteAccount(ctx, scopeB, account.ID), ErrNotFound)

	listed, err := testStorage.ListAccounts(ctx, types.Scope{OrganizationID: orgB.ID, IncludeInactive: true}, types.InstrumentFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)

	balance, err := testStorage.UpsertBalance(ctx, orgA.ID, "alice", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.January, 31),
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = testStorage.GetBalance(ctx, scopeB, balance.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, testStorage.DeleteBalance(ctx, scopeB, balance.ID), ErrNotFound)

	_, err = testStorage.UpsertBalance(ctx, orgB.ID, "mallory", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.February, 1),
		Amount:    decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = testStorage.UpdateBalance(ctx, scopeB, balance.ID, map[string]any{"amount": decimal.NewFromInt(0)})
	require.ErrorIs(t, err, ErrNotFound)

	liability, err := testStorage.CreateLiability(ctx, orgA.ID, "alice", &types.Liability{
		Instrument: types.Instrument{Name: faker.Name(), Type: string(types.LiabilityMortgage), Currency: "EUR", IsActive: true},
	})
	require.NoError(t, err)

	_, err = testStorage.GetLiability(ctx, scopeB, liability.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = testStorage.UpdateLiability(ctx, scopeB, liability.ID, map[string]any{"name": "stolen"})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, testStorage.SoftDeleteLiability(ctx, scopeB, liability.ID, "mallory"), ErrNotFound)
	require.ErrorIs(t, testStorage.HardDeleteLiability(ctx, scopeB, liability.ID), ErrNotFound)

	_, err = testStorage.UpsertBalance(ctx, orgB.ID, "mallory", &types.Balance{
		LiabilityID: &liability.ID,
		Date:        types.NewDate(2026, time.February, 1),
		Amount:      decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, ErrNotFound)

	liabilities, err := testStorage.ListLiabilities(ctx, types.Scope{OrganizationID: orgB.ID, IncludeInactive: true}, types.InstrumentFilter{})
	require.NoError(t, err)
	require.Empty(t, liabilities)

	got, err := testStorage.GetAccount(ctx, types.Scope{OrganizationID: orgA.ID}, account.ID)
	require.NoError(t, err)
	require.Equal(t, account.Name, got.Name)

	gotLiability, err := testStorage.GetLiability(ctx, types.Scope{OrganizationID: orgA.ID}, liability.ID)
	require.NoError(t, err)
	require.Equal(t, liability.Name, gotLiability.Name)
	require.True(t, gotLiability.IsActive)

	unchanged, err := testStorage.GetBalance(ctx, types.Scope{OrganizationID: orgA.ID}, balance.ID)
	require.NoError(t, err)
	require.True(t, unchanged.Amount.Equal(decimal.NewFromInt(100)))
}

func TestIntegrationUpdateBalanceDateCollision(t *testing.T) {
	ctx := context.Background()
	org := newOrganization(t)
	scope := types.Scope{OrganizationID: org.ID}
	account := newAccount(t, org.ID)

	january, err := testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.January, 31),
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.February, 28),
		Amount:    decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	_, err = testStorage.UpdateBalance(ctx, scope, january.ID, map[string]any{"date": types.NewDate(2026, time.February, 28)})
	require.ErrorIs(t, err, ErrDuplicateKey)

	kept, err := testStorage.GetBalance(ctx, scope, january.ID)
	require.NoError(t, err)
	require.Equal(t, types.NewDate(2026, time.January, 31).Format(types.DateLayout), kept.Date.Format(types.DateLayout))
}

func TestIntegrationSoftDelete(t *testing.T) {
	ctx := context.Background()
	org := newOrganization(t)
	scope := types.Scope{OrganizationID: org.ID}
	inactive := types.Scope{OrganizationID: org.ID, IncludeInactive: true}

	account := newAccount(t, org.ID)
	balance, err := testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.March, 1),
		Amount:    decimal.RequireFromString("12.34"),
	})
	require.NoError(t, err)

	require.NoError(t, testStorage.SoftDeleteAccount(ctx, scope, account.ID, "alice"))
	require.ErrorIs(t, testStorage.SoftDeleteAccount(ctx, scope, account.ID, "alice"), ErrNotFound)

	_, err = testStorage.GetAccount(ctx, scope, account.ID)
	require.ErrorIs(t, err, ErrNotFound)

	deleted, err := testStorage.GetAccount(ctx, inactive, account.ID)
	require.NoError(t, err)
	require.False(t, deleted.IsActive)
	require.NotNil(t, deleted.DeletedAt)
	require.Equal(t, "alice", *deleted.DeletedBy)

	listed, err := testStorage.ListBalances(ctx, scope, types.BalanceFilter{AccountID: account.ID})
	require.NoError(t, err)
	require.Empty(t, listed)

	kept, err := testStorage.GetBalance(ctx, inactive, balance.ID)
	require.NoError(t, err)
	require.True(t, kept.Amount.Equal(decimal.RequireFromString("12.34")))

	_, err = testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{
		AccountID: &account.ID,
		Date:      types.NewDate(2026, time.March, 2),
		Amount:    decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, testStorage.HardDeleteAccount(ctx, scope, account.ID))

	_, err = testStorage.GetBalance(ctx, inactive, balance.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIntegrationActiveNameUniqueness(t *testing.T) {
	ctx := context.Background()
	org := newOrganization(t)
	scope := types.Scope{OrganizationID: org.ID}

	liability := &types.Liability{
		Instrument: types.Instrument{Name: "Mortgage", Type: string(types.LiabilityMortgage), Currency: "USD", IsActive: true},
	}

	first, err := testStorage.CreateLiability(ctx, org.ID, "alice", liability)
	require.NoError(t, err)

	_, err = testStorage.CreateLiability(ctx, org.ID, "alice", liability)
	require.ErrorIs(t, err, ErrDuplicateKey)

	require.NoError(t, testStorage.SoftDeleteLiability(ctx, scope, first.ID, "alice"))

	second, err := testStorage.CreateLiability(ctx, org.ID, "alice", liability)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestIntegrationBalanceUpsert(t *testing.T) {
	ctx := context.Background()
	org := newOrganization(t)
	account := newAccount(t, org.ID)
	date := types.NewDate(2026, time.April, 30)

	first, err := testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{AccountID: &account.ID, Date: date, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	second, err := testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{AccountID: &account.ID, Date: date, Amount: decimal.NewFromInt(150)})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.True(t, second.Amount.Equal(decimal.NewFromInt(150)))

	concurrentDate := types.NewDate(2026, time.May, 31)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, amount := range []int64{100, 200} {
		wg.Add(1)
		go func(amount int64) {
			defer wg.Done()
			_, err := testStorage.UpsertBalance(ctx, org.ID, "alice", &types.Balance{AccountID: &account.ID, Date: concurrentDate, Amount: decimal.NewFromInt(amount)})
			errs <- err
		}(amount)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	from, to := concurrentDate, concurrentDate
	rows, err := testStorage.ListBalances(ctx, types.Scope{OrganizationID: org.ID}, types.BalanceFilter{AccountID: account.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Amount.Equal(decimal.NewFromInt(100)) || rows[0].Amount.Equal(decimal.NewFromInt(200)))
}

func TestIntegrationBulkUpsertIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	org, other := newOrganization(t), newOrganization(t)
	account := newAccount(t, org.ID)
	foreign := newAccount(t, other.ID)
	date := types.NewDate(2026, time.June, 30)

	_, err := testStorage.BulkUpsertBalances(ctx, org.ID, "alice", date, []types.BalanceEntry{
		{AccountID: &account.ID, Amount: decimal.NewFromInt(10)},
		{AccountID: &foreign.ID, Amount: decimal.NewFromInt(20)},
	})
	require.ErrorIs(t, err, ErrNotFound)

	rows, err := testStorage.ListBalances(ctx, types.Scope{OrganizationID: org.ID, IncludeInactive: true}, types.BalanceFilter{AccountID: account.ID})
	require.NoError(t, err)
	require.Empty(t, rows)

	written, err := testStorage.BulkUpsertBalances(ctx, org.ID, "alice", date, []types.BalanceEntry{
		{AccountID: &account.ID, Amount: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	require.Len(t, written, 1)
}

func TestIntegrationInvitationLifecycle(t *testing.T) {
	ctx := context.Background()
	org := newOrganization(t)
	email := faker.Email()
	now := time.Now().UTC().Truncate(time.Microsecond)

	inv, err := testStorage.UpsertInvitation(ctx, &types.Invitation{
		OrganizationID: org.ID,
		Email:          email,
		Role:           types.RoleMember,
		TokenHash:      "hash-1",
		InvitedBy:      "alice",
		SentAt:         now,
		ExpiresAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, types.InvitationPending, inv.State(now))

	require.NoError(t, testStorage.ClaimInvitation(ctx, inv.ID, now))
	require.ErrorIs(t, testStorage.ClaimInvitation(ctx, inv.ID, now), ErrConflict)

	_, err = testStorage.RevokeInvitation(ctx, org.ID, inv.ID, now)
	require.ErrorIs(t, err, ErrConflict)

	reissued, err := testStorage.UpsertInvitation(ctx, &types.Invitation{
		OrganizationID: org.ID,
		Email:          email,
		Role:           types.RoleAdmin,
		TokenHash:      "hash-2",
		InvitedBy:      "alice",
		SentAt:         now,
		ExpiresAt:      now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, inv.ID, reissued.ID)
	require.Nil(t, reissued.AcceptedAt)
	require.Equal(t, types.RoleAdmin, reissued.Role)

	_, err = testStorage.GetInvitationByTokenHash(ctx, "hash-1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = testStorage.GetInvitation(ctx, newOrganization(t).ID, inv.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestIntegrationMembershipOrder(t *testing.T) {
	ctx := context.Background()
	userID := faker.UUIDHyphenated()
	first, second := newOrganization(t), newOrganization(t)
	accepted := time.Now().Add(-time.Hour)

	_, err := testStorage.CreateMembership(ctx, &types.Membership{OrganizationID: second.ID, UserID: userID, Role: types.RoleViewer})
	require.NoError(t, err)

	_, err = testStorage.CreateMembership(ctx, &types.Membership{OrganizationID: first.ID, UserID: userID, Role: types.RoleOwner, AcceptedAt: &accepted})
	require.NoError(t, err)

	_, err = testStorage.CreateMembership(ctx, &types.Membership{OrganizationID: first.ID, UserID: userID, Role: types.RoleOwner})
	require.ErrorIs(t, err, ErrDuplicateKey)

	memberships, err := testStorage.ListMembershipsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)
	require.Equal(t, first.ID, memberships[0].OrganizationID)

	require.NoError(t, testStorage.SoftDeleteOrganization(ctx, first.ID, userID))

	memberships, err = testStorage.ListMembershipsByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	require.Equal(t, second.ID, memberships[0].OrganizationID)
}
