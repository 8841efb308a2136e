// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/types"
)

var balanceColumns = []string{
	"id", "organization_id", "account_id", "liability_id", "date", "amount", "created_by", "created_at", "updated_at",
}

func scanBalance(row sq.RowScanner) (*types.Balance, error) {
	b := new(types.Balance)
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.AccountID, &b.LiabilityID, &b.Date, &b.Amount, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

// balanceScope scopes balances by organization and, unless inactive rows are requested,
// hides balances whose instrument is soft-deleted or inactive. Balances themselves
// carry no soft-delete markers.
func balanceScope(scope types.Scope) (sq.And, error) {
	if !validID(scope.OrganizationID) {
		return nil, ErrMissingScope
	}

	pred := sq.And{sq.Eq{"b.organization_id": scope.OrganizationID}}
	if !scope.IncludeInactive {
		pred = append(pred,
			sq.Expr("COALESCE(a.deleted_at, l.deleted_at) IS NULL"),
			sq.Expr("COALESCE(a.is_active, l.is_active) = true"),
		)
	}

	return pred, nil
}

func (s *Storage) balanceQuery(ctx context.Context, scope types.Scope) (sq.SelectBuilder, error) {
	pred, err := balanceScope(scope)
	if err != nil {
		return sq.SelectBuilder{}, err
	}

	return s.db.Statement(ctx).
		Select(prefixed("b", balanceColumns)...).
		From("balances b").
		LeftJoin("accounts a ON a.id = b.account_id").
		LeftJoin("liabilities l ON l.id = b.liability_id").
		Where(pred), nil
}

func (s *Storage) ListBalances(ctx context.Context, scope types.Scope, filter types.BalanceFilter) ([]*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListBalances")
	defer span.End()

	query, err := s.balanceQuery(ctx, scope)
	if err != nil {
		return nil, err
	}

	if filter.AccountID != "" {
		if !validID(filter.AccountID) {
			return []*types.Balance{}, nil
		}
		query = query.Where(sq.Eq{"b.account_id": filter.AccountID})
	}

	if filter.LiabilityID != "" {
		if !validID(filter.LiabilityID) {
			return []*types.Balance{}, nil
		}
		query = query.Where(sq.Eq{"b.liability_id": filter.LiabilityID})
	}

	if filter.From != nil {
		query = query.Where(sq.GtOrEq{"b.date": *filter.From})
	}

	if filter.To != nil {
		query = query.Where(sq.LtOrEq{"b.date": *filter.To})
	}

	page := db.NewPage(filter.Page, filter.Size)
	rows, err := query.
		OrderBy("b.date DESC", "b.id ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list balances")
	}
	defer rows.Close()

	balances := make([]*types.Balance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return balances, nil
}

func (s *Storage) GetBalance(ctx context.Context, scope types.Scope, id string) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetBalance")
	defer span.End()

	query, err := s.balanceQuery(ctx, scope)
	if err != nil {
		return nil, err
	}

	if !validID(id) {
		return nil, fmt.Errorf("balance %q: %w", id, ErrNotFound)
	}

	b, err := scanBalance(query.Where(sq.Eq{"b.id": id}).QueryRowContext(ctx))
	if err != nil {
		return nil, classify(err, "failed to get balance")
	}

	return b, nil
}

// lockInstruments verifies every id is a live instrument of the organization and holds
// a share lock on it until the surrounding transaction ends, so a concurrent hard
// delete cannot slip in between the check and the write.
func (s *Storage) lockInstruments(ctx context.Context, table, organizationID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !validID(id) {
			return fmt.Errorf("%s %q: %w", table, id, ErrNotFound)
		}
		unique[id] = struct{}{}
	}

	wanted := make([]string, 0, len(unique))
	for id := range unique {
		wanted = append(wanted, id)
	}

	rows, err := s.db.Statement(ctx).
		Select("id").
		From(table).
		Where(sq.Eq{"organization_id": organizationID, "deleted_at": nil, "id": wanted}).
		Suffix("FOR SHARE").
		QueryContext(ctx)
	if err != nil {
		return classify(err, "failed to check "+table)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		found++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}

	if found != len(wanted) {
		return fmt.Errorf("%s outside the organization: %w", table, ErrNotFound)
	}

	return nil
}

func (s *Storage) upsertBalance(ctx context.Context, organizationID, actorID string, accountID, liabilityID *string, date types.Date, amount any) (*types.Balance, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate balance ID: %w", err)
	}

	conflict := "account_id"
	if accountID == nil {
		conflict = "liability_id"
	}

	b, err := scanBalance(
		s.db.Statement(ctx).
			Insert("balances").
			Columns("id", "organization_id", "account_id", "liability_id", "date", "amount", "created_by").
			Values(id.String(), organizationID, accountID, liabilityID, date, amount, actorID).
			Suffix(fmt.Sprintf("ON CONFLICT (%s, date) DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()", conflict)).
			Suffix("RETURNING " + columns(balanceColumns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to upsert balance")
	}

	return b, nil
}

func exactlyOne(accountID, liabilityID *string) bool {
	return (accountID == nil) != (liabilityID == nil)
}

// UpsertBalance writes the snapshot for (instrument, date), updating the amount in place
// when one already exists.
func (s *Storage) UpsertBalance(ctx context.Context, organizationID, actorID string, b *types.Balance) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertBalance")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	if !exactlyOne(b.AccountID, b.LiabilityID) {
		return nil, fmt.Errorf("balance must reference one account or one liability: %w", ErrCheckViolation)
	}

	var out *types.Balance
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if b.AccountID != nil {
			err = s.lockInstruments(ctx, "accounts", organizationID, []string{*b.AccountID})
		} else {
			err = s.lockInstruments(ctx, "liabilities", organizationID, []string{*b.LiabilityID})
		}
		if err != nil {
			return err
		}

		out, err = s.upsertBalance(ctx, organizationID, actorID, b.AccountID, b.LiabilityID, b.Date, b.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// BulkUpsertBalances checks every referenced instrument before writing any entry;
// the whole batch commits or nothing does.
func (s *Storage) BulkUpsertBalances(ctx context.Context, organizationID, actorID string, date types.Date, entries []types.BalanceEntry) ([]*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.BulkUpsertBalances")
	defer span.End()

	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	accountIDs := make([]string, 0, len(entries))
	liabilityIDs := make([]string, 0, len(entries))
	for i, e := range entries {
		if !exactlyOne(e.AccountID, e.LiabilityID) {
			return nil, fmt.Errorf("entry %d must reference one account or one liability: %w", i, ErrCheckViolation)
		}

		if e.AccountID != nil {
			accountIDs = append(accountIDs, *e.AccountID)
		} else {
			liabilityIDs = append(liabilityIDs, *e.LiabilityID)
		}
	}

	out := make([]*types.Balance, 0, len(entries))
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.lockInstruments(ctx, "accounts", organizationID, accountIDs); err != nil {
			return err
		}

		if err := s.lockInstruments(ctx, "liabilities", organizationID, liabilityIDs); err != nil {
			return err
		}

		for _, e := range entries {
			b, err := s.upsertBalance(ctx, organizationID, actorID, e.AccountID, e.LiabilityID, date, e.Amount)
			if err != nil {
				return err
			}
			out = append(out, b)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// UpdateBalance changes amount or date of a visible balance; the instrument reference is fixed.
func (s *Storage) UpdateBalance(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateBalance")
	defer span.End()

	set := withoutProtected(changes)
	delete(set, "account_id")
	delete(set, "liability_id")

	var out *types.Balance
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.GetBalance(ctx, scope, id)
		if err != nil {
			return err
		}

		if len(set) == 0 {
			out = current
			return nil
		}

		out, err = scanBalance(
			s.db.Statement(ctx).
				Update("balances").
				SetMap(set).
				Set("updated_at", sq.Expr("now()")).
				Where(sq.Eq{"id": current.ID, "organization_id": current.OrganizationID}).
				Suffix("RETURNING " + columns(balanceColumns)).
				QueryRowContext(ctx),
		)
		if err != nil {
			return classify(err, "failed to update balance")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DeleteBalance physically removes the balance.
func (s *Storage) DeleteBalance(ctx context.Context, scope types.Scope, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteBalance")
	defer span.End()

	if !validID(scope.OrganizationID) {
		return ErrMissingScope
	}

	if !validID(id) {
		return fmt.Errorf("balance %q: %w", id, ErrNotFound)
	}

	res, err := s.db.Statement(ctx).
		Delete("balances").
		Where(sq.Eq{"id": id, "organization_id": scope.OrganizationID}).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete balance")
	}

	return expectAffected(res, "balance")
}
