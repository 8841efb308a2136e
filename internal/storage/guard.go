// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/finance-tracker/internal/db"
	"github.com/canonical/finance-tracker/internal/types"
)

// protectedColumns are owned by the guard and are dropped from any caller supplied change set.
var protectedColumns = []string{"id", "organization_id", "created_by", "created_at", "updated_at", "deleted_at", "deleted_by"}

// TenantScope is the predicate every tenant-scoped read and write goes through.
// The organization predicate is unconditional, IncludeInactive only relaxes
// the activity and soft-delete ones.
func TenantScope(alias string, scope types.Scope) (sq.And, error) {
	if !validID(scope.OrganizationID) {
		return nil, ErrMissingScope
	}

	col := func(name string) string {
		if alias == "" {
			return name
		}
		return alias + "." + name
	}

	pred := sq.And{sq.Eq{col("organization_id"): scope.OrganizationID}}
	if !scope.IncludeInactive {
		pred = append(pred, sq.Eq{col("deleted_at"): nil}, sq.Eq{col("is_active"): true})
	}

	return pred, nil
}

// instrumentTable is the guard for one tenant-owned table with soft-delete markers.
// Accounts and liabilities share it; only the table name and column set differ.
type instrumentTable[T any] struct {
	name    string
	kind    string
	columns []string
	scan    func(sq.RowScanner) (*T, error)
}

func (t instrumentTable[T]) list(ctx context.Context, s *Storage, scope types.Scope, filter types.InstrumentFilter) ([]*T, error) {
	pred, err := TenantScope("", scope)
	if err != nil {
		return nil, err
	}

	page := db.NewPage(filter.Page, filter.Size)
	query := s.db.Statement(ctx).
		Select(t.columns...).
		From(t.name).
		Where(pred).
		OrderBy("name ASC", "id ASC").
		Limit(page.Size).
		Offset(page.Offset())

	if filter.Type != "" {
		query = query.Where(sq.Eq{"type": filter.Type})
	}

	if filter.Currency != "" {
		query = query.Where(sq.Eq{"currency": filter.Currency})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, classify(err, "failed to list "+t.name)
	}
	defer rows.Close()

	items := make([]*T, 0)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.kind, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// get answers ErrNotFound for rows of other organizations, exactly as for missing rows.
func (t instrumentTable[T]) get(ctx context.Context, s *Storage, scope types.Scope, id string) (*T, error) {
	pred, err := TenantScope("", scope)
	if err != nil {
		return nil, err
	}

	return t.selectOne(ctx, s, id, pred)
}

func (t instrumentTable[T]) selectOne(ctx context.Context, s *Storage, id string, pred sq.Sqlizer) (*T, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}

	item, err := t.scan(
		s.db.Statement(ctx).
			Select(t.columns...).
			From(t.name).
			Where(sq.Eq{"id": id}).
			Where(pred).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to get "+t.kind)
	}

	return item, nil
}

// insert stamps id, organization and creator itself; values must not carry them.
func (t instrumentTable[T]) insert(ctx context.Context, s *Storage, organizationID, actorID string, values map[string]any) (*T, error) {
	if !validID(organizationID) {
		return nil, ErrMissingScope
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s ID: %w", t.kind, err)
	}

	set := withoutProtected(values)
	set["id"] = id.String()
	set["organization_id"] = organizationID
	set["created_by"] = actorID

	item, err := t.scan(
		s.db.Statement(ctx).
			Insert(t.name).
			SetMap(set).
			Suffix("RETURNING " + columns(t.columns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to insert "+t.kind)
	}

	return item, nil
}

// update never touches soft-deleted rows, even when the scope includes inactive ones,
// so that an inactive row can be edited and reactivated but a deleted one stays deleted.
func (t instrumentTable[T]) update(ctx context.Context, s *Storage, scope types.Scope, id string, changes map[string]any) (*T, error) {
	pred, err := TenantScope("", scope)
	if err != nil {
		return nil, err
	}
	pred = append(pred, sq.Eq{"deleted_at": nil})

	if !validID(id) {
		return nil, fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}

	set := withoutProtected(changes)
	if len(set) == 0 {
		return t.selectOne(ctx, s, id, pred)
	}

	item, err := t.scan(
		s.db.Statement(ctx).
			Update(t.name).
			SetMap(set).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": id}).
			Where(pred).
			Suffix("RETURNING " + columns(t.columns)).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, classify(err, "failed to update "+t.kind)
	}

	return item, nil
}

// softDelete marks the row inactive and deleted, attributing it to actorID.
// Rows already deleted are reported as not found.
func (t instrumentTable[T]) softDelete(ctx context.Context, s *Storage, scope types.Scope, id, actorID string) error {
	scope.IncludeInactive = true
	pred, err := TenantScope("", scope)
	if err != nil {
		return err
	}

	if !validID(id) {
		return fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}

	res, err := s.db.Statement(ctx).
		Update(t.name).
		Set("is_active", false).
		Set("deleted_at", sq.Expr("now()")).
		Set("deleted_by", actorID).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		Where(pred).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to soft delete "+t.kind)
	}

	return expectAffected(res, t.kind)
}

// hardDelete physically removes the row, soft-deleted or not; balances follow by cascade.
func (t instrumentTable[T]) hardDelete(ctx context.Context, s *Storage, scope types.Scope, id string) error {
	scope.IncludeInactive = true
	pred, err := TenantScope("", scope)
	if err != nil {
		return err
	}

	if !validID(id) {
		return fmt.Errorf("%s %q: %w", t.kind, id, ErrNotFound)
	}

	res, err := s.db.Statement(ctx).
		Delete(t.name).
		Where(sq.Eq{"id": id}).
		Where(pred).
		ExecContext(ctx)
	if err != nil {
		return classify(err, "failed to delete "+t.kind)
	}

	return expectAffected(res, t.kind)
}

func withoutProtected(values map[string]any) map[string]any {
	set := make(map[string]any, len(values))
	for k, v := range values {
		set[k] = v
	}

	for _, c := range protectedColumns {
		delete(set, c)
	}

	return set
}

func expectAffected(res sql.Result, kind string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", kind, ErrNotFound)
	}

	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func columns(cols []string) string {
	return strings.Join(cols, ", ")
}
