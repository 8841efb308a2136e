// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/finance-tracker/internal/types"
)

var liabilityColumns = slices.Concat(instrumentColumns, []string{"interest_rate", "minimum_payment", "due_date"})

var liabilities = instrumentTable[types.Liability]{
	name:    "liabilities",
	kind:    "liability",
	columns: liabilityColumns,
	scan: func(row sq.RowScanner) (*types.Liability, error) {
		l := new(types.Liability)
		dest := append(instrumentDest(&l.Instrument), &l.InterestRate, &l.MinimumPayment, &l.DueDate)
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}
		return l, nil
	},
}

func liabilityValues(l *types.Liability) map[string]any {
	values := instrumentValues(&l.Instrument)
	values["interest_rate"] = l.InterestRate
	values["minimum_payment"] = l.MinimumPayment
	values["due_date"] = l.DueDate
	return values
}

func (s *Storage) ListLiabilities(ctx context.Context, scope types.Scope, filter types.InstrumentFilter) ([]*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListLiabilities")
	defer span.End()

	return liabilities.list(ctx, s, scope, filter)
}

func (s *Storage) GetLiability(ctx context.Context, scope types.Scope, id string) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetLiability")
	defer span.End()

	return liabilities.get(ctx, s, scope, id)
}

func (s *Storage) CreateLiability(ctx context.Context, organizationID, actorID string, l *types.Liability) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateLiability")
	defer span.End()

	return liabilities.insert(ctx, s, organizationID, actorID, liabilityValues(l))
}

func (s *Storage) UpdateLiability(ctx context.Context, scope types.Scope, id string, changes map[string]any) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateLiability")
	defer span.End()

	return liabilities.update(ctx, s, scope, id, changes)
}

func (s *Storage) SoftDeleteLiability(ctx context.Context, scope types.Scope, id, actorID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SoftDeleteLiability")
	defer span.End()

	return liabilities.softDelete(ctx, s, scope, id, actorID)
}

func (s *Storage) HardDeleteLiability(ctx context.Context, scope types.Scope, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.HardDeleteLiability")
	defer span.End()

	return liabilities.hardDelete(ctx, s, scope, id)
}
