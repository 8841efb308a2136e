// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"
	"fmt"

	"github.com/canonical/finance-tracker/internal/apperrors"
	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/types"
)

const instrumentMessage = "exactly one of account_id or liability_id is required"

func exactlyOne(accountID, liabilityID *string) bool {
	return (accountID == nil) != (liabilityID == nil)
}

func (s *Service) ListBalances(ctx context.Context, filter types.BalanceFilter, includeInactive bool) ([]*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.ListBalances")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	if filter.From != nil && filter.To != nil && filter.From.After(filter.To.Time) {
		return nil, apperrors.ValidationField("from", "must not be after to")
	}

	balances, err := s.storage.ListBalances(ctx, scope(m, includeInactive), filter)
	if err != nil {
		return nil, s.storageError(err, kindBalance, "")
	}

	return balances, nil
}

func (s *Service) GetBalance(ctx context.Context, id string, includeInactive bool) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.GetBalance")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := s.storage.GetBalance(ctx, scope(m, includeInactive), id)
	if err != nil {
		return nil, s.storageError(err, kindBalance, id)
	}

	return balance, nil
}

// UpsertBalance records the snapshot for (instrument, date), replacing the amount of an existing one.
// The instrument must belong to the caller's organization and must not be soft-deleted.
func (s *Service) UpsertBalance(ctx context.Context, req *BalanceRequest) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.UpsertBalance")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionCreate)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if !exactlyOne(req.AccountID, req.LiabilityID) {
		return nil, apperrors.ValidationField("account_id", instrumentMessage)
	}

	balance, err := s.storage.UpsertBalance(ctx, m.OrganizationID, m.UserID, req.balance())
	if err != nil {
		return nil, s.instrumentError(err, req.AccountID, req.LiabilityID)
	}

	s.audit(m, "upsert", kindBalance, balance.ID)

	return balance, nil
}

// BulkUpsertBalances writes every entry for one date, or none of them.
func (s *Service) BulkUpsertBalances(ctx context.Context, req *BulkBalanceRequest) ([]*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.BulkUpsertBalances")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionCreate)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	for i, e := range req.Entries {
		if !exactlyOne(e.AccountID, e.LiabilityID) {
			fields[fmt.Sprintf("entries[%d].account_id", i)] = instrumentMessage
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	balances, err := s.storage.BulkUpsertBalances(ctx, m.OrganizationID, m.UserID, req.Date, req.entries())
	if err != nil {
		return nil, s.storageError(err, "instrument", "")
	}

	for _, b := range balances {
		s.audit(m, "upsert", kindBalance, b.ID)
	}

	return balances, nil
}

// UpdateBalance changes the amount or date of a balance; its instrument never changes.
func (s *Service) UpdateBalance(ctx context.Context, id string, req *BalanceUpdateRequest) (*types.Balance, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.UpdateBalance")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionEdit)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	balance, err := s.storage.UpdateBalance(ctx, scope(m, false), id, req.changes())
	if err != nil {
		return nil, s.storageError(err, kindBalance, id)
	}

	s.audit(m, "update", kindBalance, id)

	return balance, nil
}

// DeleteBalance removes the balance physically; balances carry no soft-delete markers.
func (s *Service) DeleteBalance(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.DeleteBalance")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteBalance(ctx, scope(m, true), id); err != nil {
		return s.storageError(err, kindBalance, id)
	}

	s.audit(m, "hard_delete", kindBalance, id)

	return nil
}

func (s *Service) instrumentError(err error, accountID, liabilityID *string) error {
	if accountID != nil {
		return s.storageError(err, kindAccount, *accountID)
	}

	return s.storageError(err, kindLiability, *liabilityID)
}
