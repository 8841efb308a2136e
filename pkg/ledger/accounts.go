// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"

	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/types"
)

func (s *Service) ListAccounts(ctx context.Context, filter types.InstrumentFilter, includeInactive bool) ([]*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.ListAccounts")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.storage.ListAccounts(ctx, scope(m, includeInactive), filter)
	if err != nil {
		return nil, s.storageError(err, kindAccount, "")
	}

	return accounts, nil
}

func (s *Service) GetAccount(ctx context.Context, id string, includeInactive bool) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.GetAccount")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.GetAccount(ctx, scope(m, includeInactive), id)
	if err != nil {
		return nil, s.storageError(err, kindAccount, id)
	}

	return account, nil
}

func (s *Service) CreateAccount(ctx context.Context, req *AccountRequest) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.CreateAccount")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionCreate)
	if err != nil {
		return nil, err
	}

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.storage.CreateAccount(ctx, m.OrganizationID, m.UserID, req.account())
	if err != nil {
		return nil, s.storageError(err, kindAccount, "")
	}

	s.audit(m, "create", kindAccount, account.ID)

	return account, nil
}

// UpdateAccount edits an account that is not soft-deleted; inactive accounts may be reactivated.
func (s *Service) UpdateAccount(ctx context.Context, id string, req *AccountUpdateRequest) (*types.Account, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.UpdateAccount")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionEdit)
	if err != nil {
		return nil, err
	}

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.storage.UpdateAccount(ctx, scope(m, true), id, req.changes())
	if err != nil {
		return nil, s.storageError(err, kindAccount, id)
	}

	s.audit(m, "update", kindAccount, id)

	return account, nil
}

// DeleteAccount soft-deletes the account, or removes it with its balances when hard is set.
func (s *Service) DeleteAccount(ctx context.Context, id string, hard bool) error {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.DeleteAccount")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionDelete)
	if err != nil {
		return err
	}

	action := "soft_delete"
	if hard {
		action = "hard_delete"
		err = s.storage.HardDeleteAccount(ctx, scope(m, true), id)
	} else {
		err = s.storage.SoftDeleteAccount(ctx, scope(m, true), id, m.UserID)
	}

	if err != nil {
		return s.storageError(err, kindAccount, id)
	}

	s.audit(m, action, kindAccount, id)

	return nil
}
