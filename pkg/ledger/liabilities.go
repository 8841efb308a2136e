// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ledger

import (
	"context"

	"github.com/canonical/finance-tracker/internal/authorization"
	"github.com/canonical/finance-tracker/internal/types"
)

func (s *Service) ListLiabilities(ctx context.Context, filter types.InstrumentFilter, includeInactive bool) ([]*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.ListLiabilities")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	liabilities, err := s.storage.ListLiabilities(ctx, scope(m, includeInactive), filter)
	if err != nil {
		return nil, s.storageError(err, kindLiability, "")
	}

	return liabilities, nil
}

func (s *Service) GetLiability(ctx context.Context, id string, includeInactive bool) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.GetLiability")
	defer span.End()

	m, err := s.membership(ctx)
	if err != nil {
		return nil, err
	}

	liability, err := s.storage.GetLiability(ctx, scope(m, includeInactive), id)
	if err != nil {
		return nil, s.storageError(err, kindLiability, id)
	}

	return liability, nil
}

func (s *Service) CreateLiability(ctx context.Context, req *LiabilityRequest) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.CreateLiability")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionCreate)
	if err != nil {
		return nil, err
	}

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	liability, err := s.storage.CreateLiability(ctx, m.OrganizationID, m.UserID, req.liability())
	if err != nil {
		return nil, s.storageError(err, kindLiability, "")
	}

	s.audit(m, "create", kindLiability, liability.ID)

	return liability, nil
}

func (s *Service) UpdateLiability(ctx context.Context, id string, req *LiabilityUpdateRequest) (*types.Liability, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.UpdateLiability")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionEdit)
	if err != nil {
		return nil, err
	}

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	liability, err := s.storage.UpdateLiability(ctx, scope(m, true), id, req.changes())
	if err != nil {
		return nil, s.storageError(err, kindLiability, id)
	}

	s.audit(m, "update", kindLiability, id)

	return liability, nil
}

func (s *Service) DeleteLiability(ctx context.Context, id string, hard bool) error {
	ctx, span := s.tracer.Start(ctx, "ledger.Service.DeleteLiability")
	defer span.End()

	m, err := s.authorize(ctx, authorization.ActionDelete)
	if err != nil {
		return err
	}

	action := "soft_delete"
	if hard {
		action = "hard_delete"
		err = s.storage.HardDeleteLiability(ctx, scope(m, true), id)
	} else {
		err = s.storage.SoftDeleteLiability(ctx, scope(m, true), id, m.UserID)
	}

	if err != nil {
		return s.storageError(err, kindLiability, id)
	}

	s.audit(m, action, kindLiability, id)

	return nil
}
