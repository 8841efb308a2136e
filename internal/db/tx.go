// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const defaultTxTimeout = time.Second * 60

type txContextKey struct{}

var txOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// lazyTx opens the transaction on the first statement, so read-only paths
// wrapped in WithTx never pay for one.
type lazyTx struct {
	db     *sql.DB
	tx     *sql.Tx
	cancel context.CancelFunc

	// err is the begin failure, every later statement in the unit fails with it
	err error

	afterCommit []func()
}

func (lt *lazyTx) get() (TxInterface, error) {
	if lt.tx != nil {
		return lt.tx, nil
	}

	if lt.err != nil {
		return nil, lt.err
	}

	// detached from the request context so a client disconnect cannot roll
	// back a transaction the handler is about to commit
	ctx, cancel := context.WithTimeout(context.Background(), defaultTxTimeout)
	tx, err := lt.db.BeginTx(ctx, txOptions)
	if err != nil {
		cancel()
		lt.err = fmt.Errorf("failed to begin transaction: %w", err)
		return nil, lt.err
	}

	lt.tx = tx
	lt.cancel = cancel

	return tx, nil
}

func (lt *lazyTx) commit() error {
	if lt.err != nil {
		return lt.err
	}

	if lt.tx != nil {
		if err := lt.tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	for _, fn := range lt.afterCommit {
		fn()
	}

	return nil
}

func (lt *lazyTx) rollback() error {
	lt.afterCommit = nil

	if lt.tx == nil {
		return nil
	}

	if err := lt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

func (lt *lazyTx) release() {
	if lt.cancel != nil {
		lt.cancel()
	}
}

func txFromContext(ctx context.Context) *lazyTx {
	lt, _ := ctx.Value(txContextKey{}).(*lazyTx)
	return lt
}

// AfterCommit defers fn until the transaction carried by ctx commits and drops it on rollback.
// Without a transaction in ctx fn runs straight away.
func AfterCommit(ctx context.Context, fn func()) {
	if lt := txFromContext(ctx); lt != nil {
		lt.afterCommit = append(lt.afterCommit, fn)
		return
	}

	fn()
}

// AfterCommit is the method form of the package-level AfterCommit.
func (d *DBClient) AfterCommit(ctx context.Context, fn func()) {
	AfterCommit(ctx, fn)
}

// WithTx runs fn inside one transaction. fn's error rolls it back, otherwise it commits.
// Nested calls join the transaction already carried by ctx, the outermost call owns commit and rollback.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	ctx, span := d.tracer.Start(ctx, "db.DBClient.WithTx")
	defer span.End()

	lt := &lazyTx{db: d.db}
	defer lt.release()

	if err := fn(context.WithValue(ctx, txContextKey{}, lt)); err != nil {
		d.logger.Debugf("rolling back transaction: %v", err)
		if rbErr := lt.rollback(); rbErr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rbErr)
		}
		return err
	}

	return lt.commit()
}

// failedRunner answers every statement with the error that prevented the transaction from starting.
type failedRunner struct {
	err error
}

func (r failedRunner) Exec(string, ...any) (sql.Result, error) { return nil, r.err }

func (r failedRunner) Query(string, ...any) (*sql.Rows, error) { return nil, r.err }

func (r failedRunner) QueryRow(string, ...any) sq.RowScanner { return failedRow{err: r.err} }

func (r failedRunner) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, r.err
}

func (r failedRunner) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, r.err
}

func (r failedRunner) QueryRowContext(context.Context, string, ...any) sq.RowScanner {
	return failedRow{err: r.err}
}

type failedRow struct {
	err error
}

func (r failedRow) Scan(...any) error { return r.err }

var _ sq.RunnerContext = failedRunner{}
