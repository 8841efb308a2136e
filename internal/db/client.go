// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/canonical/finance-tracker/internal/logging"
	"github.com/canonical/finance-tracker/internal/monitoring"
	"github.com/canonical/finance-tracker/internal/tracing"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

type DBClient struct {
	// pool is the native pgx pool, kept so Close can drain it
	pool *pgxpool.Pool
	// db wraps the pool for squirrel and database/sql transactions
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *DBClient) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Statement returns a builder bound to the transaction in ctx, opening it on first use,
// or to the pool when ctx carries none. When the transaction cannot be opened the builder
// fails every statement, it never falls back to autocommit.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	if lt := txFromContext(ctx); lt != nil {
		tx, err := lt.get()
		if err != nil {
			d.logger.Errorf("%v", err)
			return d.builder().RunWith(failedRunner{err: err})
		}

		return d.builder().RunWith(tx)
	}

	return d.builder().RunWith(d.db)
}

// Ping checks the pool can still reach the database.
func (d *DBClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

func (d *DBClient) setAvailability(value float64) {
	if err := d.monitor.SetDependencyAvailability(map[string]string{"component": "postgres"}, value); err != nil {
		d.logger.Debugf("failed to record postgres availability: %v", err)
	}
}

// NewDBClient opens the pgx pool, instruments it when tracing is on and checks connectivity.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	if cfg.TracingEnabled {
		// otelpgx uses the global TracerProvider set up by tracing.NewTracer
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		if err := otelpgx.RecordStats(pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	d := &DBClient{
		pool:    pool,
		db:      stdlib.OpenDBFromPool(pool),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}

	if err := d.db.Ping(); err != nil {
		d.setAvailability(0)
		d.Close()
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}

	d.setAvailability(1)

	return d, nil
}
