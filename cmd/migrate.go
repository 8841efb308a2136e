// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/migrations"
)

var migrationDSN string

// migrateCmd applies the embedded schema migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|check] [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

"down" without a version rolls back the latest migration, with a version it rolls back
to that version. "check" fails while migrations are pending.`,
	Args: migrateArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) > 0 {
			command = args[0]
		}

		target := int64(-1)
		if len(args) > 1 {
			target, _ = strconv.ParseInt(args[1], 10, 64)
		}

		dsn := migrationDSN
		if dsn == "" {
			dsn = os.Getenv("DSN")
		}
		if dsn == "" {
			return fmt.Errorf("--dsn or the DSN environment variable is required")
		}

		return migrate(cmd.Context(), cmd.OutOrStdout(), dsn, command, target)
	},
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "up", "down", "status", "check":
	default:
		return fmt.Errorf("invalid first argument: %q", args[0])
	}

	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("invalid argument combination: %q", args)
		}

		if v, err := strconv.ParseInt(args[1], 10, 64); err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %q", args[1])
		}
	}

	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrationDSN, "dsn", "", "PostgreSQL DSN connection string, defaults to $DSN")

	rootCmd.AddCommand(migrateCmd)
}

func openMigrationDB(ctx context.Context, dsn string) (*sql.DB, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("DB connection failed: %v", err)
	}

	return db, nil
}

func migrate(ctx context.Context, out io.Writer, dsn, command string, target int64) error {
	db, err := openMigrationDB(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []goose.ProviderOption
	if outputFormat == "json" {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	switch command {
	case "down":
		results, err := migrateDown(ctx, provider, target)
		if err != nil {
			return err
		}
		return printMigrationResults(out, results)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		return printMigrationStatus(out, statuses)
	case "check":
		return checkMigrations(ctx, provider, out)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		return printMigrationResults(out, results)
	}
}

func migrateDown(ctx context.Context, provider *goose.Provider, target int64) ([]*goose.MigrationResult, error) {
	if target >= 0 {
		return provider.DownTo(ctx, target)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return nil, err
	}

	return []*goose.MigrationResult{result}, nil
}

func checkMigrations(ctx context.Context, provider *goose.Provider, out io.Writer) error {
	pending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read the database version: %w", err)
	}

	state := "ok"
	if pending {
		state = "pending"
	}

	if err := printResult(out, map[string]any{"status": state, "version": current}, "STATUS\tVERSION", func(w io.Writer) {
		fmt.Fprintf(w, "%s\t%d\n", state, current)
	}); err != nil {
		return err
	}

	if pending {
		return fmt.Errorf("migrations are pending: current version %d", current)
	}

	return nil
}

func printMigrationResults(out io.Writer, results []*goose.MigrationResult) error {
	if results == nil {
		results = []*goose.MigrationResult{}
	}

	return printResult(out, map[string]any{"applied": results}, "VERSION\tDIRECTION\tDURATION\tMIGRATION", func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.Source.Version, r.Direction, r.Duration.Round(time.Millisecond), r.Source.Path)
		}
	})
}

func printMigrationStatus(out io.Writer, statuses []*goose.MigrationStatus) error {
	return printResult(out, statuses, "APPLIED AT\tMIGRATION", func(w io.Writer) {
		for _, s := range statuses {
			appliedAt := "Pending"
			if s.State == goose.StateApplied {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", appliedAt, s.Source.Path)
		}
	})
}
