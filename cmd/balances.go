// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/ledger"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Manage balance snapshots",
}

var listBalancesCmd = &cobra.Command{
	Use:   "list",
	Short: "List balance snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		for flag, param := range map[string]string{
			"account-id":   "account_id",
			"liability-id": "liability_id",
			"from":         "from",
			"to":           "to",
			"page":         "page",
			"size":         "size",
		} {
			if v, _ := cmd.Flags().GetString(flag); v != "" {
				q.Set(param, v)
			}
		}
		if inactive, _ := cmd.Flags().GetBool("include-inactive"); inactive {
			q.Set("include_inactive", "true")
		}

		var balances []*types.Balance
		if _, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/balances", q, nil, &balances); err != nil {
			return fmt.Errorf("failed to list balances: %w", err)
		}

		return printBalances(cmd.OutOrStdout(), balances)
	},
}

var setBalanceCmd = &cobra.Command{
	Use:   "set",
	Short: "Record the balance of an account or liability on a date, replacing any existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := new(ledger.BalanceRequest)
		req.AccountID = changed(cmd.Flags(), "account-id")
		req.LiabilityID = changed(cmd.Flags(), "liability-id")

		date, _ := cmd.Flags().GetString("date")
		d, err := types.ParseDate(date)
		if err != nil {
			return err
		}
		req.Date = d

		if req.Amount, err = changedDecimal(cmd.Flags(), "amount"); err != nil {
			return err
		}

		balance := new(types.Balance)
		if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/balances", nil, req, balance); err != nil {
			return fmt.Errorf("failed to record balance: %w", err)
		}

		return printBalances(cmd.OutOrStdout(), []*types.Balance{balance})
	},
}

var bulkBalancesCmd = &cobra.Command{
	Use:   "bulk [kind:id=amount]...",
	Short: "Record many balances for one date, e.g. account:<id>=120.50 liability:<id>=900",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		d, err := types.ParseDate(date)
		if err != nil {
			return err
		}

		req := &ledger.BulkBalanceRequest{Date: d}
		for _, arg := range args {
			entry, err := parseBalanceEntry(arg)
			if err != nil {
				return err
			}
			req.Entries = append(req.Entries, entry)
		}

		var balances []*types.Balance
		if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/balances/bulk", nil, req, &balances); err != nil {
			return fmt.Errorf("failed to record balances: %w", err)
		}

		return printBalances(cmd.OutOrStdout(), balances)
	},
}

var deleteBalanceCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a balance snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newAPIClient().do(cmd.Context(), http.MethodDelete, "/balances/"+args[0], nil, nil, nil); err != nil {
			return fmt.Errorf("failed to delete balance: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted balance %s\n", args[0])
		return nil
	},
}

// parseBalanceEntry reads "account:<id>=<amount>" or "liability:<id>=<amount>".
func parseBalanceEntry(arg string) (ledger.BalanceEntryRequest, error) {
	var entry ledger.BalanceEntryRequest

	target, amount, ok := strings.Cut(arg, "=")
	if !ok {
		return entry, fmt.Errorf("invalid entry %q, expected kind:id=amount", arg)
	}

	kind, id, ok := strings.Cut(target, ":")
	if !ok || id == "" {
		return entry, fmt.Errorf("invalid entry %q, expected kind:id=amount", arg)
	}

	switch kind {
	case "account":
		entry.AccountID = &id
	case "liability":
		entry.LiabilityID = &id
	default:
		return entry, fmt.Errorf("invalid entry %q, kind must be account or liability", arg)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return entry, fmt.Errorf("invalid amount in %q: %w", arg, err)
	}
	entry.Amount = &d

	return entry, nil
}

func printBalances(out io.Writer, balances []*types.Balance) error {
	return printResult(out, balances, "ID\tDATE\tINSTRUMENT\tAMOUNT", func(w io.Writer) {
		for _, b := range balances {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.Date, b.InstrumentID(), b.Amount.StringFixed(2))
		}
	})
}

func init() {
	listBalancesCmd.Flags().String("account-id", "", "Only balances of this account")
	listBalancesCmd.Flags().String("liability-id", "", "Only balances of this liability")
	listBalancesCmd.Flags().String("from", "", "First date, inclusive (YYYY-MM-DD)")
	listBalancesCmd.Flags().String("to", "", "Last date, inclusive (YYYY-MM-DD)")
	listBalancesCmd.Flags().String("page", "", "Page number")
	listBalancesCmd.Flags().String("size", "", "Page size")
	listBalancesCmd.Flags().Bool("include-inactive", false, "Include balances of inactive instruments")

	setBalanceCmd.Flags().String("account-id", "", "Account the balance belongs to")
	setBalanceCmd.Flags().String("liability-id", "", "Liability the balance belongs to")
	setBalanceCmd.Flags().String("date", "", "Snapshot date (YYYY-MM-DD)")
	setBalanceCmd.Flags().String("amount", "", "Balance amount")
	setBalanceCmd.MarkFlagsMutuallyExclusive("account-id", "liability-id")
	setBalanceCmd.MarkFlagsOneRequired("account-id", "liability-id")
	_ = setBalanceCmd.MarkFlagRequired("date")
	_ = setBalanceCmd.MarkFlagRequired("amount")

	bulkBalancesCmd.Flags().String("date", "", "Snapshot date (YYYY-MM-DD)")
	_ = bulkBalancesCmd.MarkFlagRequired("date")

	balancesCmd.AddCommand(listBalancesCmd)
	balancesCmd.AddCommand(setBalanceCmd)
	balancesCmd.AddCommand(bulkBalancesCmd)
	balancesCmd.AddCommand(deleteBalanceCmd)

	rootCmd.AddCommand(balancesCmd)
}
