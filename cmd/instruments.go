// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/ledger"
)

// instrumentResource describes how one kind of instrument is rendered and built from flags.
type instrumentResource[T any] struct {
	name   string
	path   string
	header string
	row    func(T) string

	flags     func(*pflag.FlagSet)
	newCreate func(*pflag.FlagSet) (any, error)
	newUpdate func(*pflag.FlagSet) (any, error)
}

func (res instrumentResource[T]) command() *cobra.Command {
	root := &cobra.Command{
		Use:   res.path,
		Short: fmt.Sprintf("Manage %s", res.path),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s of the current organization", res.path),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for _, name := range []string{"type", "currency", "page", "size"} {
				if v, _ := cmd.Flags().GetString(name); v != "" {
					q.Set(name, v)
				}
			}
			if inactive, _ := cmd.Flags().GetBool("include-inactive"); inactive {
				q.Set("include_inactive", "true")
			}

			var items []T
			meta, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/"+res.path, q, nil, &items)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", res.path, err)
			}

			if err := res.print(cmd.OutOrStdout(), items); err != nil {
				return err
			}
			if meta != nil && outputFormat != "json" {
				fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d shown\n", meta.Page, meta.Total)
			}
			return nil
		},
	}
	list.Flags().String("type", "", "Filter by type")
	list.Flags().String("currency", "", "Filter by currency")
	list.Flags().String("page", "", "Page number")
	list.Flags().String("size", "", "Page size")
	list.Flags().Bool("include-inactive", false, "Include inactive records")

	get := &cobra.Command{
		Use:   "get [id]",
		Short: fmt.Sprintf("Show one %s", res.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if inactive, _ := cmd.Flags().GetBool("include-inactive"); inactive {
				q.Set("include_inactive", "true")
			}

			item := new(T)
			if _, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/"+res.path+"/"+args[0], q, nil, item); err != nil {
				return fmt.Errorf("failed to get %s: %w", res.name, err)
			}

			return res.print(cmd.OutOrStdout(), []T{*item})
		},
	}
	get.Flags().Bool("include-inactive", false, "Allow inactive records")

	create := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s", res.name),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := res.newCreate(cmd.Flags())
			if err != nil {
				return err
			}

			item := new(T)
			if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/"+res.path, nil, req, item); err != nil {
				return fmt.Errorf("failed to create %s: %w", res.name, err)
			}

			return res.print(cmd.OutOrStdout(), []T{*item})
		},
	}
	res.flags(create.Flags())

	update := &cobra.Command{
		Use:   "update [id]",
		Short: fmt.Sprintf("Update fields of a %s, only the flags given are changed", res.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := res.newUpdate(cmd.Flags())
			if err != nil {
				return err
			}

			item := new(T)
			if _, err := newAPIClient().do(cmd.Context(), http.MethodPatch, "/"+res.path+"/"+args[0], nil, req, item); err != nil {
				return fmt.Errorf("failed to update %s: %w", res.name, err)
			}

			return res.print(cmd.OutOrStdout(), []T{*item})
		},
	}
	res.flags(update.Flags())
	update.Flags().Bool("active", true, "Mark the record active or inactive")

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: fmt.Sprintf("Delete a %s, soft by default", res.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if hard, _ := cmd.Flags().GetBool("hard"); hard {
				q.Set("hard", "true")
			}

			if _, err := newAPIClient().do(cmd.Context(), http.MethodDelete, "/"+res.path+"/"+args[0], q, nil, nil); err != nil {
				return fmt.Errorf("failed to delete %s: %w", res.name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", res.name, args[0])
			return nil
		},
	}
	del.Flags().Bool("hard", false, "Remove the row permanently")

	root.AddCommand(list, get, create, update, del)

	return root
}

func (res instrumentResource[T]) print(out io.Writer, items []T) error {
	return printResult(out, items, res.header, func(w io.Writer) {
		for _, item := range items {
			fmt.Fprintln(w, res.row(item))
		}
	})
}

func instrumentFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Display name")
	flags.String("type", "", "Type")
	flags.String("currency", "", "ISO 4217 currency code")
	flags.String("institution", "", "Institution")
	flags.String("account-number", "", "Account number")
}

// changed returns a pointer to the flag value when the flag was given.
func changed(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedDecimal(flags *pflag.FlagSet, name string) (*decimal.Decimal, error) {
	s := changed(flags, name)
	if s == nil {
		return nil, nil
	}

	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return &d, nil
}

func changedInt16(flags *pflag.FlagSet, name string) (*int16, error) {
	s := changed(flags, name)
	if s == nil {
		return nil, nil
	}

	n, err := strconv.ParseInt(*s, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	v := int16(n)
	return &v, nil
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var accountsResource = instrumentResource[types.Account]{
	name:   "account",
	path:   "accounts",
	header: "ID\tNAME\tTYPE\tCURRENCY\tINSTITUTION\tACTIVE",
	row: func(a types.Account) string {
		return fmt.Sprintf("%s\t%s\t%s\t%s\t%v\t%v", a.ID, a.Name, a.Type, a.Currency, deref(a.Institution), a.IsActive)
	},
	flags: instrumentFlags,
	newCreate: func(flags *pflag.FlagSet) (any, error) {
		return &ledger.AccountRequest{
			Name:          value(changed(flags, "name")),
			Type:          value(changed(flags, "type")),
			Currency:      value(changed(flags, "currency")),
			Institution:   changed(flags, "institution"),
			AccountNumber: changed(flags, "account-number"),
		}, nil
	},
	newUpdate: func(flags *pflag.FlagSet) (any, error) {
		return &ledger.AccountUpdateRequest{
			Name:          changed(flags, "name"),
			Type:          changed(flags, "type"),
			Currency:      changed(flags, "currency"),
			Institution:   changed(flags, "institution"),
			AccountNumber: changed(flags, "account-number"),
			IsActive:      changedBool(flags, "active"),
		}, nil
	},
}

var liabilitiesResource = instrumentResource[types.Liability]{
	name:   "liability",
	path:   "liabilities",
	header: "ID\tNAME\tTYPE\tCURRENCY\tRATE\tMIN_PAYMENT\tDUE\tACTIVE",
	row: func(l types.Liability) string {
		return fmt.Sprintf("%s\t%s\t%s\t%s\t%v\t%v\t%v\t%v",
			l.ID, l.Name, l.Type, l.Currency, deref(l.InterestRate), deref(l.MinimumPayment), deref(l.DueDate), l.IsActive)
	},
	flags: func(flags *pflag.FlagSet) {
		instrumentFlags(flags)
		flags.String("interest-rate", "", "Annual interest rate in percent")
		flags.String("minimum-payment", "", "Minimum monthly payment")
		flags.String("due-date", "", "Day of month the payment is due")
	},
	newCreate: func(flags *pflag.FlagSet) (any, error) {
		req := &ledger.LiabilityRequest{
			Name:          value(changed(flags, "name")),
			Type:          value(changed(flags, "type")),
			Currency:      value(changed(flags, "currency")),
			Institution:   changed(flags, "institution"),
			AccountNumber: changed(flags, "account-number"),
		}

		var err error
		if req.InterestRate, err = changedDecimal(flags, "interest-rate"); err != nil {
			return nil, err
		}
		if req.MinimumPayment, err = changedDecimal(flags, "minimum-payment"); err != nil {
			return nil, err
		}
		if req.DueDate, err = changedInt16(flags, "due-date"); err != nil {
			return nil, err
		}

		return req, nil
	},
	newUpdate: func(flags *pflag.FlagSet) (any, error) {
		req := &ledger.LiabilityUpdateRequest{
			Name:          changed(flags, "name"),
			Type:          changed(flags, "type"),
			Currency:      changed(flags, "currency"),
			Institution:   changed(flags, "institution"),
			AccountNumber: changed(flags, "account-number"),
			IsActive:      changedBool(flags, "active"),
		}

		var err error
		if req.InterestRate, err = changedDecimal(flags, "interest-rate"); err != nil {
			return nil, err
		}
		if req.MinimumPayment, err = changedDecimal(flags, "minimum-payment"); err != nil {
			return nil, err
		}
		if req.DueDate, err = changedInt16(flags, "due-date"); err != nil {
			return nil, err
		}

		return req, nil
	},
}

func init() {
	rootCmd.AddCommand(accountsResource.command())
	rootCmd.AddCommand(liabilitiesResource.command())
}
