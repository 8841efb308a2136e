// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/tenancy"
)

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Manage organizations",
}

var createOrgCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an organization owned by the calling user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, _ := cmd.Flags().GetString("plan")

		m := new(types.Membership)
		if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/organizations", nil, &tenancy.CreateOrganizationRequest{Name: args[0], Plan: plan}, m); err != nil {
			return fmt.Errorf("failed to create organization: %w", err)
		}

		return printMemberships(cmd.OutOrStdout(), []*types.Membership{m})
	},
}

var showOrgCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current organization and the caller's role",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := new(types.Membership)
		if _, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/organizations/current", nil, nil, m); err != nil {
			return fmt.Errorf("failed to get organization: %w", err)
		}

		return printMemberships(cmd.OutOrStdout(), []*types.Membership{m})
	},
}

var membersOrgCmd = &cobra.Command{
	Use:   "members",
	Short: "List the members of the current organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		var members []*types.Membership
		if _, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/organizations/current/members", nil, nil, &members); err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		return printResult(cmd.OutOrStdout(), members, "USER_ID\tROLE\tINVITED_BY\tJOINED_AT", func(w io.Writer) {
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", m.UserID, m.Role, deref(m.InvitedBy), m.CreatedAt.Format("2006-01-02"))
			}
		})
	},
}

var deleteOrgCmd = &cobra.Command{
	Use:   "delete",
	Short: "Soft delete the current organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newAPIClient().do(cmd.Context(), http.MethodDelete, "/organizations/current", nil, nil, nil); err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Organization deleted")
		return nil
	},
}

func printMemberships(out io.Writer, memberships []*types.Membership) error {
	return printResult(out, memberships, "ORGANIZATION_ID\tNAME\tPLAN\tROLE", func(w io.Writer) {
		for _, m := range memberships {
			name, plan := "-", "-"
			if m.Organization != nil {
				name, plan = m.Organization.Name, m.Organization.Plan
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.OrganizationID, name, plan, m.Role)
		}
	})
}

func init() {
	createOrgCmd.Flags().String("plan", "", "Subscription plan, defaults to FREE")

	orgCmd.AddCommand(createOrgCmd)
	orgCmd.AddCommand(showOrgCmd)
	orgCmd.AddCommand(membersOrgCmd)
	orgCmd.AddCommand(deleteOrgCmd)

	rootCmd.AddCommand(orgCmd)
}
