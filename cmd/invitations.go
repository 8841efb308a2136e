// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/internal/types"
	"github.com/canonical/finance-tracker/pkg/invitations"
)

var invitationsCmd = &cobra.Command{
	Use:   "invitations",
	Short: "Manage invitations to the current organization",
}

var listInvitationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List invitations grouped by state",
	RunE: func(cmd *cobra.Command, args []string) error {
		list := new(invitations.List)
		if _, err := newAPIClient().do(cmd.Context(), http.MethodGet, "/invitations", nil, nil, list); err != nil {
			return fmt.Errorf("failed to list invitations: %w", err)
		}

		groups := []struct {
			state types.InvitationState
			items []*types.Invitation
		}{
			{types.InvitationPending, list.Pending},
			{types.InvitationExpired, list.Expired},
			{types.InvitationAccepted, list.Accepted},
			{types.InvitationRevoked, list.Revoked},
		}

		return printResult(cmd.OutOrStdout(), list, "ID\tEMAIL\tROLE\tSTATE\tEXPIRES_AT", func(w io.Writer) {
			for _, g := range groups {
				for _, inv := range g.items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inv.ID, inv.Email, inv.Role, g.state, inv.ExpiresAt.Format(time.RFC3339))
				}
			}
		})
	},
}

var sendInvitationCmd = &cobra.Command{
	Use:   "send [email]",
	Short: "Invite an email address to the current organization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		inv := new(types.Invitation)
		req := &invitations.SendRequest{Email: args[0], Role: types.Role(role)}
		if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/invitations", nil, req, inv); err != nil {
			return fmt.Errorf("failed to send invitation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Invitation %s sent to %s as %s, expires %s\n", inv.ID, inv.Email, inv.Role, inv.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

var revokeInvitationCmd = &cobra.Command{
	Use:   "revoke [id]",
	Short: "Revoke a pending invitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := newAPIClient().do(cmd.Context(), http.MethodDelete, "/invitations/"+args[0], nil, nil, nil); err != nil {
			return fmt.Errorf("failed to revoke invitation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Invitation %s revoked\n", args[0])
		return nil
	},
}

var acceptInvitationCmd = &cobra.Command{
	Use:   "accept [token]",
	Short: "Accept an invitation as the calling user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := new(types.Membership)
		if _, err := newAPIClient().do(cmd.Context(), http.MethodPost, "/invitations/accept", nil, &invitations.AcceptRequest{Token: args[0]}, m); err != nil {
			return fmt.Errorf("failed to accept invitation: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Joined organization %s as %s\n", m.OrganizationID, m.Role)
		return nil
	},
}

func init() {
	sendInvitationCmd.Flags().String("role", "", "Role granted on acceptance, defaults to MEMBER")

	invitationsCmd.AddCommand(listInvitationsCmd)
	invitationsCmd.AddCommand(sendInvitationCmd)
	invitationsCmd.AddCommand(revokeInvitationCmd)
	invitationsCmd.AddCommand(acceptInvitationCmd)

	rootCmd.AddCommand(invitationsCmd)
}
