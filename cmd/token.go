// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

var tokenCredentials struct {
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
}

// tokenCmd fetches a client credentials token to pass to the other commands through --token.
var tokenCmd = &cobra.Command{
	Use:     "token",
	Short:   "Get an access token using the client credentials flow",
	Example: `  app accounts list --token "$(app token --client-id ci --client-secret s --issuer-url https://auth.example.com -o json | jq -r .access_token)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		tokenURL := tokenCredentials.tokenURL
		if tokenURL == "" {
			if tokenCredentials.issuerURL == "" {
				return fmt.Errorf("either --token-url or --issuer-url must be provided")
			}

			provider, err := oidc.NewProvider(ctx, tokenCredentials.issuerURL)
			if err != nil {
				return fmt.Errorf("failed to discover the token endpoint: %v", err)
			}
			tokenURL = provider.Endpoint().TokenURL
		}

		config := &clientcredentials.Config{
			ClientID:     tokenCredentials.clientID,
			ClientSecret: tokenCredentials.clientSecret,
			TokenURL:     tokenURL,
			Scopes:       tokenCredentials.scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %v", err)
		}

		result := map[string]any{
			"access_token": token.AccessToken,
			"token_type":   token.Type(),
			"expires_at":   token.Expiry.Format(time.RFC3339),
		}

		return printResult(cmd.OutOrStdout(), result, "ACCESS TOKEN\tEXPIRES AT", func(w io.Writer) {
			fmt.Fprintf(w, "%s\t%s\n", token.AccessToken, token.Expiry.Format(time.RFC3339))
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenCredentials.clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&tokenCredentials.clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenCredentials.tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&tokenCredentials.issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSliceVar(&tokenCredentials.scopes, "scopes", []string{}, "Scopes (comma-separated)")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
	tokenCmd.MarkFlagsOneRequired("token-url", "issuer-url")
}
