// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"

	"github.com/canonical/finance-tracker/internal/version"
	"github.com/canonical/finance-tracker/pkg/status"
)

var remoteVersion bool

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get the application's version",
	Long:  `Get the application's version, or with --remote the version of the server at --http-endpoint`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := &status.BuildInfo{Version: version.Version, Name: "cli"}

		if remoteVersion {
			var err error
			if info, err = newAPIClient().serverVersion(cmd.Context()); err != nil {
				return err
			}
		}

		return printResult(cmd.OutOrStdout(), info, "NAME\tVERSION\tCOMMIT", func(w io.Writer) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, info.Version, info.CommitHash)
		})
	},
}

// serverVersion reads the unauthenticated version endpoint, which is not wrapped in the response envelope.
func (c *apiClient) serverVersion(ctx context.Context) (*status.BuildInfo, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+apiPrefix+"/version", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL)
	}

	info := new(status.BuildInfo)
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to decode version: %w", err)
	}

	return info, nil
}

func init() {
	versionCmd.Flags().BoolVar(&remoteVersion, "remote", false, "Ask the server for its version")

	rootCmd.AddCommand(versionCmd)
}
