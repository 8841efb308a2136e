// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

// printResult writes v as indented JSON when requested, otherwise renders the table.
func printResult(out io.Writer, v any, header string, rows func(w io.Writer)) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)

	return w.Flush()
}

func deref[T any](v *T) any {
	if v == nil {
		return "-"
	}
	return *v
}
