// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version variables set at build time (e.g., with -ldflags).
var (
	Version = "0.0.0"
	commit  = "none"
	date    = "unknown"
)

const repoUrl = "https://github.com/kubic-project/caasp-hosts"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "show caasp-hosts version",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			w := cobraCmd.OutOrStdout()
			fmt.Fprintf(w, "    version: %s\n", Version)
			fmt.Fprintf(w, "     commit: %s\n", commit)
			fmt.Fprintf(w, "       date: %s\n", date)
			fmt.Fprintf(w, "     source: %s\n", repoUrl)
			return nil
		},
	}
}
