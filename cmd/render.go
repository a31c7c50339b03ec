// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kubic-project/caasp-hosts/constants"
	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/hosts"
	"github.com/kubic-project/caasp-hosts/types"
)

func renderCmd(o *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "render",
		Short: "print the hosts file that reconcile would write",
		Long: "print the hosts file that reconcile would write\n" +
			"no file is written and the custom entries file is not created",
		Args: cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return renderFn(cobraCmd, o)
		},
	}

	addReconcileFlags(c, o.Reconcile)
	c.Flags().StringVarP(&o.Render.Format, "format", "f", o.Render.Format,
		"output format; one of [plain, table]")
	c.Flags().StringVarP(&o.Render.IpVersion, "ip-version", "", o.Render.IpVersion,
		"only show entries of an ip version; one of [any, 4, 6]")

	return c
}

func renderFn(cobraCmd *cobra.Command, o *Options) error {
	ipv, ok := types.ParseIpVersion(o.Render.IpVersion)
	if !ok {
		return fmt.Errorf("%w: unknown ip version %q", caasperrors.ErrIncorrectInput, o.Render.IpVersion)
	}

	r, err := o.newReconciler()
	if err != nil {
		return err
	}
	// render never touches the file system
	hosts.WithDryRun(true)(r)

	res, err := r.Plan(cobraCmd.Context())
	if err != nil {
		return err
	}

	w := cobraCmd.OutOrStdout()
	switch o.Render.Format {
	case constants.FormatPlain:
		content := res.Content()
		if ipv != types.IpVersionAny {
			content = res.Entries.ToHostsConfig(ipv)
		}
		_, err = io.WriteString(w, content)
		return err
	case constants.FormatTable:
		printEntriesTable(w, res.Entries.Entries(ipv))
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", caasperrors.ErrIncorrectInput, o.Render.Format)
	}
}

func printEntriesTable(w io.Writer, entries []*types.HostEntry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"IP", "Version", "Names"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, e := range entries {
		table.Append([]string{e.IP(), string(e.IpVersion()), strings.Join(e.Names(), "\n")})
	}

	table.Render()
}
