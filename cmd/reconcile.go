// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func reconcileCmd(o *Options) *cobra.Command {
	c := &cobra.Command{
		Use:     "reconcile",
		Short:   "update the hosts file with the cluster members",
		Aliases: []string{"rec", "update"},
		Args:    cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return reconcileFn(cobraCmd, o)
		},
	}

	addReconcileFlags(c, o.Reconcile)
	c.Flags().BoolVarP(&o.Reconcile.AtomicWrite, "atomic", "", o.Reconcile.AtomicWrite,
		"write the hosts file through a temporary file and a rename")
	c.Flags().BoolVarP(&o.Reconcile.DryRun, "dry-run", "", o.Reconcile.DryRun,
		"compute and print the changes without writing any file")

	return c
}

// addReconcileFlags registers the flags shared by every command running a reconciliation.
func addReconcileFlags(c *cobra.Command, o *ReconcileOptions) {
	c.Flags().StringVarP(&o.HostsFile, "hosts-file", "", o.HostsFile, "path to the hosts file to manage")
	c.Flags().StringVarP(&o.CustomHostsFile, "custom-file", "", o.CustomHostsFile,
		"path to the file with custom entries, an empty value disables custom entries")
	c.Flags().StringVarP(&o.MarkerStart, "marker-start", "", o.MarkerStart,
		"prefix of the line starting a block that must be ignored")
	c.Flags().StringVarP(&o.MarkerEnd, "marker-end", "", o.MarkerEnd,
		"prefix of the line ending a block that must be ignored")
	c.Flags().StringArrayVarP(&o.Append, "append", "", o.Append,
		"extra entries in the ip=name1,name2 form, can be repeated")
	c.Flags().StringSliceVarP(&o.AdminNodes, "admin", "", o.AdminNodes,
		"comma separated admin node ids, skips the admin membership query")
	c.Flags().StringSliceVarP(&o.MasterNodes, "master", "", o.MasterNodes,
		"comma separated master node ids, skips the master membership query")
	c.Flags().StringSliceVarP(&o.WorkerNodes, "worker", "", o.WorkerNodes,
		"comma separated worker node ids, skips the worker membership query")
	c.Flags().StringSliceVarP(&o.OtherNodes, "other", "", o.OtherNodes,
		"comma separated ids of other nodes, skips the membership query")
}

func reconcileFn(cobraCmd *cobra.Command, o *Options) error {
	r, err := o.newReconciler()
	if err != nil {
		return err
	}

	changes, err := r.Reconcile(cobraCmd.Context())
	if err != nil {
		return err
	}

	if !changes.Changed() {
		log.Infof("%s is up to date", o.Reconcile.HostsFile)
		return nil
	}

	log.Infof("%s: %d entries added, %d removed", o.Reconcile.HostsFile,
		changes.Added(), changes.Removed())
	fmt.Fprintln(cobraCmd.OutOrStdout(), changes.String())

	return nil
}
