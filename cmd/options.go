// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/kubic-project/caasp-hosts/constants"
	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/hosts"
	"github.com/kubic-project/caasp-hosts/inventory"
	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

const (
	defaultInventoryFile = "/etc/caasp/inventory.yaml"
	defaultDebounce      = 2 * time.Second
)

var optionsInstance *Options //nolint:gochecknoglobals

// GetOptions returns the global options instance if it exists
// or creates a new one with default values for all options.
func GetOptions() *Options {
	if optionsInstance == nil {
		optionsInstance = &Options{
			Global: &GlobalOptions{
				InventoryFile: defaultInventoryFile,
				LogLevel:      "info",
			},
			Reconcile: &ReconcileOptions{
				HostsFile:       constants.HostsFile,
				CustomHostsFile: constants.CustomHostsFile,
			},
			Render: &RenderOptions{
				Format:    constants.FormatPlain,
				IpVersion: string(types.IpVersionAny),
			},
			Watch: &WatchOptions{
				Debounce: defaultDebounce,
			},
		}
	}

	return optionsInstance
}

type Options struct {
	Global    *GlobalOptions
	Reconcile *ReconcileOptions
	Render    *RenderOptions
	Watch     *WatchOptions
}

type GlobalOptions struct {
	InventoryFile string
	EnvFile       string
	ConfigFile    string
	LogLevel      string
	DebugCount    int
}

type ReconcileOptions struct {
	HostsFile       string
	CustomHostsFile string
	MarkerStart     string
	MarkerEnd       string
	// Append entries in the "ip=name1,name2" form.
	Append      []string
	AdminNodes  []string
	MasterNodes []string
	WorkerNodes []string
	OtherNodes  []string
	AtomicWrite bool
	DryRun      bool
}

type RenderOptions struct {
	Format    string
	IpVersion string
}

type WatchOptions struct {
	Debounce time.Duration
}

// parseAppend converts "ip=name1,name2" items in an ip -> names map.
func parseAppend(items []string) (map[string][]string, error) {
	res := make(map[string][]string, len(items))
	for _, item := range items {
		ip, names, ok := strings.Cut(item, "=")
		ip = strings.TrimSpace(ip)
		if !ok || ip == "" {
			return nil, fmt.Errorf("%w: append entry %q is not in the ip=name[,name...] form",
				caasperrors.ErrIncorrectInput, item)
		}
		for _, n := range strings.Split(names, ",") {
			res[ip] = append(res[ip], strings.TrimSpace(n))
		}
	}
	return res, nil
}

// loadCluster reads the inventory file.
func (o *GlobalOptions) loadCluster() (*inventory.Cluster, error) {
	if o.InventoryFile == "" {
		return nil, fmt.Errorf("%w: no inventory file", caasperrors.ErrConfig)
	}
	file, err := utils.ExpandHome(o.InventoryFile)
	if err != nil {
		return nil, err
	}
	inv, err := inventory.Load(appFs, file)
	if err != nil {
		return nil, err
	}
	return inventory.NewCluster(inv), nil
}

func (o *ReconcileOptions) toReconcilerOptions(c *inventory.Cluster) ([]hosts.ReconcilerOption, error) {
	hostsFile, err := utils.ExpandHome(o.HostsFile)
	if err != nil {
		return nil, err
	}
	customFile, err := utils.ExpandHome(o.CustomHostsFile)
	if err != nil {
		return nil, err
	}
	appended, err := parseAppend(o.Append)
	if err != nil {
		return nil, err
	}

	options := []hosts.ReconcilerOption{
		hosts.WithFs(appFs),
		hosts.WithHostsFile(hostsFile),
		hosts.WithCustomHostsFile(customFile),
		hosts.WithMarkers(o.MarkerStart, o.MarkerEnd),
		hosts.WithAppend(appended),
		hosts.WithAtomicWrite(o.AtomicWrite),
		hosts.WithDryRun(o.DryRun),
	}

	explicit := map[types.Role][]string{
		types.RoleAdmin:  o.AdminNodes,
		types.RoleMaster: o.MasterNodes,
		types.RoleWorker: o.WorkerNodes,
		types.RoleOther:  o.OtherNodes,
	}
	for _, role := range types.Roles {
		if ids := explicit[role]; len(ids) > 0 {
			options = append(options, hosts.WithMembers(role, c.Members(ids)))
		}
	}

	return options, nil
}

// newReconciler builds a Reconciler from the options, loading a fresh inventory.
func (o *Options) newReconciler() (*hosts.Reconciler, error) {
	c, err := o.Global.loadCluster()
	if err != nil {
		return nil, err
	}
	options, err := o.Reconcile.toReconcilerOptions(c)
	if err != nil {
		return nil, err
	}
	return hosts.NewReconciler(c, options...), nil
}
