// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/kubic-project/caasp-hosts/constants"
	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

const preface = `
#
# This file is automatically generated/managed by caasp-hosts
# Please add any custom entries in %s
# Any other modification will be lost...
#
`

// minimal set of entries that will be written in /etc/hosts
const minimalEtcHosts = `
127.0.0.1	localhost

# special IPv6 addresses
::1             localhost ipv6-localhost ipv6-loopback

fe00::0         ipv6-localnet

ff00::0         ipv6-mcastprefix
ff02::1         ipv6-allnodes
ff02::2         ipv6-allrouters
ff02::3         ipv6-allhosts

`

// Reconciler computes the hosts file of a node and writes it.
// A Reconciler is not safe for concurrent use, and two processes
// reconciling the same files must be serialized by the caller.
type Reconciler struct {
	fs         afero.Fs
	c          Collaborator
	hostsFile  string
	customFile string
	markers    Markers
	members    map[types.Role]types.Members
	appended   map[string][]string
	atomic     bool
	dryRun     bool
}

type ReconcilerOption func(r *Reconciler)

// WithFs sets the file system the files are read from and written to.
func WithFs(fs afero.Fs) ReconcilerOption {
	return func(r *Reconciler) {
		r.fs = fs
	}
}

func WithHostsFile(file string) ReconcilerOption {
	return func(r *Reconciler) {
		r.hostsFile = file
	}
}

// WithCustomHostsFile sets the custom entries file. An empty name disables custom entries.
func WithCustomHostsFile(file string) ReconcilerOption {
	return func(r *Reconciler) {
		r.customFile = file
	}
}

func WithMarkers(start, end string) ReconcilerOption {
	return func(r *Reconciler) {
		r.markers = Markers{Start: start, End: end}
	}
}

// WithMembers sets the members of role, bypassing the membership query.
// An empty members set keeps the query.
func WithMembers(role types.Role, members types.Members) ReconcilerOption {
	return func(r *Reconciler) {
		r.members[role] = members
	}
}

// WithAppend adds ip -> names entries to the generated file.
func WithAppend(appended map[string][]string) ReconcilerOption {
	return func(r *Reconciler) {
		for ip, names := range appended {
			r.appended[ip] = append(r.appended[ip], names...)
		}
	}
}

// WithAtomicWrite writes the hosts file through a temporary file renamed over it.
func WithAtomicWrite(a bool) ReconcilerOption {
	return func(r *Reconciler) {
		r.atomic = a
	}
}

// WithDryRun computes the changes without writing any file.
func WithDryRun(d bool) ReconcilerOption {
	return func(r *Reconciler) {
		r.dryRun = d
	}
}

// NewReconciler returns a Reconciler getting the cluster state from c.
func NewReconciler(c Collaborator, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		fs:         afero.NewOsFs(),
		c:          c,
		hostsFile:  constants.HostsFile,
		customFile: constants.CustomHostsFile,
		members:    make(map[types.Role]types.Members),
		appended:   make(map[string][]string),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Result is the outcome of a reconciliation.
type Result struct {
	// Previous holds the lines of the hosts file before the run.
	Previous []string
	// Lines holds the lines of the new hosts file, preface included.
	Lines   []string
	Entries *types.HostEntries
	Changes ChangeSet
	// Written is false for dry runs.
	Written bool
}

// Content returns the new hosts file content.
func (r *Result) Content() string {
	return SerializeLines(r.Lines)
}

// Plan computes the new hosts file without writing it. The custom entries file
// is created on the first run unless the Reconciler runs dry.
func (r *Reconciler) Plan(ctx context.Context) (*Result, error) {
	return r.plan(ctx, log.WithField("run", uuid.NewString()))
}

func (r *Reconciler) plan(ctx context.Context, logger *log.Entry) (*Result, error) {
	if r.hostsFile == "" {
		return nil, fmt.Errorf("%w: could not obtain current hosts file name", caasperrors.ErrConfig)
	}

	domain, err := r.c.InfraDomain(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not get the infrastructure domain: %w", caasperrors.ErrConfig, err)
	}
	if domain == "" {
		return nil, fmt.Errorf("%w: the infrastructure domain is not set", caasperrors.ErrConfig)
	}

	res := &Result{Previous: []string{}, Entries: types.NewHostEntries()}

	// load the current hosts file for calculating differences later on
	if utils.PathExists(r.fs, r.hostsFile) {
		res.Previous, err = ReadLines(r.fs, r.hostsFile)
		if err != nil {
			return nil, err
		}
	}

	LoadEntries(res.Entries, ParseLines(minimalEtcHosts), r.markers)

	if r.customFile != "" {
		err = snapshotCustomEntries(r.fs, res.Entries, r.hostsFile, r.customFile,
			res.Previous, r.markers, !r.dryRun)
		if err != nil {
			return nil, err
		}
	}

	rr := &roleResolver{c: r.c, domain: domain, members: r.members}
	if err := rr.addEntries(ctx, res.Entries); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", caasperrors.ErrRoleResolution, r.hostsFile, err)
	}

	addAppended(res.Entries, r.appended)

	if err := addSpecialEntries(ctx, r.c, res.Entries, domain); err != nil {
		return nil, fmt.Errorf("%w in %s: %w", caasperrors.ErrSpecialEntries, r.hostsFile, err)
	}

	res.Lines = append(ParseLines(fmt.Sprintf(preface, r.customFile)), res.Entries.ToHostsLines()...)

	res.Changes, err = Diff(r.hostsFile, res.Previous, res.Lines)
	if err != nil {
		return nil, err
	}
	logger.Debugf("hosts: %d entries, %d lines added, %d removed",
		res.Entries.Len(), res.Changes.Added(), res.Changes.Removed())

	return res, nil
}

// Reconcile computes the new hosts file and (over)writes it. The returned
// ChangeSet is the unified diff with the previous content, empty when nothing changed.
func (r *Reconciler) Reconcile(ctx context.Context) (ChangeSet, error) {
	res, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}
	return res.Changes, nil
}

// Run is like Reconcile but returns the full Result.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	logger := log.WithField("run", uuid.NewString())

	res, err := r.plan(ctx, logger)
	if err != nil {
		return nil, err
	}
	if r.dryRun {
		logger.Infof("hosts: dry run, not writing %s", r.hostsFile)
		return res, nil
	}

	content := []byte(res.Content())
	logger.Infof("hosts: writing new content to %s (%s)", r.hostsFile, humanize.Bytes(uint64(len(content))))

	write := utils.WriteFile
	if r.atomic {
		write = utils.WriteFileAtomic
	}
	if err := write(r.fs, r.hostsFile, content, 0644); err != nil {
		return nil, fmt.Errorf("%w %s: %w", caasperrors.ErrWrite, r.hostsFile, err)
	}
	res.Written = true

	if res.Changes.Changed() {
		logger.Infof("hosts: %s changed: %d lines added, %d removed",
			r.hostsFile, res.Changes.Added(), res.Changes.Removed())
	}
	return res, nil
}
