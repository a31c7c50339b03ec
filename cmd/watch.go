// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/utils"
)

func watchCmd(o *Options) *cobra.Command {
	c := &cobra.Command{
		Use:   "watch",
		Short: "reconcile the hosts file every time the inventory or the custom entries change",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return watchFn(cobraCmd.Context(), o)
		},
	}

	addReconcileFlags(c, o.Reconcile)
	c.Flags().BoolVarP(&o.Reconcile.AtomicWrite, "atomic", "", o.Reconcile.AtomicWrite,
		"write the hosts file through a temporary file and a rename")
	c.Flags().DurationVarP(&o.Watch.Debounce, "debounce", "", o.Watch.Debounce,
		"time to wait for further changes before reconciling")

	return c
}

// watchedFiles returns the absolute paths of the files triggering a reconciliation.
func (o *Options) watchedFiles() ([]string, error) {
	var files []string
	for _, f := range []string{o.Global.InventoryFile, o.Reconcile.CustomHostsFile} {
		if f == "" {
			continue
		}
		f, err := utils.ExpandHome(f)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}

// reconcileOnce runs a reconciliation, logging instead of returning failures.
func (o *Options) reconcileOnce(ctx context.Context) {
	r, err := o.newReconciler()
	if err != nil {
		log.Errorf("watch: %v", err)
		return
	}
	changes, err := r.Reconcile(ctx)
	if err != nil {
		log.Errorf("watch: %v", err)
		return
	}
	if changes.Changed() {
		log.Debugf("watch: changes\n%s", changes)
	}
}

// watchedEvent tells if ev changes the content of one of files.
// Attribute only changes are ignored.
func watchedEvent(files []string, ev fsnotify.Event) bool {
	if !slices.Contains(files, ev.Name) {
		return false
	}
	return !ev.Op.Has(fsnotify.Chmod) || ev.Op.Has(fsnotify.Write)
}

// watchFn reconciles once and then on every change of the watched files.
// Runs happen one at a time on the calling goroutine.
func watchFn(ctx context.Context, o *Options) error {
	files, err := o.watchedFiles()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: could not create file watcher: %w", caasperrors.ErrRuntime, err)
	}
	defer watcher.Close()

	// watch the parent directories, editors usually replace files instead of writing them
	dirs := map[string]struct{}{}
	for _, f := range files {
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for _, d := range maps.Keys(dirs) {
		// the custom entries directory may not exist yet on a fresh node
		if err := utils.CreateDirectory(appFs, d, 0755); err != nil {
			return fmt.Errorf("%w: %w", caasperrors.ErrRuntime, err)
		}
		if err := watcher.Add(d); err != nil {
			return fmt.Errorf("%w: could not watch %s: %w", caasperrors.ErrRuntime, d, err)
		}
		log.Debugf("watch: watching %s", d)
	}

	o.reconcileOnce(ctx)

	timer := time.NewTimer(o.Watch.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("watch: stopping")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchedEvent(files, ev) {
				continue
			}
			log.Debugf("watch: %s", ev)
			timer.Reset(o.Watch.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch: %v", err)
		case <-timer.C:
			o.reconcileOnce(ctx)
		}
	}
}
