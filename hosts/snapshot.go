// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

// StripBlock returns lines without the markers block (markers included).
// Lines are returned untouched when the markers are not set or no block is found.
// An unterminated block is an error: we can't tell where the managed content ends.
func StripBlock(lines []string, m Markers) ([]string, error) {
	if !m.IsSet() {
		return lines, nil
	}

	output := make([]string, 0, len(lines))
	skiplines := false
	for _, line := range lines {
		switch {
		case m.isEnd(line) && skiplines:
			skiplines = false
		case m.isStart(line) || skiplines:
			skiplines = true
		default:
			output = append(output, line)
		}
	}
	if skiplines {
		// if skiplines is not false, we did not find the end
		return lines, fmt.Errorf("unterminated block starting with %q", m.Start)
	}
	return output, nil
}

// stripBlockFile removes the markers block from file.
// The returned error is only meant to be logged.
func stripBlockFile(fs afero.Fs, file string, m Markers) error {
	if !m.IsSet() {
		return nil
	}
	lines, err := ReadLines(fs, file)
	if err != nil {
		return err
	}
	stripped, err := StripBlock(lines, m)
	if err != nil {
		return err
	}
	if len(stripped) == len(lines) {
		return nil
	}
	return utils.WriteFile(fs, file, []byte(SerializeLines(stripped)), 0644)
}

// snapshotCustomEntries seeds the custom entries file with the previous
// hosts file contents on the first run, and then loads it into h.
// When persist is false a missing custom file is not created: the entries
// it would contain are loaded straight from prev.
func snapshotCustomEntries(fs afero.Fs, h *types.HostEntries, hostsFile, customFile string,
	prev []string, m Markers, persist bool,
) error {
	if !utils.PathExists(fs, customFile) && !persist {
		log.Infof("hosts: %s does not exist, using the entries of %s", customFile, hostsFile)
		stripped, err := StripBlock(prev, m)
		if err != nil {
			log.Warnf("could not remove old blocks in %s: %v", hostsFile, err)
		}
		LoadEntries(h, stripped, m)
		return nil
	}

	if !utils.PathExists(fs, customFile) {
		log.Infof("hosts: saving %s in %s", hostsFile, customFile)

		if err := utils.CreateDirectory(fs, filepath.Dir(customFile), 0755); err != nil {
			return fmt.Errorf("%w: %w", caasperrors.ErrRuntime, err)
		}
		if err := utils.WriteFile(fs, customFile, []byte(SerializeLines(prev)), 0644); err != nil {
			return fmt.Errorf("%w: %w", caasperrors.ErrRuntime, err)
		}

		// a block left by a previous generation of this tool is not user content
		if err := stripBlockFile(fs, customFile, m); err != nil {
			log.Warnf("could not remove old blocks in %s: %v", customFile, err)
		}
	}

	if !utils.IsRegularFile(fs, customFile) {
		return fmt.Errorf("%w: %s cannot be loaded: it is not a file", caasperrors.ErrRuntime, customFile)
	}

	log.Infof("hosts: loading entries in %q file", customFile)
	if err := LoadEntriesFile(fs, h, customFile, m); err != nil {
		return fmt.Errorf("%w: %w", caasperrors.ErrRuntime, err)
	}

	log.Debug("hosts: custom /etc/hosts entries:")
	for _, he := range h.Entries(types.IpVersionAny) {
		log.Debugf("hosts:    %s %v", he.IP(), he.Names())
	}
	return nil
}
