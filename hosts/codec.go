// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

// Markers delimit a block of lines managed by some other tool.
// Lines are matched by prefix. An empty marker never matches.
type Markers struct {
	Start string
	End   string
}

// IsSet returns true when both markers are defined.
func (m Markers) IsSet() bool {
	return m.Start != "" && m.End != ""
}

func (m Markers) isStart(line string) bool {
	return m.Start != "" && strings.HasPrefix(line, m.Start)
}

func (m Markers) isEnd(line string) bool {
	return m.End != "" && strings.HasPrefix(line, m.End)
}

// ParseLines splits text in trimmed lines, dropping the trailing empty ones.
func ParseLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ReadLines loads file and parses it with ParseLines.
func ReadLines(fs afero.Fs, file string) ([]string, error) {
	log.Debugf("hosts: loading %s", file)
	b, err := utils.ReadFileContent(fs, file)
	if err != nil {
		return nil, err
	}
	lines := ParseLines(string(b))
	log.Debugf("hosts: %d lines loaded from %s", len(lines), file)
	return lines, nil
}

// SerializeLines joins lines with newlines. The result ends with an empty line,
// as some consumers of /etc/hosts break when the last line isn't terminated.
func SerializeLines(lines []string) string {
	sb := strings.Builder{}
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

type blockState int

const (
	stateNormal blockState = iota
	stateBlocked
)

// lineKind classifies a line given the current state.
type lineKind int

const (
	lineSkip lineKind = iota
	lineBlockStart
	lineBlockEnd
	lineEntry
)

// classify returns the kind of line and the state after it.
// Markers are checked before comments since they usually are comments themselves.
func (s blockState) classify(line string, m Markers) (lineKind, blockState) {
	switch {
	case line == "":
		return lineSkip, s
	case m.isStart(line):
		return lineBlockStart, stateBlocked
	case m.isEnd(line):
		return lineBlockEnd, stateNormal
	case strings.HasPrefix(line, "#"):
		return lineSkip, s
	case s == stateBlocked:
		return lineSkip, s
	}
	return lineEntry, s
}

// LoadEntries merges the entries found in lines into h. Lines inside a
// markers block, blank lines and comments are ignored.
func LoadEntries(h *types.HostEntries, lines []string, m Markers) {
	state := stateNormal
	for _, line := range lines {
		var kind lineKind
		line = strings.TrimSpace(line)
		kind, state = state.classify(line, m)

		switch kind {
		case lineBlockStart:
			log.Debug("hosts: start of skipped block")
		case lineBlockEnd:
			log.Debug("hosts: end of skipped block")
		case lineEntry:
			if i := strings.Index(line, "#"); i >= 0 {
				line = strings.TrimSpace(line[:i])
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			h.Merge(fields[0], fields[1:]...)
		}
	}
}

// LoadEntriesFile merges the entries of file into h.
func LoadEntriesFile(fs afero.Fs, h *types.HostEntries, file string, m Markers) error {
	lines, err := ReadLines(fs, file)
	if err != nil {
		return err
	}
	LoadEntries(h, lines, m)
	return nil
}
