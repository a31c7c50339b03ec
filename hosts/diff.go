// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/exp/slices"
)

// ChangeSet is the unified diff of a hosts file rewrite, one element per line.
// It is empty when the content did not change.
type ChangeSet []string

// Changed returns true when the diff is not empty.
func (c ChangeSet) Changed() bool { return len(c) > 0 }

// Added returns the number of added lines.
func (c ChangeSet) Added() int { return c.count('+') }

// Removed returns the number of removed lines.
func (c ChangeSet) Removed() int { return c.count('-') }

func (c ChangeSet) count(prefix byte) int {
	n := 0
	for i, l := range c {
		// file headers
		if i < 2 && (strings.HasPrefix(l, "--- ") || strings.HasPrefix(l, "+++ ")) {
			continue
		}
		if len(l) > 0 && l[0] == prefix {
			n++
		}
	}
	return n
}

func (c ChangeSet) String() string {
	return strings.Join(c, "\n")
}

// Diff computes the unified diff between the previous and the new lines of file.
func Diff(file string, prev, next []string) (ChangeSet, error) {
	if slices.Equal(prev, next) {
		return ChangeSet{}, nil
	}

	// difflib expects newline terminated lines
	terminated := func(lines []string) []string {
		res := make([]string, len(lines))
		for i, l := range lines {
			res[i] = l + "\n"
		}
		return res
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(prev),
		B:        terminated(next),
		FromFile: file,
		ToFile:   file,
		Context:  3,
	})
	if err != nil {
		return nil, err
	}

	return ChangeSet(strings.Split(strings.TrimSuffix(text, "\n"), "\n")), nil
}
