// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// HostEntry is a single hosts file line: an address and the names resolving to it.
// Names are kept sorted, unique and non-empty.
type HostEntry struct {
	ip        string
	names     []string
	ipversion IpVersion
}

func NewHostEntry(ip string, names ...string) *HostEntry {
	return &HostEntry{
		ip:        ip,
		names:     concatNames(nil, names),
		ipversion: IpVersionOf(ip),
	}
}

func (h *HostEntry) IP() string { return h.ip }

func (h *HostEntry) IpVersion() IpVersion { return h.ipversion }

// Names returns a copy of the sorted names of the entry.
func (h *HostEntry) Names() []string {
	return slices.Clone(h.names)
}

func (h *HostEntry) addNames(names []string) {
	h.names = concatNames(h.names, names)
}

// entrySeparator separates the ip from the names, as in the files written by
// earlier releases, so upgraded nodes don't see every line changed.
const entrySeparator = "        "

// ToHostEntryString formats the entry as "<ip>        <name> <name>...".
// An entry without names is rendered as the bare ip.
func (h *HostEntry) ToHostEntryString() string {
	return strings.TrimSpace(h.ip + entrySeparator + strings.Join(h.names, " "))
}

// concatNames joins both lists dropping duplicates and empty names,
// and sorts the result so the rendered file is deterministic.
func concatNames(existing, added []string) []string {
	res := make([]string, 0, len(existing)+len(added))
	for _, n := range existing {
		if n != "" {
			res = append(res, n)
		}
	}
	for _, n := range added {
		if n != "" {
			res = append(res, n)
		}
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// HostEntries is the ordered ip -> names store built during a reconciliation.
// Every ip appears once; entries only accumulate.
type HostEntries struct {
	order   []string
	entries map[string]*HostEntry
}

func NewHostEntries() *HostEntries {
	return &HostEntries{
		entries: make(map[string]*HostEntry),
	}
}

// Merge adds names to the entry of ip, creating the entry when needed.
// The entry is created even when no (non-empty) name is given.
func (h *HostEntries) Merge(ip string, names ...string) {
	he, ok := h.entries[ip]
	if !ok {
		he = NewHostEntry(ip)
		h.entries[ip] = he
		h.order = append(h.order, ip)
	}
	he.addNames(names)
}

// MergeAll merges the same names into every ip of ips.
func (h *HostEntries) MergeAll(ips []string, names ...string) {
	for _, ip := range ips {
		h.Merge(ip, names...)
	}
}

// Get returns the entry for ip.
func (h *HostEntries) Get(ip string) (*HostEntry, bool) {
	he, ok := h.entries[ip]
	return he, ok
}

// IPs returns the addresses in insertion order.
func (h *HostEntries) IPs() []string {
	return slices.Clone(h.order)
}

func (h *HostEntries) Len() int { return len(h.order) }

// Entries returns the entries in insertion order, filtered by ip version.
func (h *HostEntries) Entries(ipv IpVersion) []*HostEntry {
	res := make([]*HostEntry, 0, len(h.order))
	for _, ip := range h.order {
		he := h.entries[ip]
		// any version requested, or the entry matches the requested version
		if ipv != IpVersionAny && ipv != he.ipversion {
			continue
		}
		res = append(res, he)
	}
	return res
}

// ToHostsLines renders all entries, one line per ip, sorted lexically
// by the full line text.
func (h *HostEntries) ToHostsLines() []string {
	return h.hostsLines(IpVersionAny)
}

func (h *HostEntries) hostsLines(ipv IpVersion) []string {
	entries := h.Entries(ipv)
	lines := make([]string, 0, len(entries))
	for _, he := range entries {
		lines = append(lines, he.ToHostEntryString())
	}
	slices.Sort(lines)
	return lines
}

// ToHostsConfig renders the entries of the requested ip version
// as an /etc/hosts compliant text blob.
func (h *HostEntries) ToHostsConfig(ipv IpVersion) string {
	sb := strings.Builder{}
	for _, l := range h.hostsLines(ipv) {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	return sb.String()
}
