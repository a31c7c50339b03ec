// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package types

// Interfaces maps a network interface name to the addresses configured on it.
type Interfaces map[string][]string

// Members maps a node id to its network interfaces.
type Members map[string]Interfaces

// NodeRecord is a cluster member as seen by the role resolver.
type NodeRecord struct {
	ID         string
	Interfaces Interfaces
	// PrimaryIP and Nodename are empty until resolved.
	PrimaryIP string
	Nodename  string
}

// Role is a node role category. Every node belongs to exactly one category.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
	RoleWorker Role = "worker"
	RoleOther  Role = "other"
)

// Roles lists the categories in the order entries are generated.
var Roles = []Role{RoleAdmin, RoleMaster, RoleWorker, RoleOther}

// Selector returns the compound expression matching the members of the role.
// The "other" selector excludes the labels of every other category.
func (r Role) Selector() string {
	switch r {
	case RoleAdmin:
		return "G@roles:admin"
	case RoleMaster:
		return "G@roles:kube-master"
	case RoleWorker:
		return "G@roles:kube-minion"
	case RoleOther:
		return "not ( P@roles:(admin|ca) or P@roles:kube-(master|minion) )"
	}
	return ""
}
