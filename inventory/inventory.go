// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

// Package inventory implements the cluster state collaborator on top of a
// static YAML file describing the pillar, the local node grains and the
// cluster nodes.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/a8m/envsubst"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/kubic-project/caasp-hosts/constants"
	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

// Inventory is the content of an inventory file.
type Inventory struct {
	// Pillar holds the cluster configuration. Nested keys are addressed
	// with colon separated paths, e.g. "api:server:external_fqdn".
	Pillar map[string]interface{} `yaml:"pillar,omitempty"`
	// Grains are the attributes of the node running the reconciliation.
	Grains map[string]interface{} `yaml:"grains,omitempty"`
	// LocalNode names the node running the reconciliation. Its grains are used
	// for the keys missing in Grains.
	LocalNode string `yaml:"local_node,omitempty"`
	// PrimaryInterface is the interface the primary ip is taken from when a node
	// doesn't set one.
	PrimaryInterface string  `yaml:"primary_interface,omitempty"`
	Nodes            []*Node `yaml:"nodes,omitempty"`
}

// Node is a cluster member.
type Node struct {
	ID               string                 `yaml:"id"`
	Nodename         string                 `yaml:"nodename,omitempty"`
	Grains           map[string]interface{} `yaml:"grains,omitempty"`
	Interfaces       types.Interfaces       `yaml:"interfaces,omitempty"`
	PrimaryInterface string                 `yaml:"primary_interface,omitempty"`
}

// Parse expands the environment variables in b and decodes the inventory.
// Variables with defaults and unset variables are left untouched.
func Parse(b []byte) (*Inventory, error) {
	expanded, err := envsubst.BytesRestrictedNoReplace(b, false, false, true, true)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{}
	if err := yaml.UnmarshalStrict(expanded, inv); err != nil {
		return nil, fmt.Errorf("%w: %w", caasperrors.ErrIncorrectInput, err)
	}
	return inv, inv.validate()
}

// Load reads and parses the inventory file.
func Load(fs afero.Fs, file string) (*Inventory, error) {
	log.Debugf("inventory: loading %s", file)
	b, err := utils.ReadFileContent(fs, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", caasperrors.ErrFileNotFound, err)
	}
	inv, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("inventory %s: %w", file, err)
	}
	log.Debugf("inventory: %d nodes loaded from %s", len(inv.Nodes), file)
	return inv, nil
}

func (inv *Inventory) validate() error {
	seen := make(map[string]struct{}, len(inv.Nodes))
	for i, n := range inv.Nodes {
		if n == nil || n.ID == "" {
			return fmt.Errorf("%w: node #%d has no id", caasperrors.ErrIncorrectInput, i)
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("%w: duplicate node id %q", caasperrors.ErrIncorrectInput, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	if inv.LocalNode != "" {
		if _, ok := seen[inv.LocalNode]; !ok {
			return fmt.Errorf("%w: local node %q is not in the nodes list",
				caasperrors.ErrIncorrectInput, inv.LocalNode)
		}
	}
	return nil
}

// Cluster serves the content of an Inventory.
type Cluster struct {
	inv   *Inventory
	nodes map[string]*Node

	m         sync.Mutex
	selectors map[string]Matcher
}

// NewCluster returns a Cluster serving inv.
func NewCluster(inv *Inventory) *Cluster {
	c := &Cluster{
		inv:       inv,
		nodes:     make(map[string]*Node, len(inv.Nodes)),
		selectors: make(map[string]Matcher),
	}
	for _, n := range inv.Nodes {
		c.nodes[n.ID] = n
	}
	return c
}

// lookup walks a colon separated path into nested maps.
func lookup(m map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = m
	for _, k := range strings.Split(path, ":") {
		switch mm := cur.(type) {
		case map[string]interface{}:
			v, ok := mm[k]
			if !ok {
				return nil, false
			}
			cur = v
		case map[interface{}]interface{}:
			v, ok := mm[k]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func toStrings(v interface{}) []string {
	switch s := v.(type) {
	case nil:
		return nil
	case []string:
		return s
	case []interface{}:
		res := make([]string, 0, len(s))
		for _, e := range s {
			res = append(res, toString(e))
		}
		return res
	default:
		return []string{toString(s)}
	}
}

func (c *Cluster) pillar(key string) (string, bool) {
	v, ok := lookup(c.inv.Pillar, key)
	return toString(v), ok
}

func (c *Cluster) grain(key string) (interface{}, bool) {
	if v, ok := lookup(c.inv.Grains, key); ok {
		return v, true
	}
	if n, ok := c.nodes[c.inv.LocalNode]; ok {
		if key == constants.GrainLocalhost {
			return n.ID, true
		}
		return lookup(n.Grains, key)
	}
	return nil, false
}

func (c *Cluster) InfraDomain(context.Context) (string, error) {
	if d, ok := c.pillar(constants.PillarInternalInfra); ok {
		return d, nil
	}
	return constants.DefaultInfraDomain, nil
}

func (c *Cluster) ExternalFQDN(context.Context) (string, error) {
	d, _ := c.pillar(constants.PillarExternalFQDN)
	return d, nil
}

func (c *Cluster) GrainStrings(_ context.Context, key string) ([]string, error) {
	v, _ := c.grain(key)
	return toStrings(v), nil
}

func (c *Cluster) GrainString(_ context.Context, key, def string) (string, error) {
	v, ok := c.grain(key)
	if !ok {
		return def, nil
	}
	return toString(v), nil
}

func (c *Cluster) matcher(selector string) (Matcher, error) {
	c.m.Lock()
	defer c.m.Unlock()

	if m, ok := c.selectors[selector]; ok {
		return m, nil
	}
	m, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	c.selectors[selector] = m
	return m, nil
}

// QueryMembership returns the nodes matching the compound selector.
func (c *Cluster) QueryMembership(_ context.Context, selector string) (types.Members, error) {
	m, err := c.matcher(selector)
	if err != nil {
		return nil, err
	}
	res := types.Members{}
	for _, n := range c.inv.Nodes {
		if m.Match(n.ID, n.Grains) {
			res[n.ID] = n.Interfaces
		}
	}
	log.Debugf("inventory: %q matches %d nodes", selector, len(res))
	return res, nil
}

// PrimaryIP picks the primary address of a node among ifaces.
func (c *Cluster) PrimaryIP(_ context.Context, nodeID string, ifaces types.Interfaces) (string, error) {
	preferred := c.inv.PrimaryInterface
	if n, ok := c.nodes[nodeID]; ok && n.PrimaryInterface != "" {
		preferred = n.PrimaryInterface
	}
	return PrimaryIP(ifaces, preferred), nil
}

// Nodename returns the nodename of the node, falling back to its "nodename" grain.
func (c *Cluster) Nodename(_ context.Context, nodeID string) (string, error) {
	n, ok := c.nodes[nodeID]
	if !ok {
		return "", nil
	}
	if n.Nodename != "" {
		return n.Nodename, nil
	}
	v, _ := lookup(n.Grains, constants.GrainNodename)
	return toString(v), nil
}

// Members returns the given nodes with their interfaces.
// Unknown nodes are returned without interfaces.
func (c *Cluster) Members(ids []string) types.Members {
	res := make(types.Members, len(ids))
	for _, id := range ids {
		if n, ok := c.nodes[id]; ok {
			res[id] = n.Interfaces
			continue
		}
		log.Warnf("inventory: node %q is not in the inventory", id)
		res[id] = nil
	}
	return res
}
