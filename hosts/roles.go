// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/kubic-project/caasp-hosts/types"
)

func fqdn(name, domain string) string {
	return name + "." + domain
}

// roleResolver adds the entries of the cluster members to a store.
type roleResolver struct {
	c      Collaborator
	domain string
	// explicit members per role; the membership is queried for missing roles
	members map[types.Role]types.Members
}

// membersOf returns the explicitly given members of role, or queries them with the role selector.
func (r *roleResolver) membersOf(ctx context.Context, role types.Role) (types.Members, error) {
	if m := r.members[role]; len(m) > 0 {
		return m, nil
	}
	m, err := r.c.QueryMembership(ctx, role.Selector())
	if err != nil {
		return nil, fmt.Errorf("querying %s nodes: %w", role, err)
	}
	return m, nil
}

// resolve returns the records of the members of role, in node id order.
// Members without a primary ip are not returned.
func (r *roleResolver) resolve(ctx context.Context, role types.Role) ([]*types.NodeRecord, error) {
	members, err := r.membersOf(ctx, role)
	if err != nil {
		return nil, err
	}

	ids := maps.Keys(members)
	slices.Sort(ids)

	records := make([]*types.NodeRecord, 0, len(ids))
	for _, id := range ids {
		rec := &types.NodeRecord{ID: id, Interfaces: members[id]}

		rec.PrimaryIP, err = r.c.PrimaryIP(ctx, id, rec.Interfaces)
		if err != nil {
			return nil, fmt.Errorf("resolving primary ip of %s: %w", id, err)
		}
		if rec.PrimaryIP == "" {
			log.Debugf("hosts: no primary ip for %s %s node, skipping", role, id)
			continue
		}

		rec.Nodename, err = r.c.Nodename(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolving nodename of %s: %w", id, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// addEntriesFor merges the names of the members of role into h.
func (r *roleResolver) addEntriesFor(ctx context.Context, h *types.HostEntries, role types.Role) error {
	records, err := r.resolve(ctx, role)
	if err != nil {
		return err
	}
	log.Debugf("hosts: %d %s nodes", len(records), role)

	for _, rec := range records {
		h.Merge(rec.PrimaryIP, rec.ID, fqdn(rec.ID, r.domain))
		if rec.Nodename != "" {
			h.Merge(rec.PrimaryIP, rec.Nodename, fqdn(rec.Nodename, r.domain))
		}
	}
	return nil
}

// addEntries merges the entries of every role into h.
// Nodes being added or removed are kept: dropping them would make the
// TLS hostname verification fail while they join or leave the cluster.
func (r *roleResolver) addEntries(ctx context.Context, h *types.HostEntries) error {
	for _, role := range types.Roles {
		if err := r.addEntriesFor(ctx, h, role); err != nil {
			return err
		}
	}
	return nil
}
