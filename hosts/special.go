// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/kubic-project/caasp-hosts/constants"
	"github.com/kubic-project/caasp-hosts/types"
	"github.com/kubic-project/caasp-hosts/utils"
)

// addAppended merges the caller supplied ip -> names entries.
func addAppended(h *types.HostEntries, appended map[string][]string) {
	ips := maps.Keys(appended)
	slices.Sort(ips)
	for _, ip := range ips {
		log.Debugf("hosts: adding %s -> %v", ip, appended[ip])
		h.Merge(ip, appended[ip]...)
	}
}

// addSpecialEntries adds the names of the local services: the external api name on
// masters and admins, ldap on the admin, the local hostname and the api server.
// Every item is attempted; the failures are returned together.
func addSpecialEntries(ctx context.Context, c Collaborator, h *types.HostEntries, domain string) error {
	var result *multierror.Error

	roles, err := c.GrainStrings(ctx, constants.GrainRoles)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("getting %q grain: %w", constants.GrainRoles, err))
	}
	isAdmin := slices.Contains(roles, constants.RoleAdmin)
	isMaster := slices.Contains(roles, constants.RoleKubeMaster)

	if isMaster || isAdmin {
		name, err := c.ExternalFQDN(ctx)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("getting external fqdn: %w", err))
		case !utils.IsIPLiteral(name):
			h.Merge(constants.Localhost4, name)
		}
	}

	if isAdmin {
		h.Merge(constants.Localhost4, fqdn("ldap", domain))
	}

	// an empty hostname still adds ".<domain>", as earlier releases did
	hostname, err := c.GrainString(ctx, constants.GrainLocalhost, "")
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("getting %q grain: %w", constants.GrainLocalhost, err))
	} else {
		h.MergeAll([]string{constants.Localhost4, constants.Localhost6}, hostname, fqdn(hostname, domain))
	}

	log.Debugf("hosts: adding entry for the API server at %s", constants.Localhost4)
	h.Merge(constants.Localhost4, "api", fqdn("api", domain))

	return result.ErrorOrNil()
}
