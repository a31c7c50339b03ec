// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

//go:generate mockgen -package=mocks -destination=../mocks/mock_collaborator.go -source=collaborator.go

import (
	"context"

	"github.com/kubic-project/caasp-hosts/types"
)

// Collaborator provides the cluster state a reconciliation is computed from:
// the configuration store (pillar), the local node attributes (grains),
// the cluster membership and the network resolution policy.
// Calls are blocking; timeouts and retries are up to the implementation.
type Collaborator interface {
	// InfraDomain returns the internal infrastructure domain used to build FQDNs.
	InfraDomain(ctx context.Context) (string, error)
	// ExternalFQDN returns the external name of the API server, if any.
	ExternalFQDN(ctx context.Context) (string, error)
	// GrainStrings returns a list valued grain of the local node.
	GrainStrings(ctx context.Context, key string) ([]string, error)
	// GrainString returns a string valued grain of the local node, or def when unset.
	GrainString(ctx context.Context, key, def string) (string, error)
	// QueryMembership returns the nodes matching a role selector expression.
	QueryMembership(ctx context.Context, selector string) (types.Members, error)
	// PrimaryIP returns the address representing the node, or "" when none can be chosen.
	PrimaryIP(ctx context.Context, nodeID string, ifaces types.Interfaces) (string, error)
	// Nodename returns the display name of the node, or "" when it has none.
	Nodename(ctx context.Context, nodeID string) (string, error)
}
