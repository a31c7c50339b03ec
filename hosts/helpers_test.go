package hosts

import (
	"context"

	"github.com/kubic-project/caasp-hosts/types"
)

// fakeCollaborator serves a static cluster state.
type fakeCollaborator struct {
	domain       string
	externalFQDN string
	roles        []string
	hostname     string
	// members by role
	members   map[types.Role]types.Members
	ips       map[string]string
	nodenames map[string]string

	queryErr  error
	grainsErr error
	queries   []string
}

func (f *fakeCollaborator) InfraDomain(context.Context) (string, error) {
	return f.domain, nil
}

func (f *fakeCollaborator) ExternalFQDN(context.Context) (string, error) {
	return f.externalFQDN, nil
}

func (f *fakeCollaborator) GrainStrings(_ context.Context, _ string) ([]string, error) {
	return f.roles, f.grainsErr
}

func (f *fakeCollaborator) GrainString(_ context.Context, _, def string) (string, error) {
	if f.hostname == "" {
		return def, nil
	}
	return f.hostname, nil
}

func (f *fakeCollaborator) QueryMembership(_ context.Context, selector string) (types.Members, error) {
	f.queries = append(f.queries, selector)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	for _, r := range types.Roles {
		if r.Selector() == selector {
			return f.members[r], nil
		}
	}
	return nil, nil
}

func (f *fakeCollaborator) PrimaryIP(_ context.Context, id string, _ types.Interfaces) (string, error) {
	return f.ips[id], nil
}

func (f *fakeCollaborator) Nodename(_ context.Context, id string) (string, error) {
	return f.nodenames[id], nil
}
