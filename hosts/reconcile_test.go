// Copyright 2020 Nokia
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package hosts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"

	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/types"
)

const testPreface = "\n" +
	"#\n" +
	"# This file is automatically generated/managed by caasp-hosts\n" +
	"# Please add any custom entries in /etc/caasp/hosts\n" +
	"# Any other modification will be lost...\n" +
	"#\n"

func newTestCluster() *fakeCollaborator {
	return &fakeCollaborator{
		domain:       "infra.test",
		externalFQDN: "api.example.com",
		roles:        []string{"kube-master"},
		hostname:     "master1",
		members: map[types.Role]types.Members{
			types.RoleAdmin:  {"admin": {}},
			types.RoleMaster: {"master1": {}},
			types.RoleWorker: {"worker1": {}, "worker2": {}},
		},
		ips: map[string]string{
			"admin":   "10.0.0.1",
			"master1": "10.0.0.2",
			"worker1": "10.0.0.3",
		},
		nodenames: map[string]string{"master1": "m1"},
	}
}

func newTestFs(t *testing.T, hosts string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/etc", 0755))
	if hosts != "" {
		require.NoError(t, afero.WriteFile(fs, "/etc/hosts", []byte(hosts), 0644))
	}
	return fs
}

func names(t *testing.T, res *Result, ip string) []string {
	t.Helper()
	he, ok := res.Entries.Get(ip)
	require.True(t, ok, "no entry for %s", ip)
	return he.Names()
}

func TestReconcile(t *testing.T) {
	fs := newTestFs(t, "127.0.0.1 localhost\n10.1.1.1 custom\n")
	r := NewReconciler(newTestCluster(), WithFs(fs))

	changes, err := r.Reconcile(context.Background())
	require.NoError(t, err)
	assert.True(t, changes.Changed())
	assert.Equal(t, 2, changes.Removed())

	want := testPreface +
		"10.0.0.1        admin admin.infra.test\n" +
		"10.0.0.2        m1 m1.infra.test master1 master1.infra.test\n" +
		"10.0.0.3        worker1 worker1.infra.test\n" +
		"10.1.1.1        custom\n" +
		"127.0.0.1        api api.example.com api.infra.test localhost master1 master1.infra.test\n" +
		"::1        ipv6-localhost ipv6-loopback localhost master1 master1.infra.test\n" +
		"fe00::0        ipv6-localnet\n" +
		"ff00::0        ipv6-mcastprefix\n" +
		"ff02::1        ipv6-allnodes\n" +
		"ff02::2        ipv6-allrouters\n" +
		"ff02::3        ipv6-allhosts\n" +
		"\n"

	got, err := afero.ReadFile(fs, "/etc/hosts")
	require.NoError(t, err)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	custom, err := afero.ReadFile(fs, "/etc/caasp/hosts")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n10.1.1.1 custom\n\n", string(custom))
}

func TestReconcileIdempotent(t *testing.T) {
	fs := newTestFs(t, "127.0.0.1 localhost\n")
	c := newTestCluster()

	_, err := NewReconciler(c, WithFs(fs)).Reconcile(context.Background())
	require.NoError(t, err)
	first, err := afero.ReadFile(fs, "/etc/hosts")
	require.NoError(t, err)

	changes, err := NewReconciler(c, WithFs(fs)).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.False(t, changes.Changed())

	second, err := afero.ReadFile(fs, "/etc/hosts")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestReconcileCustomEntriesSurvive(t *testing.T) {
	fs := newTestFs(t, "127.0.0.1 localhost\n")
	c := newTestCluster()

	_, err := NewReconciler(c, WithFs(fs)).Reconcile(context.Background())
	require.NoError(t, err)

	// the administrator adds an entry to the custom file, and someone edits /etc/hosts
	require.NoError(t, afero.WriteFile(fs, "/etc/caasp/hosts",
		[]byte("127.0.0.1 localhost\n192.168.0.10 nas nas.lan\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/etc/hosts", []byte("10.9.9.9 lost\n"), 0644))

	changes, err := NewReconciler(c, WithFs(fs)).Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changes.Removed())

	got, err := afero.ReadFile(fs, "/etc/hosts")
	require.NoError(t, err)
	assert.Contains(t, string(got), "192.168.0.10        nas nas.lan\n")
	assert.NotContains(t, string(got), "10.9.9.9")
}

func TestReconcileBaseline(t *testing.T) {
	fs := newTestFs(t, "")
	require.NoError(t, afero.WriteFile(fs, "/etc/caasp/hosts", []byte(""), 0644))

	r := NewReconciler(&fakeCollaborator{domain: "infra.test"}, WithFs(fs))
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	// without a local hostname only the bare domain is added
	assert.Equal(t, []string{".infra.test", "ipv6-localhost", "ipv6-loopback", "localhost"}, names(t, res, "::1"))
	assert.Equal(t, []string{".infra.test", "api", "api.infra.test", "localhost"}, names(t, res, "127.0.0.1"))
	assert.True(t, slices.Contains(res.Lines, "::1        .infra.test ipv6-localhost ipv6-loopback localhost"))

	// the previous file did not exist: every line is new
	assert.Equal(t, len(res.Lines), res.Changes.Added())
	assert.Equal(t, 0, res.Changes.Removed())
}

func TestReconcileSpecialEntries(t *testing.T) {
	tests := []struct {
		name         string
		roles        []string
		externalFQDN string
		wantIn       []string
		wantNotIn    []string
	}{
		{
			name:         "admin",
			roles:        []string{"admin"},
			externalFQDN: "api.example.com",
			wantIn:       []string{"ldap.infra.test", "api.example.com", "api", "api.infra.test"},
		},
		{
			name:         "master with an ip as external name",
			roles:        []string{"kube-master"},
			externalFQDN: "192.168.1.1",
			wantNotIn:    []string{"ldap.infra.test", "192.168.1.1"},
		},
		{
			name:         "worker",
			roles:        []string{"kube-minion"},
			externalFQDN: "api.example.com",
			wantIn:       []string{"api", "api.infra.test"},
			wantNotIn:    []string{"ldap.infra.test", "api.example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCollaborator{domain: "infra.test", roles: tt.roles, externalFQDN: tt.externalFQDN}
			r := NewReconciler(c, WithFs(newTestFs(t, "")), WithDryRun(true))

			res, err := r.Run(context.Background())
			require.NoError(t, err)
			assert.False(t, res.Written)

			got := names(t, res, "127.0.0.1")
			for _, n := range tt.wantIn {
				assert.Contains(t, got, n)
			}
			for _, n := range tt.wantNotIn {
				assert.NotContains(t, got, n)
			}
		})
	}
}

func TestReconcileAppendAndMembers(t *testing.T) {
	c := &fakeCollaborator{
		domain: "infra.test",
		ips:    map[string]string{"explicit": "10.0.0.7"},
	}
	fs := newTestFs(t, "")
	r := NewReconciler(c, WithFs(fs),
		WithMembers(types.RoleWorker, types.Members{"explicit": {"eth0": {"10.0.0.7"}}}),
		WithAppend(map[string][]string{"10.0.0.7": {"extra"}, "10.5.5.5": {"b", "a"}}),
	)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"explicit", "explicit.infra.test", "extra"}, names(t, res, "10.0.0.7"))
	assert.Equal(t, []string{"a", "b"}, names(t, res, "10.5.5.5"))
	assert.NotContains(t, c.queries, types.RoleWorker.Selector())
	assert.Len(t, c.queries, 3)
}

func TestReconcileMarkers(t *testing.T) {
	hosts := "10.1.1.1 custom\n" +
		"#-- start managed block\n" +
		"10.0.0.99 stale\n" +
		"#-- end managed block\n"
	fs := newTestFs(t, hosts)

	r := NewReconciler(&fakeCollaborator{domain: "infra.test"}, WithFs(fs),
		WithMarkers(testMarkers.Start, testMarkers.End))
	res, err := r.Run(context.Background())
	require.NoError(t, err)

	_, ok := res.Entries.Get("10.0.0.99")
	assert.False(t, ok)
	assert.Equal(t, []string{"custom"}, names(t, res, "10.1.1.1"))
}

func TestReconcileErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		c       *fakeCollaborator
		opts    []ReconcilerOption
		roFs    bool
		wantErr error
	}{
		{
			name:    "empty infra domain",
			c:       &fakeCollaborator{},
			wantErr: caasperrors.ErrConfig,
		},
		{
			name:    "empty hosts file name",
			c:       &fakeCollaborator{domain: "infra.test"},
			opts:    []ReconcilerOption{WithHostsFile("")},
			wantErr: caasperrors.ErrConfig,
		},
		{
			name:    "membership query failure",
			c:       &fakeCollaborator{domain: "infra.test", queryErr: boom},
			wantErr: caasperrors.ErrRoleResolution,
		},
		{
			name:    "grains failure",
			c:       &fakeCollaborator{domain: "infra.test", grainsErr: boom},
			wantErr: caasperrors.ErrSpecialEntries,
		},
		{
			name:    "read only file system",
			c:       &fakeCollaborator{domain: "infra.test"},
			roFs:    true,
			wantErr: caasperrors.ErrWrite,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const original = "10.1.1.1 custom\n"
			fs := newTestFs(t, original)
			require.NoError(t, afero.WriteFile(fs, "/etc/caasp/hosts", []byte(original), 0644))

			var rfs afero.Fs = fs
			if tt.roFs {
				rfs = afero.NewReadOnlyFs(fs)
			}

			r := NewReconciler(tt.c, append([]ReconcilerOption{WithFs(rfs)}, tt.opts...)...)
			changes, err := r.Reconcile(context.Background())
			require.Error(t, err)
			assert.Nil(t, changes)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.c.queryErr != nil || tt.c.grainsErr != nil {
				assert.True(t, errors.Is(err, boom))
			}

			got, err := afero.ReadFile(fs, "/etc/hosts")
			require.NoError(t, err)
			assert.Equal(t, original, string(got), "hosts file must be left untouched")
		})
	}
}

func TestResultContent(t *testing.T) {
	res := &Result{Lines: []string{"", "#", "10.0.0.1\ta"}}
	assert.True(t, strings.HasSuffix(res.Content(), "10.0.0.1\ta\n\n"))
}
