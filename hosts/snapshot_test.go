package hosts

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caasperrors "github.com/kubic-project/caasp-hosts/errors"
	"github.com/kubic-project/caasp-hosts/types"
)

var testMarkers = Markers{Start: "#-- start managed block", End: "#-- end managed block"}

func TestSnapshotCustomEntriesFirstRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	prev := []string{
		"127.0.0.1 localhost",
		"10.1.1.1 custom",
		"#-- start managed block",
		"10.0.0.1 old-node",
		"#-- end managed block",
	}

	h := types.NewHostEntries()
	err := snapshotCustomEntries(fs, h, "/etc/hosts", "/etc/caasp/hosts", prev, testMarkers, true)
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/etc/caasp/hosts")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1 localhost\n10.1.1.1 custom\n\n", string(content))

	assert.Equal(t, []string{"127.0.0.1", "10.1.1.1"}, h.IPs())
}

func TestSnapshotCustomEntriesUnterminatedBlock(t *testing.T) {
	fs := afero.NewMemMapFs()
	prev := []string{"10.1.1.1 custom", "#-- start managed block", "10.0.0.1 old-node"}

	h := types.NewHostEntries()
	err := snapshotCustomEntries(fs, h, "/etc/hosts", "/etc/caasp/hosts", prev, testMarkers, true)
	// the strip failure is only logged
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/etc/caasp/hosts")
	require.NoError(t, err)
	assert.Equal(t, SerializeLines(prev), string(content))
	assert.Equal(t, []string{"10.1.1.1"}, h.IPs())
}

func TestSnapshotCustomEntriesExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/caasp/hosts", []byte("10.2.2.2 mine\n"), 0644))

	h := types.NewHostEntries()
	err := snapshotCustomEntries(fs, h, "/etc/hosts", "/etc/caasp/hosts",
		[]string{"10.1.1.1 from-hosts"}, testMarkers, true)
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/etc/caasp/hosts")
	require.NoError(t, err)
	assert.Equal(t, "10.2.2.2 mine\n", string(content), "custom file must not be rewritten")
	assert.Equal(t, []string{"10.2.2.2"}, h.IPs())
}

func TestSnapshotCustomEntriesNotAFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/etc/caasp/hosts", 0755))

	err := snapshotCustomEntries(fs, types.NewHostEntries(), "/etc/hosts", "/etc/caasp/hosts",
		nil, Markers{}, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, caasperrors.ErrRuntime))
}

func TestSnapshotCustomEntriesNoPersist(t *testing.T) {
	fs := afero.NewMemMapFs()
	prev := []string{"10.1.1.1 custom", "#-- start managed block", "10.0.0.1 old", "#-- end managed block"}

	h := types.NewHostEntries()
	err := snapshotCustomEntries(fs, h, "/etc/hosts", "/etc/caasp/hosts", prev, testMarkers, false)
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "/etc/caasp/hosts")
	assert.False(t, exists)
	assert.Equal(t, []string{"10.1.1.1"}, h.IPs())
}
