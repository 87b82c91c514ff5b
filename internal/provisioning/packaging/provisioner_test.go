package packaging

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/imamik/lambdeploy/internal/artifact"
	"github.com/imamik/lambdeploy/internal/config"
	"github.com/imamik/lambdeploy/internal/provisioning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, src string) (*provisioning.Context, *provisioning.RecordingObserver) {
	t.Helper()
	cfg := &config.Config{
		Function: config.FunctionConfig{Name: "demoFn"},
		Source:   src,
		Deploy:   config.DeployConfig{WorkDir: t.TempDir()},
	}
	observer := provisioning.NewRecordingObserver(nil)
	ctx := provisioning.NewContext(context.Background(), cfg, nil, nil, nil)
	ctx.Observer = observer
	return ctx, observer
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "package", NewProvisioner().Name())
}

func TestProvision_BuildsArchive(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "main.py"), "def handler(e, c):\n    return 1\n")
	writeFile(t, filepath.Join(src, "lib", "util.py"), "X = 1\n")
	ctx, observer := newTestContext(t, src)

	require.NoError(t, NewProvisioner().Provision(ctx))

	art := ctx.State.Artifact
	require.NotNil(t, art)
	assert.Equal(t, "demoFn.zip", art.Name)
	assert.Equal(t, filepath.Join(ctx.Config.Deploy.WorkDir, "demoFn.zip"), art.Path)
	assert.Equal(t, 2, art.Files)

	zr, err := zip.OpenReader(art.Path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "main.py")
	assert.Contains(t, names, "lib/util.py")

	created := observer.EventsOfType(provisioning.EventResourceCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "demoFn.zip", created[0].Resource)
	assert.Equal(t, art.SHA256, created[0].Fields["sha256"])
}

func TestProvision_EmptySource(t *testing.T) {
	t.Parallel()
	ctx, observer := newTestContext(t, t.TempDir())

	err := NewProvisioner().Provision(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrEmptySource)
	assert.Nil(t, ctx.State.Artifact)
	assert.Len(t, observer.EventsOfType(provisioning.EventResourceFailed), 1)
}

func TestProvision_MissingSource(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t, filepath.Join(t.TempDir(), "nope"))

	err := NewProvisioner().Provision(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(filepath.Join(ctx.Config.Deploy.WorkDir, "demoFn.zip"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestProvision_ReplacesStaleArchive(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "main.py"), "v2")
	ctx, _ := newTestContext(t, src)
	writeFile(t, filepath.Join(ctx.Config.Deploy.WorkDir, "demoFn.zip"), "stale bytes, not a zip")

	require.NoError(t, NewProvisioner().Provision(ctx))

	zr, err := zip.OpenReader(ctx.State.Artifact.Path)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "main.py", zr.File[0].Name)
}
