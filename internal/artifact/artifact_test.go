package artifact

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a path->content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// extract reads every regular file in the archive into a map.
func extract(t *testing.T, archivePath string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	out := make(map[string]string)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		require.False(t, strings.HasPrefix(f.Name, "/"), "entries must be relative: %s", f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(data)
	}
	return out
}

func TestBuild_RoundTrip(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	files := map[string]string{
		"main.py":            "def handler(event, context):\n    return 'ok'\n",
		"lib/util.py":        "X = 1\n",
		"lib/nested/data.js": "{}",
		"README":             "",
	}
	writeTree(t, src, files)

	archivePath := filepath.Join(t.TempDir(), "demoFn.zip")
	a, err := Build(src, archivePath)
	require.NoError(t, err)

	assert.Equal(t, "demoFn.zip", a.Name)
	assert.Equal(t, archivePath, a.Path)
	assert.Equal(t, len(files), a.Files)
	assert.Equal(t, files, extract(t, archivePath))
}

func TestBuild_ChecksumMatchesFile(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.py": "print('hi')"})

	archivePath := filepath.Join(t.TempDir(), "fn.zip")
	a, err := Build(src, archivePath)
	require.NoError(t, err)

	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)
	sum := sha256.Sum256(data)

	assert.Equal(t, hex.EncodeToString(sum[:]), a.SHA256)
	assert.Equal(t, int64(len(data)), a.Size)
	assert.NotEmpty(t, a.CodeSHA256)
}

func TestBuild_RerunReplacesStaleArchive(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.py": "v1"})

	out := t.TempDir()
	archivePath := filepath.Join(out, "demoFn.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("stale garbage"), 0o644))

	first, err := Build(src, archivePath)
	require.NoError(t, err)

	writeTree(t, src, map[string]string{"main.py": "v2"})
	second, err := Build(src, archivePath)
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, map[string]string{"main.py": "v2"}, extract(t, archivePath))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the fresh archive should remain")
}

func TestBuild_SkipsArchiveInsideSource(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.py": "x"})

	archivePath := filepath.Join(src, "demoFn.zip")
	a, err := Build(src, archivePath)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Files)
	assert.Equal(t, map[string]string{"main.py": "x"}, extract(t, archivePath))
}

func TestBuild_SkipsArchiveReachedThroughSymlink(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	writeTree(t, src, map[string]string{"main.py": "x"})

	link := filepath.Join(t.TempDir(), "work")
	if err := os.Symlink(src, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	archivePath := filepath.Join(link, "demoFn.zip")
	a, err := Build(src, archivePath)
	require.NoError(t, err)

	assert.Equal(t, 1, a.Files)
	assert.Equal(t, map[string]string{"main.py": "x"}, extract(t, archivePath))
}

func TestBuild_PreservesMode(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	script := filepath.Join(src, "bootstrap")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))

	archivePath := filepath.Join(t.TempDir(), "fn.zip")
	_, err := Build(src, archivePath)
	require.NoError(t, err)

	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()
	require.Len(t, r.File, 1)
	assert.Equal(t, os.FileMode(0o755), r.File[0].Mode().Perm())
}

func TestBuild_EmptySource(t *testing.T) {
	t.Parallel()
	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "empty-subdir"), 0o755))

	archivePath := filepath.Join(t.TempDir(), "fn.zip")
	_, err := Build(src, archivePath)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySource))
	assert.NoFileExists(t, archivePath)
}

func TestBuild_MissingSource(t *testing.T) {
	t.Parallel()
	archivePath := filepath.Join(t.TempDir(), "fn.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("stale"), 0o644))

	_, err := Build(filepath.Join(t.TempDir(), "nope"), archivePath)

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NoFileExists(t, archivePath)
}

func TestBuild_SourceIsFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	archivePath := filepath.Join(t.TempDir(), "fn.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("stale"), 0o644))

	_, err := Build(file, archivePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
	assert.NoFileExists(t, archivePath)
}

func TestRemove(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fn.zip")
	require.NoError(t, Remove(path), "missing file is fine")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, Remove(path))
	assert.NoFileExists(t, path)
}
