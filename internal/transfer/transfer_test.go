package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyTree_MixedChildren(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "snapshot")

	writeFile(t, filepath.Join(src, "a.sav"), "alpha")
	writeFile(t, filepath.Join(src, "b.sav"), "beta")
	writeFile(t, filepath.Join(src, "meta", "profile.json"), `{"name":"janeway"}`)
	writeFile(t, filepath.Join(src, "meta", "nested", "deep.bin"), "deep")

	n, err := CopyTree(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "count is direct children, not total files")

	for _, rel := range []string{"a.sav", "b.sav", "meta/profile.json", "meta/nested/deep.bin"} {
		want, err := os.ReadFile(filepath.Join(src, filepath.FromSlash(rel)))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
		require.NoError(t, err, "missing %s", rel)
		assert.Equal(t, want, got, "content mismatch for %s", rel)
	}
}

func TestCopyTree_CreatesDestination(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "x.sav"), "x")

	dst := filepath.Join(t.TempDir(), "not", "yet", "there")
	n, err := CopyTree(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCopyTree_EmptySource(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "empty-dst")

	n, err := CopyTree(src, dst)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCopyTree_MissingSource(t *testing.T) {
	_, err := CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}

func TestCopyTree_PreservesModTime(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "snap")

	file := filepath.Join(src, "old.sav")
	writeFile(t, file, "v")
	stamp := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(file, stamp, stamp))

	_, err := CopyTree(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "old.sav"))
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, info.ModTime(), time.Second)
}

func TestCopyTree_PreservesFileMode(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "snap")

	file := filepath.Join(src, "exec.sh")
	writeFile(t, file, "#!/bin/sh")
	require.NoError(t, os.Chmod(file, 0o755))

	_, err := CopyTree(src, dst)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dst, "exec.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestWipeTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sav"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.sav"), "b")

	require.NoError(t, WipeTree(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// The directory itself must survive.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWipeTree_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	require.NoError(t, WipeTree(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWipeTree_EmptyDirIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WipeTree(dir))
}
