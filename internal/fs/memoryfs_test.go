package fs_test

import (
	"io"
	iofs "io/fs"
	"os"
	"testing"

	"github.com/keshon/dircmp/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, m *fs.MemoryFS, p string) string {
	t.Helper()
	f, err := m.Open(p)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestMemoryFS_WriteAndOpen(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("dir/sub", 0o755))
	require.NoError(t, m.WriteFile("dir/sub/file.txt", []byte("hello world"), 0o644))

	assert.Equal(t, "hello world", readAll(t, m, "dir/sub/file.txt"))
}

func TestMemoryFS_WriteFileNonExistentDir(t *testing.T) {
	m := fs.NewMemoryFS()
	assert.Error(t, m.WriteFile("nope/file.txt", []byte("x"), 0o644))
}

func TestMemoryFS_OpenSeek(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("d", 0o755))
	require.NoError(t, m.WriteFile("d/f", []byte("abcdef"), 0o644))

	f, err := m.Open("d/f")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Seek(3, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "def", string(rest))
}

func TestMemoryFS_OpenMissing(t *testing.T) {
	_, err := fs.NewMemoryFS().Open("nope")
	assert.ErrorIs(t, err, iofs.ErrNotExist)
}

func TestMemoryFS_StatModes(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("d", 0o755))
	require.NoError(t, m.WriteFile("d/f", []byte("abcd"), 0o644))

	fi, err := m.Stat("d/f")
	require.NoError(t, err)
	assert.True(t, fi.Mode().IsRegular())
	assert.False(t, fi.IsDir())
	assert.EqualValues(t, 4, fi.Size())

	di, err := m.Stat("d")
	require.NoError(t, err)
	assert.True(t, di.IsDir())
	assert.False(t, di.Mode().IsRegular())
}

func TestMemoryFS_ReadDirSortedAndTyped(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("root/b/deep", 0o755))
	require.NoError(t, m.WriteFile("root/c.txt", []byte("c"), 0o644))
	require.NoError(t, m.WriteFile("root/a.txt", []byte("a"), 0o644))
	require.NoError(t, m.WriteFile("root/b/deep/x", []byte("x"), 0o644))
	require.NoError(t, m.Symlink("a.txt", "root/l"))

	entries, err := m.ReadDir("root")
	require.NoError(t, err)

	want := []struct {
		name  string
		isDir bool
		link  bool
	}{
		{"a.txt", false, false},
		{"b", true, false},
		{"c.txt", false, false},
		{"l", false, true},
	}
	require.Len(t, entries, len(want))
	for i, w := range want {
		e := entries[i]
		assert.Equal(t, w.name, e.Name(), "entry %d", i)
		assert.Equal(t, w.isDir, e.IsDir(), "entry %d", i)
		assert.Equal(t, w.link, e.Type()&os.ModeSymlink != 0, "entry %d", i)
	}
}

func TestMemoryFS_Symlinks(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("root/sub", 0o755))
	require.NoError(t, m.WriteFile("root/sub/f", []byte("data"), 0o644))
	require.NoError(t, m.Symlink("sub", "root/dirlink"))
	require.NoError(t, m.Symlink("sub/f", "root/filelink"))
	require.NoError(t, m.Symlink("missing", "root/broken"))

	di, err := m.Stat("root/dirlink")
	require.NoError(t, err)
	assert.True(t, di.IsDir())
	assert.False(t, m.IsFile("root/dirlink"))

	assert.True(t, m.IsFile("root/filelink"))
	assert.Equal(t, "data", readAll(t, m, "root/filelink"))

	_, err = m.Stat("root/broken")
	assert.ErrorIs(t, err, iofs.ErrNotExist)
	assert.False(t, m.IsFile("root/broken"))
}

func TestMemoryFS_PathsThroughSymlinkedDirectory(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("real/nested", 0o755))
	require.NoError(t, m.WriteFile("real/nested/f", []byte("deep"), 0o644))
	require.NoError(t, m.MkdirAll("root", 0o755))
	require.NoError(t, m.Symlink("../real", "root/link"))

	assert.True(t, m.IsFile("root/link/nested/f"))
	assert.Equal(t, "deep", readAll(t, m, "root/link/nested/f"))

	entries, err := m.ReadDir("root/link/nested")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "f", entries[0].Name())

	resolved, err := m.EvalSymlinks("root/link/nested")
	require.NoError(t, err)
	assert.Equal(t, "real/nested", resolved)
}

func TestMemoryFS_EvalSymlinksMissing(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("d", 0o755))
	require.NoError(t, m.Symlink("gone", "d/l"))

	_, err := m.EvalSymlinks("d/l")
	assert.ErrorIs(t, err, iofs.ErrNotExist)

	resolved, err := m.EvalSymlinks("d")
	require.NoError(t, err)
	assert.Equal(t, "d", resolved)
}

func TestMemoryFS_SymlinkCycle(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("d", 0o755))
	require.NoError(t, m.Symlink("b", "d/a"))
	require.NoError(t, m.Symlink("a", "d/b"))

	_, err := m.Stat("d/a")
	assert.ErrorContains(t, err, "too many levels of symbolic links")
}
