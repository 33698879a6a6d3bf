package fs_test

import (
	"errors"
	"os"
	"testing"

	"github.com/keshon/dircmp/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/mmap"
)

func TestHookOverrides(t *testing.T) {
	// openMmap hook
	origOpen := fs.GetOpenMmap()
	defer fs.SetOpenMmap(origOpen)

	called := false
	fs.SetOpenMmap(func(path string) (*mmap.ReaderAt, error) {
		called = true
		return nil, errors.New("open-error")
	})
	_, err := fs.GetOpenMmap()("x")
	assert.True(t, called, "Open hook not called")
	assert.EqualError(t, err, "open-error")

	// stat hook
	origStat := fs.GetStat()
	defer fs.SetStat(origStat)

	called = false
	fs.SetStat(func(path string) (os.FileInfo, error) {
		called = true
		return nil, errors.New("stat-error")
	})
	_, err = fs.GetStat()("z")
	assert.True(t, called, "Stat hook not called")
	assert.EqualError(t, err, "stat-error")

	// readDir hook
	origRD := fs.GetReadDir()
	defer fs.SetReadDir(origRD)

	called = false
	fs.SetReadDir(func(path string) ([]os.DirEntry, error) {
		called = true
		return nil, nil
	})
	_, err = fs.GetReadDir()("d")
	require.NoError(t, err)
	assert.True(t, called, "ReadDir hook not called")

	// evalSymlinks hook
	origEval := fs.GetEvalSymlinks()
	defer fs.SetEvalSymlinks(origEval)

	fs.SetEvalSymlinks(func(path string) (string, error) {
		return "/resolved", nil
	})
	got, err := fs.GetEvalSymlinks()("l")
	require.NoError(t, err)
	assert.Equal(t, "/resolved", got)
}

func TestIsFileFollowsStatHook(t *testing.T) {
	origStat := fs.GetStat()
	defer fs.SetStat(origStat)

	fs.SetStat(func(path string) (os.FileInfo, error) {
		return nil, os.ErrNotExist
	})
	assert.False(t, fs.IsFile(os.Args[0]), "IsFile must go through the stat hook")
}
