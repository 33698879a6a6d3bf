package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

// Hooks used for testing (overridable)
var (
	openMmap     = mmap.Open
	stat         = os.Stat
	readDir      = os.ReadDir
	evalSymlinks = filepath.EvalSymlinks
)

// IsFile reports whether path resolves to a regular file. Symlinks are followed.
var IsFile = func(path string) bool {
	fi, err := stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// getters and setters for test override
func GetOpenMmap() func(string) (*mmap.ReaderAt, error)  { return openMmap }
func SetOpenMmap(f func(string) (*mmap.ReaderAt, error)) { openMmap = f }
func GetStat() func(string) (os.FileInfo, error)         { return stat }
func SetStat(f func(string) (os.FileInfo, error))        { stat = f }
func GetReadDir() func(string) ([]os.DirEntry, error)    { return readDir }
func SetReadDir(f func(string) ([]os.DirEntry, error))   { readDir = f }
func GetEvalSymlinks() func(string) (string, error)      { return evalSymlinks }
func SetEvalSymlinks(f func(string) (string, error))     { evalSymlinks = f }
