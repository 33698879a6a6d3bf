package fs

import (
	"io"
	"os"
)

// FS abstracts the read-only filesystem operations a tree walk needs.
// Every method follows symlinks except ReadDir, which lists links as links.
type FS interface {
	Open(path string) (io.ReadSeekCloser, error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	EvalSymlinks(path string) (string, error)
	IsFile(path string) bool
}
