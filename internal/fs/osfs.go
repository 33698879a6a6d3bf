package fs

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

// OSFS is a production implementation of FS using the standard library.
// File contents are memory-mapped rather than read through buffered I/O.
type OSFS struct{}

func NewOSFS() *OSFS {
	return &OSFS{}
}

func (r *OSFS) Open(path string) (io.ReadSeekCloser, error) {
	ra, err := openMmap(path)
	if err != nil {
		return nil, err
	}
	return &mmapFile{
		SectionReader: io.NewSectionReader(ra, 0, int64(ra.Len())),
		ra:            ra,
	}, nil
}

// mmapFile exposes a mapped file as a seekable stream.
type mmapFile struct {
	*io.SectionReader
	ra *mmap.ReaderAt
}

func (m *mmapFile) Close() error { return m.ra.Close() }

func (r *OSFS) Stat(path string) (os.FileInfo, error) {
	return stat(path)
}

func (r *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return readDir(path)
}

// EvalSymlinks returns the absolute path of p with every symlink resolved.
func (r *OSFS) EvalSymlinks(p string) (string, error) {
	resolved, err := evalSymlinks(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(resolved)
}

func (r *OSFS) IsFile(path string) bool {
	return IsFile(path)
}
