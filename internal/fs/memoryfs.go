package fs

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxLinkHops bounds symlink resolution so cycles fail instead of spinning.
const maxLinkHops = 40

// MemoryFS is a pure in-memory filesystem for tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
	links map[string]string
}

func NewMemoryFS() *MemoryFS {
	f := &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
		links: make(map[string]string),
	}
	f.dirs["/"] = struct{}{}
	f.dirs["."] = struct{}{}
	return f
}

// normalize paths
func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func (f *MemoryFS) ensureDirExists(p string) error {
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return fs.ErrNotExist
	}
	return nil
}

// resolve follows symlinks in every component of p until it names a file,
// a directory or nothing.
func (f *MemoryFS) resolve(p string) (string, error) {
	p = clean(p)
	for hops := 0; ; hops++ {
		next, ok := f.expandFirstLink(p)
		if !ok {
			return p, nil
		}
		if hops == maxLinkHops {
			return "", fmt.Errorf("resolve %q: too many levels of symbolic links", p)
		}
		p = next
	}
}

// expandFirstLink replaces the shortest prefix of p that is a symlink with
// the link's target.
func (f *MemoryFS) expandFirstLink(p string) (string, bool) {
	parts := strings.Split(p, "/")
	for i := 1; i <= len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		target, ok := f.links[prefix]
		if !ok {
			continue
		}
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(prefix), target)
		}
		return clean(path.Join(append([]string{target}, parts[i:]...)...)), true
	}
	return "", false
}

// Test setup helpers

func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = clean(p)
	dir := path.Dir(p)
	if err := f.ensureDirExists(dir); err != nil {
		return fmt.Errorf("write: dir %q does not exist", dir)
	}
	f.files[p] = append([]byte(nil), data...)
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	parts := strings.Split(p, "/")
	cur := ""
	if strings.HasPrefix(p, "/") {
		cur = "/"
	}
	for _, seg := range parts {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		if _, ok := f.dirs[cur]; !ok {
			f.dirs[cur] = struct{}{}
		}
	}
	return nil
}

// Symlink creates link pointing at target. Relative targets resolve against
// the directory holding the link.
func (f *MemoryFS) Symlink(target, link string) error {
	link = clean(link)
	if err := f.ensureDirExists(path.Dir(link)); err != nil {
		return fmt.Errorf("symlink: dir %q does not exist", path.Dir(link))
	}
	f.links[link] = filepath.ToSlash(target)
	return nil
}

// FS Interface Implementation

func (f *MemoryFS) Open(p string) (io.ReadSeekCloser, error) {
	p, err := f.resolve(p)
	if err != nil {
		return nil, err
	}
	data, ok := f.files[p]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return &memReadSeekCloser{Reader: bytes.NewReader(data)}, nil
}

type memReadSeekCloser struct {
	*bytes.Reader
}

func (m *memReadSeekCloser) Close() error { return nil }

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	resolved, err := f.resolve(p)
	if err != nil {
		return nil, err
	}
	return f.lookup(resolved)
}

// lookup stats a path that contains no symlinks.
func (f *MemoryFS) lookup(p string) (os.FileInfo, error) {
	if data, ok := f.files[p]; ok {
		return &fakeInfo{name: path.Base(p), size: int64(len(data)), mode: 0o644}, nil
	}
	if _, ok := f.dirs[p]; ok {
		return &fakeInfo{name: path.Base(p), mode: fs.ModeDir | 0o755}, nil
	}
	return nil, fs.ErrNotExist
}

func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	p, err := f.resolve(p)
	if err != nil {
		return nil, err
	}
	if _, ok := f.dirs[p]; !ok {
		if _, isFile := f.files[p]; isFile {
			return nil, fmt.Errorf("readdir %q: not a directory", p)
		}
		return nil, fs.ErrNotExist
	}

	var out []os.DirEntry
	prefix := p
	if prefix != "/" && prefix != "." {
		prefix += "/"
	}
	if prefix == "." {
		prefix = ""
	}

	seen := map[string]bool{}
	add := func(full string, mode fs.FileMode, onlyDirect bool) {
		if !strings.HasPrefix(full, prefix) || full == p {
			return
		}
		rest := strings.TrimPrefix(full, prefix)
		if rest == "" || rest == "." || strings.HasPrefix(rest, "/") {
			return
		}
		name, _, nested := strings.Cut(rest, "/")
		if seen[name] {
			return
		}
		if nested {
			if onlyDirect {
				return
			}
			mode = fs.ModeDir
		}
		seen[name] = true
		out = append(out, fakeDirEntry{name: name, mode: mode})
	}

	// dirs first
	for dp := range f.dirs {
		add(dp, fs.ModeDir, false)
	}
	// then links, then files
	for lp := range f.links {
		add(lp, fs.ModeSymlink, true)
	}
	for fp := range f.files {
		add(fp, 0, true)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// EvalSymlinks returns p with every symlink resolved. The result must exist.
func (f *MemoryFS) EvalSymlinks(p string) (string, error) {
	resolved, err := f.resolve(p)
	if err != nil {
		return "", err
	}
	if _, err := f.lookup(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (f *MemoryFS) IsFile(p string) bool {
	fi, err := f.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}

// Helpers

type fakeInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (f *fakeInfo) Name() string       { return f.name }
func (f *fakeInfo) Size() int64        { return f.size }
func (f *fakeInfo) Mode() fs.FileMode  { return f.mode }
func (f *fakeInfo) ModTime() time.Time { return time.Time{} }
func (f *fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *fakeInfo) Sys() interface{}   { return nil }

type fakeDirEntry struct {
	name string
	mode fs.FileMode
}

func (d fakeDirEntry) Name() string      { return d.name }
func (d fakeDirEntry) IsDir() bool       { return d.mode.IsDir() }
func (d fakeDirEntry) Type() fs.FileMode { return d.mode.Type() }
func (d fakeDirEntry) Info() (os.FileInfo, error) {
	return &fakeInfo{name: d.name, mode: d.mode}, nil
}
