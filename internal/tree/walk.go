// Package tree enumerates a directory tree and fingerprints every entry.
//
// Files are fingerprinted by content and directories by a merkle digest over
// their children, so two directories share a fingerprint exactly when their
// subtrees do. Symlinks are followed: a link takes the fingerprint of what it
// points to, and a dangling link gets none.
package tree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/keshon/dircmp/internal/fs"
	"github.com/keshon/dircmp/internal/hash"
	"github.com/keshon/dircmp/internal/progress"
)

// Entry is one filesystem object under a walked root.
type Entry struct {
	RelPath     string // root-relative, '/'-separated; "" is the root itself
	IsDir       bool   // from the directory listing; symlinks are never dirs here
	Fingerprint string
	Size        int64 // content bytes, regular files only
}

// Walker enumerates a root through an FS abstraction.
type Walker struct {
	FS       fs.FS
	Hash     hash.Algorithm
	Progress *progress.Tracker
}

// NewWalker creates a Walker. A nil fsys selects the OS filesystem.
func NewWalker(fsys fs.FS, algo hash.Algorithm) *Walker {
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	if algo == "" {
		algo = hash.Default
	}
	return &Walker{FS: fsys, Hash: algo}
}

// Walk returns every entry under root in pre-order, root first. Entries
// reached through a symlinked directory are listed under the link's path.
// The first failure aborts the walk.
func (w *Walker) Walk(root string) ([]Entry, error) {
	fi, err := w.FS.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	entries := []Entry{{RelPath: "", IsDir: true}}
	fp, err := w.walkDir(root, "", &entries, map[string]bool{})
	if err != nil {
		return nil, err
	}
	entries[0].Fingerprint = fp
	return entries, nil
}

// walkDir appends the subtree of dir and returns the directory's fingerprint.
// ancestors holds the resolved paths of the directories being walked above
// dir. A dir that resolves to one of them closes a symlink cycle; it is left
// empty with no fingerprint.
func (w *Walker) walkDir(dir, rel string, out *[]Entry, ancestors map[string]bool) (string, error) {
	resolved, err := w.FS.EvalSymlinks(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", dir, err)
	}
	if ancestors[resolved] {
		return "", nil
	}
	ancestors[resolved] = true
	defer delete(ancestors, resolved)

	children, err := w.FS.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %q: %w", dir, err)
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })

	digest, err := w.Hash.New()
	if err != nil {
		return "", err
	}

	for _, c := range children {
		abs := filepath.Join(dir, c.Name())
		idx := len(*out)
		*out = append(*out, Entry{RelPath: path.Join(rel, c.Name()), IsDir: c.IsDir()})

		var fp string
		var size int64
		switch {
		case c.IsDir():
			fp, err = w.walkDir(abs, (*out)[idx].RelPath, out, ancestors)
		case c.Type()&os.ModeSymlink != 0:
			fp, size, err = w.followLink(abs, (*out)[idx].RelPath, out, ancestors)
		case c.Type().IsRegular():
			fp, size, err = w.hashFile(abs)
		default:
			// devices, sockets and pipes carry no content fingerprint
		}
		if err != nil {
			return "", err
		}

		(*out)[idx].Fingerprint = fp
		(*out)[idx].Size = size
		fmt.Fprintf(digest, "%s\x00%s\n", c.Name(), fp)
	}

	return digest.Sum(), nil
}

// followLink fingerprints what the link at p points to. A link into a
// directory is walked like the directory itself. Dangling links and links to
// irregular files get no fingerprint.
func (w *Walker) followLink(p, rel string, out *[]Entry, ancestors map[string]bool) (string, int64, error) {
	fi, err := w.FS.Stat(p)
	if err != nil {
		return "", 0, nil
	}
	switch {
	case fi.IsDir():
		fp, err := w.walkDir(p, rel, out, ancestors)
		return fp, 0, err
	case fi.Mode().IsRegular():
		return w.hashFile(p)
	default:
		return "", 0, nil
	}
}

func (w *Walker) hashFile(p string) (string, int64, error) {
	f, err := w.FS.Open(p)
	if err != nil {
		return "", 0, fmt.Errorf("open %q: %w", p, err)
	}
	defer f.Close()

	fp, n, err := w.Hash.SumReader(f)
	if err != nil {
		return "", n, fmt.Errorf("read %q: %w", p, err)
	}
	w.Progress.Increment()
	return fp, n, nil
}
