// Package snapshot turns a directory tree into a map from relative file path
// to content fingerprint.
package snapshot

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/keshon/dircmp/internal/fs"
	"github.com/keshon/dircmp/internal/hash"
	"github.com/keshon/dircmp/internal/tree"
	"github.com/keshon/dircmp/internal/util"
)

// Snapshot maps root-relative file paths to fingerprints. It holds regular
// files only and is never modified once Build returns it.
type Snapshot map[string]string

// Paths returns the snapshot keys in lexical order.
func (s Snapshot) Paths() []string { return util.SortedKeys(s) }

func (s Snapshot) Len() int { return len(s) }

// Walker enumerates all entries under a root, root included.
type Walker interface {
	Walk(root string) ([]tree.Entry, error)
}

// Options controls Build. Zero values select the OS filesystem, the default
// hash and slog.Default().
type Options struct {
	Ignore string
	Walker Walker
	FS     fs.FS
	Logger *slog.Logger
}

// TraversalError reports a root that could not be enumerated.
type TraversalError struct {
	Root string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("traverse %s: %v", e.Root, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// Ignored reports whether relPath contains the non-empty pattern.
func Ignored(relPath, pattern string) bool {
	return pattern != "" && strings.Contains(relPath, pattern)
}

// Build walks root and keeps every entry that is a regular file on disk and
// does not match opts.Ignore. Whether an entry is a file is decided by a
// stat of root/RelPath, not by the walker's IsDir flag, so the entry of a
// symlinked directory is dropped while the files under it are kept.
func Build(root string, opts Options) (Snapshot, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	walker := opts.Walker
	if walker == nil {
		walker = tree.NewWalker(fsys, hash.Default)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := walker.Walk(root)
	if err != nil {
		return nil, &TraversalError{Root: root, Err: err}
	}

	snap := make(Snapshot, len(entries))
	var ignored, skipped int
	var size int64
	for _, e := range entries {
		if e.RelPath == "" {
			continue
		}
		if Ignored(e.RelPath, opts.Ignore) {
			ignored++
			continue
		}
		if !fsys.IsFile(filepath.Join(root, filepath.FromSlash(e.RelPath))) {
			skipped++
			continue
		}
		snap[e.RelPath] = e.Fingerprint
		size += e.Size
	}

	logger.Debug("snapshot built",
		"root", root,
		"files", len(snap),
		"ignored", ignored,
		"skipped", skipped,
		"size", humanize.Bytes(uint64(size)),
	)
	return snap, nil
}
