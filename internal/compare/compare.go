// Package compare checks two directory trees for content equality.
package compare

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/keshon/dircmp/internal/config"
	"github.com/keshon/dircmp/internal/diff"
	"github.com/keshon/dircmp/internal/fs"
	"github.com/keshon/dircmp/internal/hash"
	"github.com/keshon/dircmp/internal/progress"
	"github.com/keshon/dircmp/internal/snapshot"
	"github.com/keshon/dircmp/internal/tree"
)

// Usage is the positional argument synopsis.
const Usage = "<dir1> <dir2> [ignore_pattern]"

// TraversalError reports a root that could not be enumerated.
type TraversalError = snapshot.TraversalError

// UsageError reports a wrong number of positional arguments.
type UsageError struct {
	Got int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected %d or %d arguments (%s), got %d",
		config.MinArgs, config.MaxArgs, Usage, e.Got)
}

// CheckArgs returns a *UsageError unless args has an accepted length.
func CheckArgs(args []string) error {
	if !config.ValidArgCount(len(args)) {
		return &UsageError{Got: len(args)}
	}
	return nil
}

// Options tunes a comparison. The zero value compares with the default hash
// on the OS filesystem and labels sides by their root paths.
type Options struct {
	Ignore   string
	Hash     hash.Algorithm
	LabelA   string
	LabelB   string
	FS       fs.FS
	Progress io.Writer // nil disables progress output
	Logger   *slog.Logger
}

// Result is the outcome of Dirs.
type Result struct {
	Match  bool
	Report diff.Report
}

func (r Result) String() string { return r.Report.String() }

// Dirs snapshots dirA fully, then dirB, then diffs them. A traversal failure
// on either side aborts the comparison with a *TraversalError and no report.
func Dirs(dirA, dirB string, opts Options) (Result, error) {
	algo := opts.Hash
	if algo == "" {
		algo = hash.Default
	}
	if _, err := algo.New(); err != nil {
		return Result{}, err
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = fs.NewOSFS()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	labelA, labelB := opts.LabelA, opts.LabelB
	if labelA == "" {
		labelA = dirA
	}
	if labelB == "" {
		labelB = dirB
	}

	build := func(root string) (snapshot.Snapshot, error) {
		w := tree.NewWalker(fsys, algo)
		w.Progress = progress.NewProgress(opts.Progress, "Hashing "+root)
		snap, err := snapshot.Build(root, snapshot.Options{
			Ignore: opts.Ignore,
			Walker: w,
			FS:     fsys,
			Logger: logger,
		})
		if err != nil {
			w.Progress.Abort()
			return nil, err
		}
		w.Progress.Finish()
		return snap, nil
	}

	a, err := build(dirA)
	if err != nil {
		return Result{}, err
	}
	b, err := build(dirB)
	if err != nil {
		return Result{}, err
	}

	report := diff.Compare(a, b, labelA, labelB)
	logger.Debug("comparison done",
		"a", dirA, "b", dirB,
		"hash", string(algo),
		"ignore", opts.Ignore,
		"diffs", len(report.Entries),
	)
	return Result{Match: report.Match(), Report: report}, nil
}
