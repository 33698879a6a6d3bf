package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/keshon/dircmp/internal/compare"
	"github.com/keshon/dircmp/internal/config"
	"github.com/keshon/dircmp/internal/logging"
	"github.com/spf13/cobra"
)

var red = color.New(color.FgHiRed, color.Bold).SprintFunc()

// app holds the state of one invocation.
type app struct {
	stdout, stderr io.Writer

	hash     string
	json     bool
	verbose  bool
	progress bool

	ran     bool
	matched bool
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dircmp [flags] " + compare.Usage,
		Short: "Compare two directory trees by content",
		Long: `Compare two directory trees by file content.

Every regular file is fingerprinted on both sides. Files whose relative path
contains ignore_pattern are left out on both sides. Flags go before the
directories, so the pattern may start with a dash. Exits 0 when the trees
match and 1 when they differ or the comparison fails.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return compare.CheckArgs(args)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.Flags()
	flags.SortFlags = false
	// everything after the first positional is positional too
	flags.SetInterspersed(false)
	flags.StringVar(&a.hash, "hash", config.DefaultHash, "fingerprint algorithm (xxh3 | sha256)")
	flags.BoolVar(&a.json, "json", false, "print the report as JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug details to stderr")
	flags.BoolVar(&a.progress, "progress", false, "show hashing progress on stderr")
	return cmd
}

func (a *app) compare(args []string) error {
	algo, err := config.SelectedHash(a.hash)
	if err != nil {
		return err
	}

	opts := compare.Options{
		Hash:   algo,
		Logger: logging.New(a.stderr, a.verbose),
	}
	if len(args) == config.MaxArgs {
		opts.Ignore = args[2]
	}
	if a.progress {
		opts.Progress = a.stderr
	}

	res, err := compare.Dirs(args[0], args[1], opts)
	if err != nil {
		return err
	}
	a.ran = true
	a.matched = res.Match

	if a.json {
		out, err := json.MarshalIndent(res.Report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Fprintln(a.stdout, string(out))
		return nil
	}
	fmt.Fprintln(a.stdout, res.String())
	return nil
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		var uerr *compare.UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(stderr, "Usage: "+cmd.UseLine())
			return 1
		}
		fmt.Fprintln(stderr, red("Error:"), err)
		return 1
	}
	if !a.ran || a.matched {
		return 0
	}
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
