// Package diff classifies the paths of two snapshots and renders the result.
package diff

import (
	"fmt"
	"io"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	json "github.com/goccy/go-json"

	"github.com/keshon/dircmp/internal/config"
	"github.com/keshon/dircmp/internal/util"
)

const (
	// PrefixLen is how many fingerprint characters a rendered line shows.
	PrefixLen = config.FingerprintPrefixLen

	MatchLine  = "Content matches: All files are identical"
	DiffHeader = "Content diffs:"
)

// Kind tells why a path is reported.
type Kind string

const (
	Differs Kind = "differs" // on both sides with different fingerprints
	Only    Kind = "only"    // on one side only
)

// Entry is one reported discrepancy. Fingerprints are kept in full.
type Entry struct {
	Kind         Kind   `json:"kind"`
	Path         string `json:"path"`
	FingerprintA string `json:"fingerprint_a,omitempty"`
	FingerprintB string `json:"fingerprint_b,omitempty"`
	OnlyIn       string `json:"only_in,omitempty"`
}

// Line renders the entry without the leading "- ".
func (e Entry) Line(prefixLen int) string {
	if e.Kind == Only {
		return fmt.Sprintf("%s (only in %s)", e.Path, e.OnlyIn)
	}
	return fmt.Sprintf("%s [%s≠%s]", e.Path, util.Prefix(e.FingerprintA, prefixLen), util.Prefix(e.FingerprintB, prefixLen))
}

// Report is the outcome of comparing two snapshots, sorted by path.
type Report struct {
	LabelA  string
	LabelB  string
	Entries []Entry
}

// Compare classifies every path of a and b. Paths whose fingerprints are equal
// on both sides are not reported.
func Compare(a, b map[string]string, labelA, labelB string) Report {
	keysA := mapset.NewThreadUnsafeSetFromMapKeys(a)
	keysB := mapset.NewThreadUnsafeSetFromMapKeys(b)

	r := Report{LabelA: labelA, LabelB: labelB}
	for _, p := range keysA.Intersect(keysB).ToSlice() {
		if a[p] != b[p] {
			r.Entries = append(r.Entries, Entry{Kind: Differs, Path: p, FingerprintA: a[p], FingerprintB: b[p]})
		}
	}
	for _, p := range keysA.Difference(keysB).ToSlice() {
		r.Entries = append(r.Entries, Entry{Kind: Only, Path: p, OnlyIn: labelA})
	}
	for _, p := range keysB.Difference(keysA).ToSlice() {
		r.Entries = append(r.Entries, Entry{Kind: Only, Path: p, OnlyIn: labelB})
	}

	sort.Slice(r.Entries, func(i, j int) bool { return r.Entries[i].Path < r.Entries[j].Path })
	return r
}

// Match reports whether the compared snapshots are equal.
func (r Report) Match() bool { return len(r.Entries) == 0 }

// Paths lists the reported paths in report order.
func (r Report) Paths() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Path
	}
	return out
}

// Render writes the human-readable report. The output has no trailing newline.
func (r Report) Render(w io.Writer, prefixLen int) error {
	if r.Match() {
		_, err := io.WriteString(w, MatchLine)
		return err
	}
	if _, err := io.WriteString(w, DiffHeader); err != nil {
		return err
	}
	for _, e := range r.Entries {
		if _, err := fmt.Fprintf(w, "\n- %s", e.Line(prefixLen)); err != nil {
			return err
		}
	}
	return nil
}

func (r Report) String() string {
	var sb strings.Builder
	_ = r.Render(&sb, PrefixLen)
	return sb.String()
}

type jsonReport struct {
	Match  bool    `json:"match"`
	LabelA string  `json:"a"`
	LabelB string  `json:"b"`
	Diffs  []Entry `json:"diffs"`
}

func (r Report) MarshalJSON() ([]byte, error) {
	diffs := r.Entries
	if diffs == nil {
		diffs = []Entry{}
	}
	return json.Marshal(jsonReport{Match: r.Match(), LabelA: r.LabelA, LabelB: r.LabelB, Diffs: diffs})
}
