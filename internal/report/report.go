// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/matt-FFFFFF/groupby/internal/color"
	"github.com/matt-FFFFFF/groupby/internal/dispatch"
	"github.com/matt-FFFFFF/groupby/internal/grouped"
)

// emptyKeyMarker is rendered in place of a header for the unmatched group.
const emptyKeyMarker = "(no match)"

// Options controls how groups and command outcomes are rendered.
type Options struct {
	// Separator follows every record in raw group listings.
	Separator string
	// OnlyKeys prints group names and omits group contents.
	OnlyKeys bool
	// NoHeaders omits group headers; contents print back-to-back.
	NoHeaders bool
	// Stats adds per-group item counts and a collection summary.
	Stats bool
	// ShowStderr renders captured stderr for every group, not only
	// failed ones.
	ShowStderr bool
}

// WriteGroups renders the collection's raw tokens, group by group, in
// first-seen key order.
func WriteGroups(w io.Writer, coll *grouped.Collection[string], opts Options) error {
	sep := opts.Separator
	if sep == "" {
		sep = "\n"
	}

	bw := &errWriter{w: w}
	first := true

	for key, values := range coll.All() {
		switch {
		case opts.OnlyKeys:
			if opts.Stats {
				bw.record(fmt.Sprintf("%s (%s)", key, itemCount(len(values))), sep)
			} else {
				bw.record(key, sep)
			}

		case opts.NoHeaders:
			for _, v := range values {
				bw.record(v, sep)
			}

		default:
			if !first {
				bw.record("", sep)
			}

			bw.record(header(key, len(values), opts.Stats), sep)

			for _, v := range values {
				bw.record(v, sep)
			}
		}

		first = false
	}

	if opts.Stats {
		bw.record("", sep)
		bw.record(statistics(coll), sep)
	}

	return bw.err
}

// WriteOutcomes renders each group's captured command output under its
// header, in the collection's key order. Raw-listing separator options do
// not apply here: they shape what the commands received, and newline is the
// only sane delimiter for rendering their outputs.
func WriteOutcomes(w io.Writer, coll *grouped.Collection[string], outcomes []*dispatch.Outcome, opts Options) error {
	const sep = "\n"

	bw := &errWriter{w: w}

	for i, outcome := range outcomes {
		if !opts.NoHeaders {
			if i > 0 {
				bw.record("", sep)
			}

			n := 0
			if values, ok := coll.Get(outcome.Key); ok {
				n = len(values)
			}

			head := header(outcome.Key, n, opts.Stats)
			if outcome.Failed() {
				head += " " + color.Colorize(failure(outcome), color.FgRed)
			}

			bw.record(head, sep)
		}

		bw.write(outcome.Stdout)

		if len(outcome.Stderr) > 0 && (outcome.Failed() || opts.ShowStderr) {
			bw.record(color.Colorize("➜ stderr:", color.FgHiRed), sep)
			bw.write(indent(outcome.Stderr, "  "))
		}
	}

	if opts.Stats {
		bw.record("", sep)
		bw.record(statistics(coll), sep)
	}

	return bw.err
}

func header(key string, n int, stats bool) string {
	if key == "" {
		key = emptyKeyMarker
	}

	if stats {
		return fmt.Sprintf("%s: (%s)", key, itemCount(n))
	}

	return key + ":"
}

func failure(o *dispatch.Outcome) string {
	if o.Err != nil {
		return fmt.Sprintf("(error: %v)", o.Err)
	}

	return fmt.Sprintf("(exit code: %d)", o.ExitCode)
}

// itemCount describes a group size, like "1 item" or "48 items".
func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}

	return fmt.Sprintf("%d items", n)
}

// statistics summarizes the collection: totals plus min, max, lower median
// and mean group sizes.
func statistics(coll *grouped.Collection[string]) string {
	sizes := make([]int, 0, coll.Len())
	total := 0

	for _, values := range coll.All() {
		sizes = append(sizes, len(values))
		total += len(values)
	}

	sort.Ints(sizes)

	var minSize, maxSize, median int
	average := 0.0

	if len(sizes) > 0 {
		minSize = sizes[0]
		maxSize = sizes[len(sizes)-1]
		median = sizes[len(sizes)/2]
		average = float64(total) / float64(len(sizes))
	}

	return fmt.Sprintf(
		"Statistics:\n"+
			"  Total items: %d\n"+
			"  Total groups: %d\n"+
			"\n"+
			"  Group size:\n"+
			"    Median: %d\n"+
			"    Average: %.2f\n"+
			"    Min: %d\n"+
			"    Max: %d",
		total, coll.Len(), median, average, minSize, maxSize,
	)
}

// indent prefixes every non-empty line of output.
func indent(output []byte, prefix string) []byte {
	lines := strings.Split(strings.TrimSuffix(string(output), "\n"), "\n")
	sb := strings.Builder{}
	sb.Grow(len(output) + len(lines)*len(prefix))

	for _, line := range lines {
		if line == "" {
			sb.WriteString("\n")
			continue
		}

		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}

// errWriter accumulates the first write error so rendering code can stay
// free of per-call error plumbing.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) record(s, sep string) {
	e.write([]byte(s))
	e.write([]byte(sep))
}

func (e *errWriter) write(p []byte) {
	if e.err != nil || len(p) == 0 {
		return
	}

	_, e.err = e.w.Write(p)
}
