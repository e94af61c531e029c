// Package render turns capture annotations into styled,
// line-bounded HTML.
//
// Captures come from an external grammar layer
// (see the lex package for one backed by Chroma)
// as byte ranges tagged with dotted scope names.
// Intersecting ranges must nest; they never partially overlap.
// The renderer resolves each scope against a theme
// and emits escaped text wrapped in nested class-tagged spans,
// split strictly at line boundaries.
package render

import (
	"errors"
	"fmt"
	"sort"

	"braces.dev/errtrace"
	"go.abhg.dev/treepaint/internal/theme"
)

// Errors reported for invalid capture input.
// They fail the render call wholesale; no partial output is returned.
var (
	// ErrRange reports a capture outside the source buffer
	// or with its end before its start.
	ErrRange = errors.New("capture range out of bounds")

	// ErrPartialOverlap reports two captures that intersect
	// without one containing the other.
	ErrPartialOverlap = errors.New("captures partially overlap")

	// ErrScope reports a capture with a malformed scope name.
	ErrScope = errors.New("malformed capture scope")
)

// Capture tags the byte range [Start, End) of a source buffer
// with a dotted scope name.
//
// Priority breaks ties between captures covering the same range:
// the higher wins, then the later declared.
// Declaration order is the capture's position in the input slice.
type Capture struct {
	Start, End int
	Scope      string
	Priority   int
}

// normalize validates and orders captures for event building:
// sorted so containing ranges precede contained ones,
// same-range duplicates collapsed to their winner,
// empty ranges dropped,
// and the containment invariant checked.
//
// A violation is the caller's bug, not ours to repair:
// silently fixing overlap would hide upstream query mistakes.
func normalize(srcLen int, captures []Capture) ([]Capture, error) {
	type entry struct {
		Capture
		ord int
	}

	entries := make([]entry, 0, len(captures))
	for i, c := range captures {
		if c.Start < 0 || c.End < c.Start || c.End > srcLen {
			return nil, errtrace.Wrap(fmt.Errorf("%w: [%d, %d) in %d bytes", ErrRange, c.Start, c.End, srcLen))
		}
		if _, err := theme.ParseScope(c.Scope); err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %v", ErrScope, err))
		}
		if c.Start == c.End {
			continue
		}
		entries = append(entries, entry{Capture: c, ord: i})
	}

	// Outer (longer) ranges first at equal start,
	// declaration order for full ties.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.ord < b.ord
	})

	out := make([]Capture, 0, len(entries))
	for _, e := range entries {
		if n := len(out); n > 0 && out[n-1].Start == e.Start && out[n-1].End == e.End {
			// Same-range duplicate: higher priority wins,
			// later declaration breaks the tie.
			// The sort left later captures after earlier ones,
			// so >= keeps the right winner.
			if e.Priority >= out[n-1].Priority {
				out[n-1] = e.Capture
			}
			continue
		}
		out = append(out, e.Capture)
	}

	// Containment check: sorted order means a stack suffices.
	var stack []Capture
	for _, c := range out {
		for len(stack) > 0 && stack[len(stack)-1].End <= c.Start {
			stack = stack[:len(stack)-1]
		}
		if top := len(stack) - 1; top >= 0 && c.End > stack[top].End {
			return nil, errtrace.Wrap(fmt.Errorf("%w: [%d, %d) crosses [%d, %d)",
				ErrPartialOverlap, c.Start, c.End, stack[top].Start, stack[top].End))
		}
		stack = append(stack, c)
	}

	return out, nil
}
