package source

import "sort"

// Range denotes a character span in source text. End is always >= Start;
// a zero-length range (Start == End) is a legal insertion point.
type Range struct {
	Start Position
	End   Position
}

// Zero reports whether r spans no characters.
func (r Range) Zero() bool {
	return r.Start == r.End
}

// Collide reports whether the open intervals (a.Start, a.End) and
// (b.Start, b.End) share any position. Ranges that only touch at a single
// boundary (a.End == b.Start) do not collide, and a zero-length range never
// collides with anything — both are deliberate, see spec's open question on
// the collision predicate.
func Collide(a, b Range) bool {
	if a.Zero() || b.Zero() {
		return false
	}
	// Open intervals overlap iff each starts strictly before the other ends.
	return Before(a.Start, b.End) && Before(b.Start, a.End)
}

// MergeRanges returns the smallest range containing both a and b.
func MergeRanges(a, b Range) Range {
	start := a.Start
	if Before(b.Start, start) {
		start = b.Start
	}
	end := a.End
	if Before(end, b.End) {
		end = b.End
	}
	return Range{Start: start, End: end}
}

// CompareForDiagnostics orders ranges lexicographically on
// (start.row, start.column, end.row, end.column), the order lint-level
// diagnostics are sorted by.
func CompareForDiagnostics(a, b Range) int {
	if c := Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return Compare(a.End, b.End)
}

// SortByStartDescending returns a copy of ranges ordered by start position,
// latest first, stably. The fix engine applies edits in this order so that
// an earlier (in the list) edit never shifts the positions an unapplied one
// still refers to.
func SortByStartDescending(ranges []Range) []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	sort.SliceStable(out, func(i, j int) bool {
		return Before(out[j].Start, out[i].Start)
	})
	return out
}
