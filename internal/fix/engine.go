package fix

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gnoswap-labs/elmreview/internal/source"
)

// ErrUnchanged is returned when applying a fix batch would produce text
// identical to the input (spec.md §4.5 step 7 / §7).
var ErrUnchanged = errors.New("fix: result is unchanged from input")

// ErrCollision is returned when two fixes in the batch have overlapping
// ranges (spec.md §4.5 step 2).
var ErrCollision = errors.New("fix: fixes have colliding ranges")

// InvalidSourceError is returned when the fixed text fails to re-parse
// (spec.md §4.5 step 8). Source holds the rewritten-but-invalid text, so a
// caller that wants to inspect what went wrong still can; it is never
// adopted as the result.
type InvalidSourceError struct {
	Source string
}

func (e *InvalidSourceError) Error() string {
	return "fix: rewritten source does not parse"
}

// ParseFunc is the only external dependency the fix engine has: a way to
// validate the rewritten text by attempting to parse it.
type ParseFunc func(source string) error

// Apply applies an unordered batch of fixes to source and returns the
// rewritten text, or one of ErrUnchanged, ErrCollision, or
// *InvalidSourceError. fixes may be supplied in any order: the result does
// not depend on input order when the fixes are pairwise non-overlapping.
func Apply(fixes []Fix, src string, parse ParseFunc) (string, error) {
	if err := checkCollisions(fixes); err != nil {
		return "", err
	}

	ordered := sortDescending(fixes)
	lines := strings.Split(src, "\n")

	for _, f := range ordered {
		lines = applyOne(f, lines)
	}

	result := strings.Join(lines, "\n")
	if result == src {
		return "", ErrUnchanged
	}

	if err := parse(result); err != nil {
		return "", &InvalidSourceError{Source: result}
	}

	return result, nil
}

func checkCollisions(fixes []Fix) error {
	for i := 0; i < len(fixes); i++ {
		for j := i + 1; j < len(fixes); j++ {
			if source.Collide(fixes[i].Span(), fixes[j].Span()) {
				return ErrCollision
			}
		}
	}
	return nil
}

// sortDescending orders fixes by start position, latest first, so that
// applying one never invalidates the positions an unapplied one refers to.
func sortDescending(fixes []Fix) []Fix {
	out := make([]Fix, len(fixes))
	copy(out, fixes)
	sort.SliceStable(out, func(i, j int) bool {
		return source.Before(out[j].Span().Start, out[i].Span().Start)
	})
	return out
}

func applyOne(f Fix, lines []string) []string {
	r := f.Span()
	startRow, endRow := r.Start.Row, r.End.Row

	linesBefore := append([]string{}, lines[:startRow-1]...)
	linesAfter := append([]string{}, lines[endRow:]...)

	startLine := []rune(lines[startRow-1])
	endLine := []rune(lines[endRow-1])

	prefix := string(runeSlice(startLine, 0, r.Start.Column-1))
	suffix := string(runeSlice(endLine, r.End.Column-1, len(endLine)))

	spliced := strings.Split(prefix+f.Text()+suffix, "\n")

	out := make([]string, 0, len(linesBefore)+len(spliced)+len(linesAfter))
	out = append(out, linesBefore...)
	out = append(out, spliced...)
	out = append(out, linesAfter...)
	return out
}

func runeSlice(r []rune, from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from > to {
		from = to
	}
	return r[from:to]
}

// DescribeResult is a small convenience for CLI/report layers that want a
// one-line summary without re-deriving it from the error type.
func DescribeResult(src string, err error) string {
	var invalid *InvalidSourceError
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, ErrUnchanged):
		return "unchanged"
	case errors.Is(err, ErrCollision):
		return "has colliding fix ranges"
	case errors.As(err, &invalid):
		return "rewritten source is not valid"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
