package source_test

import (
	"testing"

	"github.com/gnoswap-labs/elmreview/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(row, col int) source.Position { return source.Position{Row: row, Column: col} }
func rng(sr, sc, er, ec int) source.Range {
	return source.Range{Start: pos(sr, sc), End: pos(er, ec)}
}

func TestCompare(t *testing.T) {
	require.Equal(t, -1, source.Compare(pos(1, 1), pos(1, 2)))
	require.Equal(t, -1, source.Compare(pos(1, 5), pos(2, 1)))
	require.Equal(t, 0, source.Compare(pos(3, 3), pos(3, 3)))
	require.Equal(t, 1, source.Compare(pos(2, 1), pos(1, 99)))
}

func TestCollideTouchingRangesDoNotCollide(t *testing.T) {
	a := rng(1, 1, 1, 5)
	b := rng(1, 5, 1, 10)
	assert.False(t, source.Collide(a, b))
	assert.False(t, source.Collide(b, a))
}

func TestCollideOverlapping(t *testing.T) {
	a := rng(1, 1, 1, 10)
	b := rng(1, 5, 1, 15)
	assert.True(t, source.Collide(a, b))
}

func TestCollideZeroLengthNeverCollides(t *testing.T) {
	insertion := rng(1, 5, 1, 5)
	other := rng(1, 1, 1, 10)
	assert.False(t, source.Collide(insertion, other))
	assert.False(t, source.Collide(other, insertion))
	assert.False(t, source.Collide(insertion, insertion))
}

func TestMergeRangesCommutativeAndIdempotent(t *testing.T) {
	a := rng(1, 1, 2, 1)
	b := rng(1, 5, 3, 1)
	assert.Equal(t, source.MergeRanges(a, b), source.MergeRanges(b, a))
	assert.Equal(t, a, source.MergeRanges(a, a))

	merged := source.MergeRanges(a, b)
	assert.Equal(t, pos(1, 1), merged.Start)
	assert.Equal(t, pos(3, 1), merged.End)
}

func TestSortByStartDescending(t *testing.T) {
	ranges := []source.Range{rng(1, 1, 1, 2), rng(3, 1, 3, 2), rng(2, 1, 2, 2)}
	sorted := source.SortByStartDescending(ranges)
	require.Len(t, sorted, 3)
	assert.Equal(t, pos(3, 1), sorted[0].Start)
	assert.Equal(t, pos(2, 1), sorted[1].Start)
	assert.Equal(t, pos(1, 1), sorted[2].Start)
}

func TestCompareForDiagnostics(t *testing.T) {
	a := rng(1, 1, 1, 5)
	b := rng(1, 1, 1, 10)
	assert.True(t, source.CompareForDiagnostics(a, b) < 0)
	assert.Equal(t, 0, source.CompareForDiagnostics(a, a))
}
