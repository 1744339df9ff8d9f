// Package fix implements the textual-edit model and the fix-application
// engine (spec.md §4.5): a Fix is a tagged variant over removal,
// replacement, and insertion; Apply folds a non-overlapping batch of them
// over source text and validates the result by re-parsing.
package fix

import "github.com/gnoswap-labs/elmreview/internal/source"

// Kind tags which variant of Fix a value is.
type Kind int

const (
	Removal Kind = iota
	Replacement
	Insertion
)

// Fix is a single textual edit. Replacement is "" for a Removal. An
// Insertion's Range is always zero-length ([pos, pos]) once resolved via
// Span; callers construct it with NewInsertion instead of touching Range
// directly.
type Fix struct {
	kind        Kind
	rng         source.Range
	replacement string
}

func NewRemoval(r source.Range) Fix {
	return Fix{kind: Removal, rng: r}
}

func NewReplacement(r source.Range, text string) Fix {
	return Fix{kind: Replacement, rng: r, replacement: text}
}

func NewInsertion(p source.Position, text string) Fix {
	return Fix{kind: Insertion, rng: source.Range{Start: p, End: p}, replacement: text}
}

func (f Fix) Kind() Kind { return f.kind }

// Span returns the range this fix applies to. For an Insertion this is
// always the zero-length [pos, pos], per spec.md §4.5 step 1.
func (f Fix) Span() source.Range { return f.rng }

// Text returns the replacement text: "" for a Removal, the inserted text
// for an Insertion, the replacement text for a Replacement.
func (f Fix) Text() string { return f.replacement }
