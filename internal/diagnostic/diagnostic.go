// Package diagnostic holds the rule-level diagnostic model (spec.md §3/§4.2).
// A Diagnostic is what a rule's visitors accumulate; the lint engine wraps
// it with rule/module identity before handing it to a caller.
package diagnostic

import (
	"github.com/gnoswap-labs/elmreview/internal/fix"
	"github.com/gnoswap-labs/elmreview/internal/source"
)

// Diagnostic is a single reported problem at a source range, with an
// optional list of machine-applicable fixes.
type Diagnostic struct {
	Message string
	Details []string
	Range   source.Range
	Fixes   []fix.Fix
}

// New builds a Diagnostic with no fixes. Details must be non-empty per
// spec.md §3's invariant; callers are responsible for that, this
// constructor does not validate it (mirrors the source's unchecked
// `newDiagnostic`, which assumes well-formed callers).
func New(message string, details []string, r source.Range) Diagnostic {
	return Diagnostic{Message: message, Details: details, Range: r}
}

// WithFixes returns a copy of d with fixes set. An empty slice is
// normalized to nil ("no fixes"), matching spec.md §4.2.
func WithFixes(d Diagnostic, fixes []fix.Fix) Diagnostic {
	if len(fixes) == 0 {
		d.Fixes = nil
		return d
	}
	d.Fixes = fixes
	return d
}
