// Package rule implements the rule framework: a generic, state-carrying
// visitor schema (spec.md §4.3) sealed into an immutable Rule, and the
// pre-/post-order AST traversal driver that runs a sealed schema's
// visitors over a File (spec.md §4.4).
package rule

import (
	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/project"
)

// Event is the traversal moment a declaration/expression visitor fires at.
type Event int

const (
	OnEnter Event = iota
	OnExit
)

// Rule is the sealed, immutable product of a Schema. Its context type is
// erased behind the analyzer closure — a list of Rules is therefore
// heterogeneous in the context type each one privately carries, without
// the list itself needing to be generic.
type Rule struct {
	name     string
	analyzer func(*project.Project, *ast.File) []diagnostic.Diagnostic
}

// Name returns the rule's stable, non-empty name.
func (r Rule) Name() string { return r.name }

// Analyze runs the rule's analyzer against one file.
func (r Rule) Analyze(p *project.Project, f *ast.File) []diagnostic.Diagnostic {
	return r.analyzer(p, f)
}
