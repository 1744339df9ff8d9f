// Package ast defines the AST contract the traversal driver depends on:
// the external parser is a black box, but whatever it produces must take
// this shape (spec.md §3). Every node carries a Range.
package ast

import "github.com/gnoswap-labs/elmreview/internal/source"

// ModuleKind distinguishes the module-definition flavors. The driver and
// the framework treat them identically; only the module name matters.
type ModuleKind int

const (
	NormalModule ModuleKind = iota
	PortModule
	EffectModule
)

// Module is the file's module-definition node. Its declared name path is
// available regardless of which module flavor it is.
type Module struct {
	NodeRange source.Range
	Kind      ModuleKind
	Name      []string // non-empty sequence of identifier segments
	Exposing  Exposing
}

func (m *Module) Range() source.Range { return m.NodeRange }

// Exposing is the module's exposing-list; ExposesAll covers `exposing (..)`.
type Exposing struct {
	ExposesAll bool
	Names      []string
}

// Import is one import statement.
type Import struct {
	NodeRange   source.Range
	ModuleName  []string
	Alias       []string // nil when no `as` clause
	ExposesAll  bool
	ExposedVals []string
}

func (i *Import) Range() source.Range { return i.NodeRange }

// File is the parsed representation of one source file: the whole of the
// AST contract the traversal driver and every rule operate on.
type File struct {
	ModuleDefinition *Module
	Imports          []*Import
	Declarations     []Declaration
}

// Pattern is deliberately minimal: the driver never recurses into patterns
// (they are not expression children per spec.md §4.4), so rules that need
// pattern structure inspect Text themselves. Source still carries a Range
// so diagnostics can point at a pattern.
type Pattern struct {
	NodeRange source.Range
	Text      string
}

func (p Pattern) Range() source.Range { return p.NodeRange }
