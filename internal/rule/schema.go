package rule

import (
	"fmt"

	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/project"
)

// Visitor function shapes. Each context-carrying visitor receives the
// current context and returns (diagnostics, next context); the driver
// threads the returned context into the next call.
type (
	ModuleDefinitionVisitor[C any] func(*ast.Module, C) ([]diagnostic.Diagnostic, C)
	ImportVisitor[C any]           func(*ast.Import, C) ([]diagnostic.Diagnostic, C)
	DeclarationListVisitor[C any]  func([]ast.Declaration, C) ([]diagnostic.Diagnostic, C)
	DeclarationVisitor[C any]      func(ast.Declaration, Event, C) ([]diagnostic.Diagnostic, C)
	ExpressionVisitor[C any]       func(ast.Expression, Event, C) ([]diagnostic.Diagnostic, C)
	ElmJSONVisitor[C any]          func(*project.ElmJSON, C) ([]diagnostic.Diagnostic, C)
	FinalEvaluation[C any]         func(C) []diagnostic.Diagnostic
)

// Simple visitor function shapes: no context in, no context out. The
// builder adapts these into the context-carrying shapes above by
// threading the context through unchanged.
type (
	SimpleModuleDefinitionVisitor func(*ast.Module) []diagnostic.Diagnostic
	SimpleImportVisitor           func(*ast.Import) []diagnostic.Diagnostic
	SimpleDeclarationVisitor      func(ast.Declaration) []diagnostic.Diagnostic
	SimpleExpressionVisitor       func(ast.Expression) []diagnostic.Diagnostic
)

// UnconfiguredSchema is a freshly named schema with no context type and no
// visitors. Its only escape hatch is WithInitialContext; it has no method
// set of its own, so a caller cannot install a visitor before fixing the
// context type — the ordering spec.md §4.3/§9 requires is enforced by the
// type system rather than a runtime check.
type UnconfiguredSchema struct {
	name string
}

// NewSchema starts building a rule named name. name must be non-empty and
// stable for the rule's lifetime (spec.md §3's invariant on Rule.name).
func NewSchema(name string) *UnconfiguredSchema {
	return &UnconfiguredSchema{name: name}
}

// WithInitialContext installs a typed initial context, fixing the
// schema's context type for every subsequent visitor. It is a free
// function rather than a method because Go methods cannot introduce their
// own type parameter independent of the receiver's — this is the
// mechanism, not a style choice, behind the "only right after NewSchema"
// rule in spec.md §4.3.
func WithInitialContext[C any](s *UnconfiguredSchema, initial C) *Schema[C] {
	return &Schema[C]{name: s.name, initialContext: initial}
}

// Schema is a schema under construction, fixed to context type C. Build it
// incrementally with the With* methods, then seal it with Build.
type Schema[C any] struct {
	name                    string
	initialContext          C
	moduleDefinitionVisitor ModuleDefinitionVisitor[C]
	importVisitor           ImportVisitor[C]
	declarationListVisitor  DeclarationListVisitor[C]
	declarationVisitor      DeclarationVisitor[C]
	expressionVisitor       ExpressionVisitor[C]
	elmJSONVisitor          ElmJSONVisitor[C]
	finalEvaluation         FinalEvaluation[C]
	visitorsInstalled       int
}

func (s *Schema[C]) WithSimpleModuleDefinitionVisitor(fn SimpleModuleDefinitionVisitor) *Schema[C] {
	s.moduleDefinitionVisitor = func(m *ast.Module, ctx C) ([]diagnostic.Diagnostic, C) {
		return fn(m), ctx
	}
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithSimpleImportVisitor(fn SimpleImportVisitor) *Schema[C] {
	s.importVisitor = func(i *ast.Import, ctx C) ([]diagnostic.Diagnostic, C) {
		return fn(i), ctx
	}
	s.visitorsInstalled++
	return s
}

// WithSimpleDeclarationVisitor fires only on OnEnter (spec.md §4.3/§9).
func (s *Schema[C]) WithSimpleDeclarationVisitor(fn SimpleDeclarationVisitor) *Schema[C] {
	s.declarationVisitor = func(d ast.Declaration, evt Event, ctx C) ([]diagnostic.Diagnostic, C) {
		if evt != OnEnter {
			return nil, ctx
		}
		return fn(d), ctx
	}
	s.visitorsInstalled++
	return s
}

// WithSimpleExpressionVisitor fires only on OnEnter (spec.md §4.3/§9).
func (s *Schema[C]) WithSimpleExpressionVisitor(fn SimpleExpressionVisitor) *Schema[C] {
	s.expressionVisitor = func(e ast.Expression, evt Event, ctx C) ([]diagnostic.Diagnostic, C) {
		if evt != OnEnter {
			return nil, ctx
		}
		return fn(e), ctx
	}
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithModuleDefinitionVisitor(fn ModuleDefinitionVisitor[C]) *Schema[C] {
	s.moduleDefinitionVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithImportVisitor(fn ImportVisitor[C]) *Schema[C] {
	s.importVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithDeclarationListVisitor(fn DeclarationListVisitor[C]) *Schema[C] {
	s.declarationListVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithDeclarationVisitor(fn DeclarationVisitor[C]) *Schema[C] {
	s.declarationVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithExpressionVisitor(fn ExpressionVisitor[C]) *Schema[C] {
	s.expressionVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithElmJSONVisitor(fn ElmJSONVisitor[C]) *Schema[C] {
	s.elmJSONVisitor = fn
	s.visitorsInstalled++
	return s
}

func (s *Schema[C]) WithFinalEvaluation(fn FinalEvaluation[C]) *Schema[C] {
	s.finalEvaluation = fn
	s.visitorsInstalled++
	return s
}

// Build seals the schema into an immutable Rule. It panics if name is
// empty or if no visitor was ever installed — both are programmer errors
// at rule-construction time, not runtime conditions a caller should have
// to check for on every analysis (spec.md §4.3/§7 leaves the choice
// between a static and a dynamic guard to the implementer; this mirrors
// the source's own Debug.todo-on-misuse behavior).
func (s *Schema[C]) Build() Rule {
	if s.name == "" {
		panic("rule: schema has an empty name")
	}
	if s.visitorsInstalled == 0 {
		panic(fmt.Sprintf("rule: schema %q has no visitors installed", s.name))
	}

	sealed := *s // copy: the Rule's analyzer closes over an independent snapshot
	return Rule{
		name: sealed.name,
		analyzer: func(p *project.Project, f *ast.File) []diagnostic.Diagnostic {
			return run(&sealed, p, f)
		},
	}
}
