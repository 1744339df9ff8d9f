package rules

import (
	"sort"

	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/rule"
	"github.com/gnoswap-labs/elmreview/internal/source"
)

// constructorUsage is the context NoUnusedConstructors threads across the
// whole file: every constructor a custom type declares, and every name
// referenced anywhere an expression is visited. Unlike NoDebugLog and
// NoUnusedLetVariables, this check is inherently module-wide — a
// constructor declared in one declaration can be used in any other — so it
// is built on the context-carrying visitors rather than the simple
// adapters, and reports through WithFinalEvaluation once the whole file
// has been seen.
type constructorUsage struct {
	declared map[string]source.Range
	used     map[string]bool
}

// NoUnusedConstructors flags custom type constructors that are declared but
// never referenced as a value anywhere in the module.
func NoUnusedConstructors() rule.Rule {
	schema := rule.WithInitialContext(rule.NewSchema("NoUnusedConstructors"), constructorUsage{})

	// The declaration-list visitor runs once per analysis, before any
	// declaration or expression visitor, so each analysis starts from its
	// own fresh maps instead of sharing (and racing on) one pair.
	schema.WithDeclarationListVisitor(func(_ []ast.Declaration, _ constructorUsage) ([]diagnostic.Diagnostic, constructorUsage) {
		return nil, constructorUsage{declared: map[string]source.Range{}, used: map[string]bool{}}
	})

	schema.WithDeclarationVisitor(func(d ast.Declaration, evt rule.Event, ctx constructorUsage) ([]diagnostic.Diagnostic, constructorUsage) {
		if evt != rule.OnEnter {
			return nil, ctx
		}
		custom, ok := d.(*ast.CustomTypeDeclaration)
		if !ok {
			return nil, ctx
		}
		for _, ctor := range custom.Constructors {
			ctx.declared[ctor] = custom.Range()
		}
		return nil, ctx
	})

	schema.WithExpressionVisitor(func(e ast.Expression, evt rule.Event, ctx constructorUsage) ([]diagnostic.Diagnostic, constructorUsage) {
		if evt != rule.OnEnter {
			return nil, ctx
		}
		if fov, ok := e.(*ast.FunctionOrValue); ok {
			ctx.used[fov.Name] = true
		}
		return nil, ctx
	})

	schema.WithFinalEvaluation(func(ctx constructorUsage) []diagnostic.Diagnostic {
		var diags []diagnostic.Diagnostic
		for name, rng := range ctx.declared {
			if ctx.used[name] {
				continue
			}
			diags = append(diags, diagnostic.New(
				"`"+name+"` is never used",
				[]string{"A constructor that nothing constructs or pattern-matches on is dead code."},
				rng,
			))
		}
		// map iteration order is randomized per run; sort so the rule's
		// output is deterministic the way spec.md requires, independent of
		// the lint engine's own final sort.
		sort.Slice(diags, func(i, j int) bool {
			return source.CompareForDiagnostics(diags[i].Range, diags[j].Range) < 0
		})
		return diags
	})

	return schema.Build()
}
