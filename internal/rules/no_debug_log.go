// Package rules holds the canonical rules shipped alongside the framework:
// small, direct clients of internal/rule that exist to exercise the
// Schema/traversal contract end to end (spec.md §8 scenarios 1 and 2), the
// way gnoverse-tlin's internal/lints package ships a handful of concrete
// checks alongside its own rule interface.
package rules

import (
	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/rule"
)

// NoDebugLog flags every call site that references Debug.log. It needs no
// context beyond the expression it is looking at, so it is built with the
// simple (no-context) visitor adapter.
func NoDebugLog() rule.Rule {
	schema := rule.WithInitialContext(rule.NewSchema("NoDebugLog"), struct{}{})
	schema.WithSimpleExpressionVisitor(func(e ast.Expression) []diagnostic.Diagnostic {
		fov, ok := e.(*ast.FunctionOrValue)
		if !ok || !isDebugLog(fov) {
			return nil
		}
		d := diagnostic.New(
			"Forbidden use of Debug.log",
			[]string{"Debug.log calls must not reach production code."},
			fov.Range(),
		)
		return []diagnostic.Diagnostic{d}
	})
	return schema.Build()
}

func isDebugLog(fov *ast.FunctionOrValue) bool {
	return fov.Name == "log" && len(fov.ModuleName) == 1 && fov.ModuleName[0] == "Debug"
}
