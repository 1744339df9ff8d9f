package rule

import (
	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/project"
)

// run drives one analyzer invocation over f using schema s, per the fixed
// pipeline in spec.md §4.4. It visits every node exactly once per defined
// event and returns diagnostics in traversal order.
func run[C any](s *Schema[C], p *project.Project, f *ast.File) []diagnostic.Diagnostic {
	ctx := s.initialContext
	var all []diagnostic.Diagnostic

	if s.elmJSONVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.elmJSONVisitor(p.ElmJSON(), ctx)
		all = append(all, diags...)
	}

	if s.moduleDefinitionVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.moduleDefinitionVisitor(f.ModuleDefinition, ctx)
		all = append(all, diags...)
	}

	if s.importVisitor != nil {
		for _, imp := range f.Imports {
			var diags []diagnostic.Diagnostic
			diags, ctx = s.importVisitor(imp, ctx)
			all = append(all, diags...)
		}
	}

	if s.declarationListVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.declarationListVisitor(f.Declarations, ctx)
		all = append(all, diags...)
	}

	for _, decl := range f.Declarations {
		var diags []diagnostic.Diagnostic
		diags, ctx = visitDeclaration(s, decl, ctx)
		all = append(all, diags...)
	}

	if s.finalEvaluation != nil {
		all = append(all, s.finalEvaluation(ctx)...)
	}

	return all
}

func visitDeclaration[C any](s *Schema[C], decl ast.Declaration, ctx C) ([]diagnostic.Diagnostic, C) {
	var all []diagnostic.Diagnostic

	if s.declarationVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.declarationVisitor(decl, OnEnter, ctx)
		all = append(all, diags...)
	}

	for _, expr := range ast.ContainedExpressions(decl) {
		var diags []diagnostic.Diagnostic
		diags, ctx = visitExpression(s, expr, ctx)
		all = append(all, diags...)
	}

	if s.declarationVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.declarationVisitor(decl, OnExit, ctx)
		all = append(all, diags...)
	}

	return all, ctx
}

func visitExpression[C any](s *Schema[C], expr ast.Expression, ctx C) ([]diagnostic.Diagnostic, C) {
	var all []diagnostic.Diagnostic

	if s.expressionVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.expressionVisitor(expr, OnEnter, ctx)
		all = append(all, diags...)
	}

	for _, child := range expressionChildren(expr) {
		var diags []diagnostic.Diagnostic
		diags, ctx = visitExpression(s, child, ctx)
		all = append(all, diags...)
	}

	if s.expressionVisitor != nil {
		var diags []diagnostic.Diagnostic
		diags, ctx = s.expressionVisitor(expr, OnExit, ctx)
		all = append(all, diags...)
	}

	return all, ctx
}

// expressionChildren returns expr's children in the traversal order
// spec.md §4.4 specifies. Leaves return nil. OperatorApplication is the
// one deliberately asymmetric case: right-associative operators visit
// [right, left] so evaluation-order-dependent rules see operands in
// semantic order.
func expressionChildren(expr ast.Expression) []ast.Expression {
	switch e := expr.(type) {
	case *ast.Application:
		return e.Operands
	case *ast.ListExpression:
		return e.Elements
	case *ast.TupleExpression:
		return e.Elements
	case *ast.RecordExpression:
		out := make([]ast.Expression, len(e.Fields))
		for i, field := range e.Fields {
			out[i] = field.Value
		}
		return out
	case *ast.RecordUpdateExpression:
		out := make([]ast.Expression, len(e.Updates))
		for i, field := range e.Updates {
			out[i] = field.Value
		}
		return out
	case *ast.ParenthesizedExpression:
		return []ast.Expression{e.Inner}
	case *ast.Negation:
		return []ast.Expression{e.Inner}
	case *ast.RecordAccess:
		return []ast.Expression{e.Record}
	case *ast.IfBlock:
		return []ast.Expression{e.Cond, e.Then, e.Else}
	case *ast.LetExpression:
		out := make([]ast.Expression, 0, len(e.Declarations)+1)
		for _, binding := range e.Declarations {
			if bound := ast.BindingExpression(binding); bound != nil {
				out = append(out, bound)
			}
		}
		return append(out, e.Body)
	case *ast.CaseExpression:
		out := make([]ast.Expression, 0, len(e.Cases)+1)
		out = append(out, e.Scrutinee)
		for _, branch := range e.Cases {
			out = append(out, branch.Body)
		}
		return out
	case *ast.Lambda:
		return []ast.Expression{e.Body}
	case *ast.OperatorApplication:
		if e.Direction == ast.RightAssociative {
			return []ast.Expression{e.Right, e.Left}
		}
		return []ast.Expression{e.Left, e.Right}
	default:
		// Leaves: integer, float, hex, char, string, unit,
		// function-or-value, prefix-operator, record-access-function,
		// GLSL — none have expression children.
		return nil
	}
}
