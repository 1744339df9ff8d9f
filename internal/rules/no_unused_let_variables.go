package rules

import (
	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/rule"
)

// NoUnusedLetVariables flags let-bound names that are never referenced
// anywhere in the let expression's own body or sibling bindings. Each
// function declaration is its own self-contained scope, so the rule does
// its own short recursive walk from inside a single declaration visitor
// rather than threading state through the framework's context — the
// visitor contract does not mandate that every rule use the context slot.
// Only names bound by let-functions are checked; names bound by a
// let-destructuring pattern are not.
func NoUnusedLetVariables() rule.Rule {
	schema := rule.WithInitialContext(rule.NewSchema("NoUnusedLetVariables"), struct{}{})
	schema.WithSimpleDeclarationVisitor(func(d ast.Declaration) []diagnostic.Diagnostic {
		fn, ok := d.(*ast.FunctionDeclaration)
		if !ok || fn.Body == nil {
			return nil
		}
		return findUnusedLetVariables(fn.Body)
	})
	return schema.Build()
}

func findUnusedLetVariables(expr ast.Expression) []diagnostic.Diagnostic {
	var diags []diagnostic.Diagnostic
	let, ok := expr.(*ast.LetExpression)
	if ok {
		used := map[string]bool{}
		collectReferencedNames(let.Body, used)
		for _, binding := range let.Declarations {
			collectReferencedNames(ast.BindingExpression(binding), used)
		}
		for _, binding := range let.Declarations {
			fn, ok := binding.(*ast.LetFunction)
			if !ok {
				continue
			}
			if !used[fn.Name] {
				diags = append(diags, diagnostic.New(
					"`"+fn.Name+"` is never used",
					[]string{"A let-bound name that nothing refers to is dead code."},
					fn.Range(),
				))
			}
		}
	}

	for _, child := range expressionDescendants(expr) {
		diags = append(diags, findUnusedLetVariables(child)...)
	}
	return diags
}

// collectReferencedNames gathers every bare (unqualified) identifier
// referenced anywhere within expr.
func collectReferencedNames(expr ast.Expression, out map[string]bool) {
	if expr == nil {
		return
	}
	if fov, ok := expr.(*ast.FunctionOrValue); ok && len(fov.ModuleName) == 0 {
		out[fov.Name] = true
	}
	for _, child := range expressionDescendants(expr) {
		collectReferencedNames(child, out)
	}
}

// expressionDescendants returns the same children as the driver's own
// internal/rule expressionChildren, so this rule's local walk agrees with
// the framework's notion of "contained expression". The order differs in
// two cases: a let expression yields its body before its bindings, and an
// operator application always yields left before right.
func expressionDescendants(expr ast.Expression) []ast.Expression {
	switch e := expr.(type) {
	case *ast.Application:
		return e.Operands
	case *ast.ListExpression:
		return e.Elements
	case *ast.TupleExpression:
		return e.Elements
	case *ast.RecordExpression:
		out := make([]ast.Expression, len(e.Fields))
		for i, f := range e.Fields {
			out[i] = f.Value
		}
		return out
	case *ast.RecordUpdateExpression:
		out := make([]ast.Expression, len(e.Updates))
		for i, f := range e.Updates {
			out[i] = f.Value
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
		out := []ast.Expression{e.Body}
		for _, b := range e.Declarations {
			if bound := ast.BindingExpression(b); bound != nil {
				out = append(out, bound)
			}
		}
		return out
	case *ast.CaseExpression:
		out := []ast.Expression{e.Scrutinee}
		for _, branch := range e.Cases {
			out = append(out, branch.Body)
		}
		return out
	case *ast.Lambda:
		return []ast.Expression{e.Body}
	case *ast.OperatorApplication:
		return []ast.Expression{e.Left, e.Right}
	default:
		return nil
	}
}
