package parse

import "github.com/gnoswap-labs/elmreview/internal/ast"

type operatorInfo struct {
	prec int
	dir  ast.InfixDirection
}

// operatorTable is a static approximation of a real project's module-scoped
// fixity declarations (spec.md §3's Open Question on external fixity
// resolution: this stand-in resolves it statically at parse time, so
// PostProcess never needs to revisit associativity — see postprocess.go).
var operatorTable = map[string]operatorInfo{
	"|>": {0, ast.LeftAssociative},
	"<|": {0, ast.RightAssociative},
	"||": {2, ast.RightAssociative},
	"&&": {3, ast.RightAssociative},
	"==": {4, ast.NonAssociative},
	"/=": {4, ast.NonAssociative},
	"<":  {4, ast.NonAssociative},
	">":  {4, ast.NonAssociative},
	"<=": {4, ast.NonAssociative},
	">=": {4, ast.NonAssociative},
	"++": {5, ast.RightAssociative},
	"::": {5, ast.RightAssociative},
	"+":  {6, ast.LeftAssociative},
	"-":  {6, ast.LeftAssociative},
	"*":  {7, ast.LeftAssociative},
	"/":  {7, ast.LeftAssociative},
	"//": {7, ast.LeftAssociative},
	"^":  {8, ast.RightAssociative},
	">>": {9, ast.LeftAssociative},
	"<<": {9, ast.RightAssociative},
}
