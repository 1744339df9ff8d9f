package ast

import "github.com/gnoswap-labs/elmreview/internal/source"

// Declaration is a sum type over the six declaration kinds spec.md §3 names.
// Only FunctionDeclaration and DestructuringDeclaration contain an
// expression the driver recurses into; the rest expose none.
type Declaration interface {
	Range() source.Range
	declarationNode()
}

// FunctionDeclaration is `name arg1 arg2 = <body>` (or `name : Type`
// annotations folded in — annotations are not modeled, only the body that
// the driver needs to walk).
type FunctionDeclaration struct {
	NodeRange source.Range
	Name      string
	Arguments []Pattern
	Body      Expression
}

func (d *FunctionDeclaration) Range() source.Range { return d.NodeRange }
func (d *FunctionDeclaration) declarationNode()    {}

// TypeAliasDeclaration has no expression children.
type TypeAliasDeclaration struct {
	NodeRange source.Range
	Name      string
}

func (d *TypeAliasDeclaration) Range() source.Range { return d.NodeRange }
func (d *TypeAliasDeclaration) declarationNode()    {}

// CustomTypeDeclaration has no expression children.
type CustomTypeDeclaration struct {
	NodeRange    source.Range
	Name         string
	Constructors []string
}

func (d *CustomTypeDeclaration) Range() source.Range { return d.NodeRange }
func (d *CustomTypeDeclaration) declarationNode()    {}

// PortDeclaration has no expression children.
type PortDeclaration struct {
	NodeRange source.Range
	Name      string
}

func (d *PortDeclaration) Range() source.Range { return d.NodeRange }
func (d *PortDeclaration) declarationNode()    {}

// InfixDeclaration has no expression children.
type InfixDeclaration struct {
	NodeRange   source.Range
	Operator    string
	Direction   InfixDirection
	Precedence  int
	FunctionRef string
}

func (d *InfixDeclaration) Range() source.Range { return d.NodeRange }
func (d *InfixDeclaration) declarationNode()    {}

// DestructuringDeclaration is `pattern = <rhs>` at module scope.
type DestructuringDeclaration struct {
	NodeRange source.Range
	Pattern   Pattern
	RHS       Expression
}

func (d *DestructuringDeclaration) Range() source.Range { return d.NodeRange }
func (d *DestructuringDeclaration) declarationNode()    {}

// ContainedExpressions returns the expression(s) directly contained by a
// declaration, per spec.md §4.4 step 6: the body for a function
// declaration, the RHS for a destructuring declaration, none otherwise.
func ContainedExpressions(d Declaration) []Expression {
	switch d := d.(type) {
	case *FunctionDeclaration:
		if d.Body == nil {
			return nil
		}
		return []Expression{d.Body}
	case *DestructuringDeclaration:
		if d.RHS == nil {
			return nil
		}
		return []Expression{d.RHS}
	default:
		return nil
	}
}
