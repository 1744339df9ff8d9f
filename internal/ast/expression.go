package ast

import "github.com/gnoswap-labs/elmreview/internal/source"

// Expression is a sum type over every expression kind spec.md §3 names.
type Expression interface {
	Range() source.Range
	expressionNode()
}

// InfixDirection controls which order an OperatorApplication's children are
// visited in (spec.md §4.4): left-associative visits [left, right],
// right-associative visits [right, left], non-associative visits
// [left, right].
type InfixDirection int

const (
	LeftAssociative InfixDirection = iota
	RightAssociative
	NonAssociative
)

// --- composite expressions -------------------------------------------------

type Application struct {
	NodeRange source.Range
	Operands  []Expression
}

func (e *Application) Range() source.Range { return e.NodeRange }
func (e *Application) expressionNode()     {}

type IfBlock struct {
	NodeRange  source.Range
	Cond, Then, Else Expression
}

func (e *IfBlock) Range() source.Range { return e.NodeRange }
func (e *IfBlock) expressionNode()     {}

// LetBinding is either a LetFunction or a LetDestructuring.
type LetBinding interface {
	Range() source.Range
	letBindingNode()
}

type LetFunction struct {
	NodeRange source.Range
	Name      string
	Arguments []Pattern
	Body      Expression
}

func (b *LetFunction) Range() source.Range { return b.NodeRange }
func (b *LetFunction) letBindingNode()     {}

type LetDestructuring struct {
	NodeRange source.Range
	Pattern   Pattern
	RHS       Expression
}

func (b *LetDestructuring) Range() source.Range { return b.NodeRange }
func (b *LetDestructuring) letBindingNode()     {}

// BindingExpression returns the expression a LetBinding contains: the body
// of a LetFunction, or the RHS of a LetDestructuring.
func BindingExpression(b LetBinding) Expression {
	switch b := b.(type) {
	case *LetFunction:
		return b.Body
	case *LetDestructuring:
		return b.RHS
	default:
		return nil
	}
}

type LetExpression struct {
	NodeRange   source.Range
	Declarations []LetBinding
	Body        Expression
}

func (e *LetExpression) Range() source.Range { return e.NodeRange }
func (e *LetExpression) expressionNode()     {}

type CaseBranch struct {
	Pattern Pattern
	Body    Expression
}

type CaseExpression struct {
	NodeRange source.Range
	Scrutinee Expression
	Cases     []CaseBranch
}

func (e *CaseExpression) Range() source.Range { return e.NodeRange }
func (e *CaseExpression) expressionNode()     {}

type Lambda struct {
	NodeRange source.Range
	Arguments []Pattern
	Body      Expression
}

func (e *Lambda) Range() source.Range { return e.NodeRange }
func (e *Lambda) expressionNode()     {}

type TupleExpression struct {
	NodeRange source.Range
	Elements  []Expression
}

func (e *TupleExpression) Range() source.Range { return e.NodeRange }
func (e *TupleExpression) expressionNode()     {}

type ListExpression struct {
	NodeRange source.Range
	Elements  []Expression
}

func (e *ListExpression) Range() source.Range { return e.NodeRange }
func (e *ListExpression) expressionNode()     {}

// RecordField is one `name = value` pair inside a record literal or update.
type RecordField struct {
	FieldRange source.Range
	Name       string
	Value      Expression
}

type RecordExpression struct {
	NodeRange source.Range
	Fields    []RecordField
}

func (e *RecordExpression) Range() source.Range { return e.NodeRange }
func (e *RecordExpression) expressionNode()     {}

// RecordUpdateExpression is `{ recordName | field = value, ... }`.
// RecordName is the identifier being updated; it is not an expression child.
type RecordUpdateExpression struct {
	NodeRange  source.Range
	RecordName string
	Updates    []RecordField
}

func (e *RecordUpdateExpression) Range() source.Range { return e.NodeRange }
func (e *RecordUpdateExpression) expressionNode()     {}

type ParenthesizedExpression struct {
	NodeRange source.Range
	Inner     Expression
}

func (e *ParenthesizedExpression) Range() source.Range { return e.NodeRange }
func (e *ParenthesizedExpression) expressionNode()     {}

type OperatorApplication struct {
	NodeRange source.Range
	Operator  string
	Direction InfixDirection
	Left      Expression
	Right     Expression
}

func (e *OperatorApplication) Range() source.Range { return e.NodeRange }
func (e *OperatorApplication) expressionNode()     {}

// RecordAccess is `record.field`; Field is not an expression child.
type RecordAccess struct {
	NodeRange source.Range
	Record    Expression
	Field     string
}

func (e *RecordAccess) Range() source.Range { return e.NodeRange }
func (e *RecordAccess) expressionNode()     {}

type Negation struct {
	NodeRange source.Range
	Inner     Expression
}

func (e *Negation) Range() source.Range { return e.NodeRange }
func (e *Negation) expressionNode()     {}

// --- leaves ------------------------------------------------------------

type IntegerLiteral struct {
	NodeRange source.Range
	Value     int
}

func (e *IntegerLiteral) Range() source.Range { return e.NodeRange }
func (e *IntegerLiteral) expressionNode()     {}

type FloatLiteral struct {
	NodeRange source.Range
	Value     float64
}

func (e *FloatLiteral) Range() source.Range { return e.NodeRange }
func (e *FloatLiteral) expressionNode()     {}

type HexLiteral struct {
	NodeRange source.Range
	Value     int64
}

func (e *HexLiteral) Range() source.Range { return e.NodeRange }
func (e *HexLiteral) expressionNode()     {}

type CharLiteral struct {
	NodeRange source.Range
	Value     rune
}

func (e *CharLiteral) Range() source.Range { return e.NodeRange }
func (e *CharLiteral) expressionNode()     {}

type StringLiteral struct {
	NodeRange source.Range
	Value     string
}

func (e *StringLiteral) Range() source.Range { return e.NodeRange }
func (e *StringLiteral) expressionNode()     {}

type UnitExpression struct {
	NodeRange source.Range
}

func (e *UnitExpression) Range() source.Range { return e.NodeRange }
func (e *UnitExpression) expressionNode()     {}

// FunctionOrValue is a bare reference: `foo`, `Module.foo`, or a constructor.
type FunctionOrValue struct {
	NodeRange  source.Range
	ModuleName []string
	Name       string
}

func (e *FunctionOrValue) Range() source.Range { return e.NodeRange }
func (e *FunctionOrValue) expressionNode()     {}

type PrefixOperator struct {
	NodeRange source.Range
	Operator  string
}

func (e *PrefixOperator) Range() source.Range { return e.NodeRange }
func (e *PrefixOperator) expressionNode()     {}

// RecordAccessFunction is the `.field` accessor-as-function shorthand.
type RecordAccessFunction struct {
	NodeRange source.Range
	Field     string
}

func (e *RecordAccessFunction) Range() source.Range { return e.NodeRange }
func (e *RecordAccessFunction) expressionNode()     {}

type GLSLExpression struct {
	NodeRange source.Range
	Source    string
}

func (e *GLSLExpression) Range() source.Range { return e.NodeRange }
func (e *GLSLExpression) expressionNode()     {}
