package parse

import (
	"strconv"

	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/source"
)

// parseExpr implements precedence climbing over operatorTable, so
// associativity and precedence are resolved once, here, rather than
// deferred to a later fixity-resolution pass.
func (p *parser) parseExpr(minPrec int) (ast.Expression, error) {
	left, err := p.parseApplication()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == tokOperator {
		info, ok := operatorTable[p.tok.text]
		if !ok || info.prec < minPrec {
			break
		}
		op := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		nextMin := info.prec + 1
		if info.dir == ast.RightAssociative {
			nextMin = info.prec
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.OperatorApplication{
			NodeRange: source.Range{Start: left.Range().Start, End: right.Range().End},
			Operator:  op,
			Direction: info.dir,
			Left:      left,
			Right:     right,
		}
	}
	return left, nil
}

func (p *parser) startsAtom() bool {
	switch p.tok.kind {
	case tokInt, tokFloat, tokHex, tokChar, tokString, tokLParen, tokLBracket,
		tokLBrace, tokBackslash, tokUpperIdent, tokLowerIdent, tokDot:
		return true
	default:
		return false
	}
}

func (p *parser) parseApplication() (ast.Expression, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	operands := []ast.Expression{first}
	// A token on a later line than the first atom continues the application
	// only when it is indented past that atom's column (a simplified offside
	// rule), so the next binding or case branch is not taken as an argument.
	firstStart := first.Range().Start
	for p.startsAtom() && !p.isKeyword("then") && !p.isKeyword("else") && !p.isKeyword("of") && !p.isKeyword("in") &&
		(p.tok.start.Row == firstStart.Row || p.tok.start.Column > firstStart.Column) {
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.Application{
		NodeRange: source.Range{Start: operands[0].Range().Start, End: operands[len(operands)-1].Range().End},
		Operands:  operands,
	}, nil
}

func (p *parser) parseAtom() (ast.Expression, error) {
	start := p.tok.start

	switch p.tok.kind {
	case tokInt:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		v, _ := strconv.Atoi(text)
		return p.parsePostfix(&ast.IntegerLiteral{NodeRange: source.Range{Start: start, End: p.tok.start}, Value: v})

	case tokFloat:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		v, _ := strconv.ParseFloat(text, 64)
		return &ast.FloatLiteral{NodeRange: source.Range{Start: start, End: p.tok.start}, Value: v}, nil

	case tokHex:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		v, _ := strconv.ParseInt(text[2:], 16, 64)
		return &ast.HexLiteral{NodeRange: source.Range{Start: start, End: p.tok.start}, Value: v}, nil

	case tokChar:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		var r rune
		for _, c := range text {
			r = c
			break
		}
		return &ast.CharLiteral{NodeRange: source.Range{Start: start, End: p.tok.start}, Value: r}, nil

	case tokString:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{NodeRange: source.Range{Start: start, End: p.tok.start}, Value: text}, nil

	case tokDot:
		if err := p.bump(); err != nil {
			return nil, err
		}
		field, err := p.expect(tokLowerIdent, "record accessor field")
		if err != nil {
			return nil, err
		}
		return &ast.RecordAccessFunction{NodeRange: source.Range{Start: start, End: p.tok.start}, Field: field.text}, nil

	case tokBackslash:
		return p.parseLambda(start)

	case tokLParen:
		return p.parseParenAtom(start)

	case tokLBracket:
		return p.parseList(start)

	case tokLBrace:
		return p.parseRecord(start)

	case tokUpperIdent, tokLowerIdent:
		// keywords are lexed as lower-case identifiers
		switch {
		case p.isKeyword("if"):
			return p.parseIf(start)
		case p.isKeyword("let"):
			return p.parseLet(start)
		case p.isKeyword("case"):
			return p.parseCase(start)
		}
		return p.parseIdentExpr(start)

	case tokOperator:
		if p.tok.text == "-" {
			if err := p.bump(); err != nil {
				return nil, err
			}
			inner, err := p.parseAtom()
			if err != nil {
				return nil, err
			}
			return &ast.Negation{NodeRange: source.Range{Start: start, End: inner.Range().End}, Inner: inner}, nil
		}
		return nil, p.errf("unexpected operator %q where an expression was expected", p.tok.text)

	default:
		return nil, p.errf("expected an expression, found %q", p.tok.text)
	}
}

// parsePostfix returns e unchanged. Unary minus is not handled here: a "-"
// where an atom is expected is wrapped in Negation by parseAtom's operator
// case.
func (p *parser) parsePostfix(e ast.Expression) (ast.Expression, error) {
	return e, nil
}

func (p *parser) parseIdentExpr(start source.Position) (ast.Expression, error) {
	var segs []string
	for {
		t := p.tok
		if err := p.bump(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokDot && t.kind == tokUpperIdent {
			segs = append(segs, t.text)
			if err := p.bump(); err != nil {
				return nil, err
			}
			continue
		}
		var fov ast.Expression = &ast.FunctionOrValue{
			NodeRange:  source.Range{Start: start, End: p.tok.start},
			ModuleName: segs,
			Name:       t.text,
		}
		return p.parseFieldAccessChain(fov, start)
	}
}

func (p *parser) parseFieldAccessChain(e ast.Expression, start source.Position) (ast.Expression, error) {
	for p.tok.kind == tokDot {
		if err := p.bump(); err != nil {
			return nil, err
		}
		field, err := p.expect(tokLowerIdent, "record field")
		if err != nil {
			return nil, err
		}
		e = &ast.RecordAccess{NodeRange: source.Range{Start: start, End: p.tok.start}, Record: e, Field: field.text}
	}
	return e, nil
}

func (p *parser) parseLambda(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "\"
		return nil, err
	}
	var args []ast.Pattern
	for p.tok.kind != tokArrow {
		pat, err := p.parseSimplePattern()
		if err != nil {
			return nil, err
		}
		args = append(args, pat)
	}
	if _, err := p.expect(tokArrow, "->"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{NodeRange: source.Range{Start: start, End: body.Range().End}, Arguments: args, Body: body}, nil
}

func (p *parser) parseParenAtom(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "("
		return nil, err
	}
	if p.tok.kind == tokRParen {
		if err := p.bump(); err != nil {
			return nil, err
		}
		return &ast.UnitExpression{NodeRange: source.Range{Start: start, End: p.tok.start}}, nil
	}
	if p.tok.kind == tokOperator {
		op := p.tok.text
		if _, ok := operatorTable[op]; ok {
			next, err := p.peekAt(1)
			if err == nil && next.kind == tokRParen {
				if err := p.bump(); err != nil {
					return nil, err
				}
				if err := p.bump(); err != nil {
					return nil, err
				}
				return &ast.PrefixOperator{NodeRange: source.Range{Start: start, End: p.tok.start}, Operator: op}, nil
			}
		}
	}

	first, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokComma {
		elems := []ast.Expression{first}
		for p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return nil, err
			}
			next, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, next)
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return &ast.TupleExpression{NodeRange: source.Range{Start: start, End: p.tok.start}, Elements: elems}, nil
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}
	paren := &ast.ParenthesizedExpression{NodeRange: source.Range{Start: start, End: p.tok.start}, Inner: first}
	return p.parseFieldAccessChain(paren, start)
}

func (p *parser) parseList(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "["
		return nil, err
	}
	var elems []ast.Expression
	for p.tok.kind != tokRBracket {
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(tokRBracket, "]"); err != nil {
		return nil, err
	}
	return &ast.ListExpression{NodeRange: source.Range{Start: start, End: p.tok.start}, Elements: elems}, nil
}

func (p *parser) parseRecord(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "{"
		return nil, err
	}
	if p.tok.kind == tokRBrace {
		if err := p.bump(); err != nil {
			return nil, err
		}
		return &ast.RecordExpression{NodeRange: source.Range{Start: start, End: p.tok.start}}, nil
	}

	// disambiguate `{ name | ... }` (update) from `{ name = ... }` (literal)
	if p.tok.kind == tokLowerIdent {
		next, err := p.peekAt(1)
		if err != nil {
			return nil, err
		}
		if next.kind == tokPipe {
			recordName := p.tok.text
			if err := p.bump(); err != nil { // name
				return nil, err
			}
			if err := p.bump(); err != nil { // "|"
				return nil, err
			}
			fields, err := p.parseRecordFields()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBrace, "}"); err != nil {
				return nil, err
			}
			return &ast.RecordUpdateExpression{
				NodeRange:  source.Range{Start: start, End: p.tok.start},
				RecordName: recordName,
				Updates:    fields,
			}, nil
		}
	}

	fields, err := p.parseRecordFields()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return &ast.RecordExpression{NodeRange: source.Range{Start: start, End: p.tok.start}, Fields: fields}, nil
}

func (p *parser) parseRecordFields() ([]ast.RecordField, error) {
	var fields []ast.RecordField
	for p.tok.kind != tokRBrace {
		fieldStart := p.tok.start
		name, err := p.expect(tokLowerIdent, "record field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEquals, "="); err != nil {
			return nil, err
		}
		value, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RecordField{
			FieldRange: source.Range{Start: fieldStart, End: value.Range().End},
			Name:       name.text,
			Value:      value,
		})
		if p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return nil, err
			}
		}
	}
	return fields, nil
}

func (p *parser) parseIf(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "if"
		return nil, err
	}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	then, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("else"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.IfBlock{NodeRange: source.Range{Start: start, End: els.Range().End}, Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseLet(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "let"
		return nil, err
	}
	var bindings []ast.LetBinding
	for !p.isKeyword("in") {
		b, err := p.parseLetBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	if _, err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.LetExpression{
		NodeRange:    source.Range{Start: start, End: body.Range().End},
		Declarations: bindings,
		Body:         body,
	}, nil
}

func (p *parser) parseLetBinding() (ast.LetBinding, error) {
	start := p.tok.start
	if p.tok.kind == tokLParen || p.tok.kind == tokLBrace {
		pat, err := p.parseSimplePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokEquals, "="); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		return &ast.LetDestructuring{NodeRange: source.Range{Start: start, End: rhs.Range().End}, Pattern: pat, RHS: rhs}, nil
	}

	name, err := p.expect(tokLowerIdent, "let-binding name")
	if err != nil {
		return nil, err
	}
	var args []ast.Pattern
	for p.tok.kind != tokEquals {
		pat, err := p.parseSimplePattern()
		if err != nil {
			return nil, err
		}
		args = append(args, pat)
	}
	if _, err := p.expect(tokEquals, "="); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.LetFunction{
		NodeRange: source.Range{Start: start, End: body.Range().End},
		Name:      name.text,
		Arguments: args,
		Body:      body,
	}, nil
}

func (p *parser) parseCase(start source.Position) (ast.Expression, error) {
	if err := p.bump(); err != nil { // "case"
		return nil, err
	}
	scrutinee, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("of"); err != nil {
		return nil, err
	}

	var branches []ast.CaseBranch
	for p.tok.kind != tokEOF && p.canStartCasePattern() {
		pat, err := p.parseCasePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokArrow, "->"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.CaseBranch{Pattern: pat, Body: body})
	}

	end := start
	if len(branches) > 0 {
		end = branches[len(branches)-1].Body.Range().End
	}
	return &ast.CaseExpression{NodeRange: source.Range{Start: start, End: end}, Scrutinee: scrutinee, Cases: branches}, nil
}

var caseBoundaryKeywords = map[string]bool{
	"else": true, "then": true, "in": true, "of": true, "let": true, "if": true, "case": true,
}

func (p *parser) canStartCasePattern() bool {
	if p.tok.kind == tokLowerIdent && caseBoundaryKeywords[p.tok.text] {
		return false
	}
	switch p.tok.kind {
	case tokLowerIdent, tokUpperIdent, tokLParen, tokLBrace, tokLBracket, tokInt, tokString, tokChar:
		return true
	default:
		return false
	}
}

// parseCasePattern greedily consumes a pattern as raw text up to the
// branch arrow. Patterns are not expression children (spec.md §4.4), so a
// textual representation is sufficient for any rule that inspects them.
func (p *parser) parseCasePattern() (ast.Pattern, error) {
	start := p.tok.start
	var texts []string
	for p.tok.kind != tokArrow && p.tok.kind != tokEOF {
		texts = append(texts, p.tok.text)
		if err := p.bump(); err != nil {
			return ast.Pattern{}, err
		}
	}
	text := ""
	for i, t := range texts {
		if i > 0 {
			text += " "
		}
		text += t
	}
	return ast.Pattern{NodeRange: source.Range{Start: start, End: p.tok.start}, Text: text}, nil
}
