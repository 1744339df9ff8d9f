package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/source"
)

type parser struct {
	lex     *lexer
	tok     token
	lookBuf []token
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.bump(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) bump() error {
	if len(p.lookBuf) > 0 {
		p.tok = p.lookBuf[0]
		p.lookBuf = p.lookBuf[1:]
		return nil
	}
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

// peekAt returns the token n positions ahead of the current one (peekAt(0)
// is equivalent to reading p.tok) without consuming anything, buffering
// whatever it reads so a later bump drains the buffer first.
func (p *parser) peekAt(n int) (token, error) {
	for len(p.lookBuf) < n {
		t, err := p.lex.next()
		if err != nil {
			return token{}, err
		}
		p.lookBuf = append(p.lookBuf, t)
	}
	if n == 0 {
		return p.tok, nil
	}
	return p.lookBuf[n-1], nil
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("parse: %s at %d:%d", fmt.Sprintf(format, args...), p.tok.start.Row, p.tok.start.Column)
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.errf("expected %s, found %q", what, p.tok.text)
	}
	t := p.tok
	if err := p.bump(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (p *parser) isKeyword(text string) bool {
	return p.tok.kind == tokLowerIdent && p.tok.text == text
}

// Parse turns source text into an *ast.File. The lint engine calls it
// directly; the fix engine's Apply (spec.md §4.5) reaches it through
// CheckSyntax, which adapts it to the fix.ParseFunc shape.
func Parse(src string) (*ast.File, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parseFile()
}

// CheckSyntax adapts Parse to the fix.ParseFunc shape used for Apply's
// result validation.
func CheckSyntax(src string) error {
	_, err := Parse(src)
	return err
}

func (p *parser) parseFile() (*ast.File, error) {
	mod, err := p.parseModuleHeader()
	if err != nil {
		return nil, err
	}

	var imports []*ast.Import
	for p.isKeyword("import") {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}

	var decls []ast.Declaration
	for p.tok.kind != tokEOF {
		d, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		if d != nil {
			decls = append(decls, d)
		}
	}

	return &ast.File{ModuleDefinition: mod, Imports: imports, Declarations: decls}, nil
}

func (p *parser) parseModuleHeader() (*ast.Module, error) {
	start := p.tok.start
	kind := ast.NormalModule

	switch {
	case p.isKeyword("port"):
		kind = ast.PortModule
		if err := p.bump(); err != nil {
			return nil, err
		}
	case p.isKeyword("effect"):
		kind = ast.EffectModule
		if err := p.bump(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expectKeyword("module"); err != nil {
		return nil, err
	}

	name, err := p.parseModulePath()
	if err != nil {
		return nil, err
	}

	if kind == ast.EffectModule {
		// `effect module Foo where { ... } exposing (...)`; the where-clause
		// has no bearing on the AST contract, so it is skipped wholesale.
		if p.isKeyword("where") {
			if err := p.bump(); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokLBrace, "{"); err != nil {
				return nil, err
			}
			depth := 1
			for depth > 0 {
				if p.tok.kind == tokEOF {
					return nil, p.errf("unterminated effect where-clause")
				}
				if p.tok.kind == tokLBrace {
					depth++
				} else if p.tok.kind == tokRBrace {
					depth--
				}
				if err := p.bump(); err != nil {
					return nil, err
				}
			}
		}
	}

	if _, err := p.expectKeyword("exposing"); err != nil {
		return nil, err
	}
	exposing, err := p.parseExposing()
	if err != nil {
		return nil, err
	}

	return &ast.Module{
		NodeRange: source.Range{Start: start, End: p.tok.start},
		Kind:      kind,
		Name:      name,
		Exposing:  exposing,
	}, nil
}

func (p *parser) expectKeyword(kw string) (token, error) {
	if !p.isKeyword(kw) {
		return token{}, p.errf("expected %q, found %q", kw, p.tok.text)
	}
	t := p.tok
	return t, p.bump()
}

func (p *parser) parseModulePath() ([]string, error) {
	var segs []string
	t, err := p.expect(tokUpperIdent, "module name segment")
	if err != nil {
		return nil, err
	}
	segs = append(segs, t.text)
	for p.tok.kind == tokDot {
		if err := p.bump(); err != nil {
			return nil, err
		}
		t, err := p.expect(tokUpperIdent, "module name segment")
		if err != nil {
			return nil, err
		}
		segs = append(segs, t.text)
	}
	return segs, nil
}

func (p *parser) parseExposing() (ast.Exposing, error) {
	if _, err := p.expect(tokLParen, "("); err != nil {
		return ast.Exposing{}, err
	}
	if p.tok.kind == tokDotDot {
		if err := p.bump(); err != nil {
			return ast.Exposing{}, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return ast.Exposing{}, err
		}
		return ast.Exposing{ExposesAll: true}, nil
	}

	var names []string
	for {
		switch p.tok.kind {
		case tokLowerIdent, tokUpperIdent:
			names = append(names, p.tok.text)
			if err := p.bump(); err != nil {
				return ast.Exposing{}, err
			}
		case tokLParen:
			// operator export like `(+)`
			if err := p.bump(); err != nil {
				return ast.Exposing{}, err
			}
			names = append(names, p.tok.text)
			if err := p.bump(); err != nil {
				return ast.Exposing{}, err
			}
			if _, err := p.expect(tokRParen, ")"); err != nil {
				return ast.Exposing{}, err
			}
		default:
			return ast.Exposing{}, p.errf("expected exposed name, found %q", p.tok.text)
		}
		if p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return ast.Exposing{}, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return ast.Exposing{}, err
	}
	return ast.Exposing{Names: names}, nil
}

func (p *parser) parseImport() (*ast.Import, error) {
	start := p.tok.start
	if _, err := p.expectKeyword("import"); err != nil {
		return nil, err
	}
	name, err := p.parseModulePath()
	if err != nil {
		return nil, err
	}

	imp := &ast.Import{ModuleName: name}

	if p.isKeyword("as") {
		if err := p.bump(); err != nil {
			return nil, err
		}
		alias, err := p.parseModulePath()
		if err != nil {
			return nil, err
		}
		imp.Alias = alias
	}

	if p.isKeyword("exposing") {
		if err := p.bump(); err != nil {
			return nil, err
		}
		exposing, err := p.parseExposing()
		if err != nil {
			return nil, err
		}
		imp.ExposesAll = exposing.ExposesAll
		imp.ExposedVals = exposing.Names
	}

	imp.NodeRange = source.Range{Start: start, End: p.tok.start}
	return imp, nil
}

func (p *parser) parseDeclaration() (ast.Declaration, error) {
	start := p.tok.start

	switch {
	case p.isKeyword("type"):
		return p.parseTypeDeclaration(start)
	case p.isKeyword("port"):
		return p.parsePortDeclaration(start)
	case p.isKeyword("infix") || p.isKeyword("infixl") || p.isKeyword("infixr"):
		return p.parseInfixDeclaration(start)
	case p.tok.kind == tokLowerIdent:
		return p.parseFunctionOrAnnotation(start)
	case p.tok.kind == tokLParen:
		return p.parseDestructuringDeclaration(start)
	default:
		return nil, p.errf("expected a top-level declaration, found %q", p.tok.text)
	}
}

func (p *parser) parseTypeDeclaration(start source.Position) (ast.Declaration, error) {
	if err := p.bump(); err != nil { // "type"
		return nil, err
	}
	isAlias := p.isKeyword("alias")
	if isAlias {
		if err := p.bump(); err != nil {
			return nil, err
		}
	}
	name, err := p.expect(tokUpperIdent, "type name")
	if err != nil {
		return nil, err
	}

	if isAlias {
		if err := p.skipToNextTopLevelDecl(); err != nil {
			return nil, err
		}
		return &ast.TypeAliasDeclaration{NodeRange: source.Range{Start: start, End: p.tok.start}, Name: name.text}, nil
	}

	// skip type parameters, e.g. the `a` in `type Maybe a`
	for p.tok.kind == tokLowerIdent {
		if err := p.bump(); err != nil {
			return nil, err
		}
	}

	var ctors []string
	if p.tok.kind == tokEquals {
		if err := p.bump(); err != nil {
			return nil, err
		}
		for {
			ctorTok, err := p.expect(tokUpperIdent, "constructor name")
			if err != nil {
				return nil, err
			}
			ctors = append(ctors, ctorTok.text)

			// skip constructor arguments up to the next "|" or the next
			// top-level declaration's column-1 boundary.
			for p.tok.kind != tokPipe && p.tok.kind != tokEOF && p.tok.start.Column != 1 {
				if err := p.bump(); err != nil {
					return nil, err
				}
			}
			if p.tok.kind == tokPipe {
				if err := p.bump(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	return &ast.CustomTypeDeclaration{NodeRange: source.Range{Start: start, End: p.tok.start}, Name: name.text, Constructors: ctors}, nil
}

func (p *parser) parsePortDeclaration(start source.Position) (ast.Declaration, error) {
	if err := p.bump(); err != nil { // "port"
		return nil, err
	}
	name, err := p.expect(tokLowerIdent, "port name")
	if err != nil {
		return nil, err
	}
	if err := p.skipToNextTopLevelDecl(); err != nil {
		return nil, err
	}
	return &ast.PortDeclaration{NodeRange: source.Range{Start: start, End: p.tok.start}, Name: name.text}, nil
}

func (p *parser) parseInfixDeclaration(start source.Position) (ast.Declaration, error) {
	dir := ast.NonAssociative
	if p.tok.text == "infixl" {
		dir = ast.LeftAssociative
	} else if p.tok.text == "infixr" {
		dir = ast.RightAssociative
	}
	if err := p.bump(); err != nil {
		return nil, err
	}
	precTok, err := p.expect(tokInt, "infix precedence")
	if err != nil {
		return nil, err
	}
	prec, _ := strconv.Atoi(precTok.text)

	opTok := p.tok
	if err := p.bump(); err != nil {
		return nil, err
	}

	if _, err := p.expect(tokEquals, "="); err != nil {
		return nil, err
	}
	fnTok, err := p.expect(tokLowerIdent, "infix target function")
	if err != nil {
		return nil, err
	}

	return &ast.InfixDeclaration{
		NodeRange:   source.Range{Start: start, End: p.tok.start},
		Operator:    opTok.text,
		Direction:   dir,
		Precedence:  prec,
		FunctionRef: fnTok.text,
	}, nil
}

func (p *parser) parseFunctionOrAnnotation(start source.Position) (ast.Declaration, error) {
	name, err := p.expect(tokLowerIdent, "declaration name")
	if err != nil {
		return nil, err
	}

	if p.tok.kind == tokColon {
		// type annotation; skip the type expression through end of line.
		if err := p.skipToNextTopLevelDecl(); err != nil {
			return nil, err
		}
		return nil, nil
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
	return &ast.FunctionDeclaration{
		NodeRange: source.Range{Start: start, End: body.Range().End},
		Name:      name.text,
		Arguments: args,
		Body:      body,
	}, nil
}

func (p *parser) parseDestructuringDeclaration(start source.Position) (ast.Declaration, error) {
	pat, err := p.parseTuplePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokEquals, "="); err != nil {
		return nil, err
	}
	body, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.DestructuringDeclaration{
		NodeRange: source.Range{Start: start, End: body.Range().End},
		Pattern:   pat,
		RHS:       body,
	}, nil
}

// skipToNextTopLevelDecl consumes tokens until one starts at column 1,
// which in this language's offside rule marks the next top-level
// declaration (or EOF). Used for the declaration kinds whose internals
// (type expressions, annotations) are not part of the AST contract.
func (p *parser) skipToNextTopLevelDecl() error {
	for p.tok.kind != tokEOF && p.tok.start.Column != 1 {
		if err := p.bump(); err != nil {
			return err
		}
	}
	return nil
}

// --- patterns (minimal; not recursed into by the driver) -------------------

func (p *parser) parseSimplePattern() (ast.Pattern, error) {
	start := p.tok.start
	switch p.tok.kind {
	case tokLowerIdent, tokUpperIdent:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return ast.Pattern{}, err
		}
		return ast.Pattern{NodeRange: source.Range{Start: start, End: p.tok.start}, Text: text}, nil
	case tokLParen:
		return p.parseTuplePattern()
	case tokLBrace:
		return p.parseRecordPattern()
	default:
		text := p.tok.text
		if err := p.bump(); err != nil {
			return ast.Pattern{}, err
		}
		return ast.Pattern{NodeRange: source.Range{Start: start, End: p.tok.start}, Text: text}, nil
	}
}

func (p *parser) parseTuplePattern() (ast.Pattern, error) {
	start := p.tok.start
	if _, err := p.expect(tokLParen, "("); err != nil {
		return ast.Pattern{}, err
	}
	var parts []string
	for p.tok.kind != tokRParen {
		pat, err := p.parseSimplePattern()
		if err != nil {
			return ast.Pattern{}, err
		}
		parts = append(parts, pat.Text)
		if p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return ast.Pattern{}, err
			}
		}
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return ast.Pattern{}, err
	}
	return ast.Pattern{NodeRange: source.Range{Start: start, End: p.tok.start}, Text: "(" + strings.Join(parts, ", ") + ")"}, nil
}

func (p *parser) parseRecordPattern() (ast.Pattern, error) {
	start := p.tok.start
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return ast.Pattern{}, err
	}
	var parts []string
	for p.tok.kind != tokRBrace {
		t, err := p.expect(tokLowerIdent, "record pattern field")
		if err != nil {
			return ast.Pattern{}, err
		}
		parts = append(parts, t.text)
		if p.tok.kind == tokComma {
			if err := p.bump(); err != nil {
				return ast.Pattern{}, err
			}
		}
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return ast.Pattern{}, err
	}
	return ast.Pattern{NodeRange: source.Range{Start: start, End: p.tok.start}, Text: "{" + strings.Join(parts, ", ") + "}"}, nil
}
