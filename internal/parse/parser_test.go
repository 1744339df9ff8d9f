package parse_test

import (
	"testing"

	"github.com/gnoswap-labs/elmreview/internal/ast"
	"github.com/gnoswap-labs/elmreview/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModuleHeaderAndFunction(t *testing.T) {
	src := "module Main exposing (main)\n\nmain =\n    1\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	require.NotNil(t, f.ModuleDefinition)
	assert.Equal(t, []string{"Main"}, f.ModuleDefinition.Name)
	assert.False(t, f.ModuleDefinition.Exposing.ExposesAll)
	assert.Equal(t, []string{"main"}, f.ModuleDefinition.Exposing.Names)

	require.Len(t, f.Declarations, 1)
	decl, ok := f.Declarations[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "main", decl.Name)
	lit, ok := decl.Body.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, 1, lit.Value)
}

func TestParseExposingAll(t *testing.T) {
	src := "module Main exposing (..)\n\nx = 1\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	assert.True(t, f.ModuleDefinition.Exposing.ExposesAll)
}

func TestParseImports(t *testing.T) {
	src := "module Main exposing (main)\n\nimport Html exposing (Html)\nimport Json.Decode as Decode\n\nmain = 1\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	require.Len(t, f.Imports, 2)
	assert.Equal(t, []string{"Html"}, f.Imports[0].ModuleName)
	assert.Equal(t, []string{"Html"}, f.Imports[0].ExposedVals)
	assert.Equal(t, []string{"Json", "Decode"}, f.Imports[1].ModuleName)
	assert.Equal(t, []string{"Decode"}, f.Imports[1].Alias)
}

func TestParseOperatorPrecedenceAndAssociativity(t *testing.T) {
	src := "module Main exposing (main)\n\nmain = 1 + 2 * 3\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	top, ok := decl.Body.(*ast.OperatorApplication)
	require.True(t, ok)
	assert.Equal(t, "+", top.Operator)
	right, ok := top.Right.(*ast.OperatorApplication)
	require.True(t, ok)
	assert.Equal(t, "*", right.Operator)
}

func TestParseRightAssociativeConsList(t *testing.T) {
	src := "module Main exposing (main)\n\nmain = 1 :: 2 :: []\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	top, ok := decl.Body.(*ast.OperatorApplication)
	require.True(t, ok)
	_, leftIsInt := top.Left.(*ast.IntegerLiteral)
	assert.True(t, leftIsInt, "left-hand side of a right-assoc parse at the top should be the first operand")
	_, rightIsOp := top.Right.(*ast.OperatorApplication)
	assert.True(t, rightIsOp)
}

func TestParseApplicationAndParens(t *testing.T) {
	src := "module Main exposing (main)\n\nmain = add 1 (2 + 3)\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	app, ok := decl.Body.(*ast.Application)
	require.True(t, ok)
	require.Len(t, app.Operands, 3)
	_, isParen := app.Operands[2].(*ast.ParenthesizedExpression)
	assert.True(t, isParen)
}

func TestParseIfLetCaseLambda(t *testing.T) {
	src := `module Main exposing (main)

main =
    let
        double x =
            x * 2
    in
    if True then
        case double 2 of
            4 ->
                "four"
            _ ->
                "other"
    else
        (\y -> y) 0
`
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	letExpr, ok := decl.Body.(*ast.LetExpression)
	require.True(t, ok)
	require.Len(t, letExpr.Declarations, 1)
	_, ok = letExpr.Body.(*ast.IfBlock)
	assert.True(t, ok)
}

func TestParseRecordLiteralAndUpdate(t *testing.T) {
	src := `module Main exposing (main)

main =
    { x = 1, y = 2 }
`
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	rec, ok := decl.Body.(*ast.RecordExpression)
	require.True(t, ok)
	require.Len(t, rec.Fields, 2)
	assert.Equal(t, "x", rec.Fields[0].Name)

	f, err = parse.Parse("module Main exposing (main)\n\nmain =\n    { model | x = 1 }\n")
	require.NoError(t, err)
	decl = f.Declarations[0].(*ast.FunctionDeclaration)
	upd, ok := decl.Body.(*ast.RecordUpdateExpression)
	require.True(t, ok)
	assert.Equal(t, "model", upd.RecordName)
	require.Len(t, upd.Updates, 1)
	assert.Equal(t, "x", upd.Updates[0].Name)
}

func TestParseRecordAccessAndAccessFunction(t *testing.T) {
	src := "module Main exposing (main)\n\nmain = .name user\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	app, ok := decl.Body.(*ast.Application)
	require.True(t, ok)
	_, isAccessFn := app.Operands[0].(*ast.RecordAccessFunction)
	assert.True(t, isAccessFn)

	f, err = parse.Parse("module Main exposing (main)\n\nmain = user.name\n")
	require.NoError(t, err)
	decl = f.Declarations[0].(*ast.FunctionDeclaration)
	access, ok := decl.Body.(*ast.RecordAccess)
	require.True(t, ok)
	assert.Equal(t, "name", access.Field)
}

func TestParseDebugLogCallSite(t *testing.T) {
	src := `module Main exposing (main)

main =
    let
        x =
            1
    in
    Debug.log "x" x
`
	f, err := parse.Parse(src)
	require.NoError(t, err)
	decl := f.Declarations[0].(*ast.FunctionDeclaration)
	letExpr := decl.Body.(*ast.LetExpression)
	app, ok := letExpr.Body.(*ast.Application)
	require.True(t, ok)
	fov, ok := app.Operands[0].(*ast.FunctionOrValue)
	require.True(t, ok)
	assert.Equal(t, []string{"Debug"}, fov.ModuleName)
	assert.Equal(t, "log", fov.Name)
}

func TestParseInvalidSourceReturnsError(t *testing.T) {
	_, err := parse.Parse("module Main exposing (main)\n\nmain = (\n")
	assert.Error(t, err)
}

func TestCheckSyntaxAdaptsParseToParseFunc(t *testing.T) {
	assert.NoError(t, parse.CheckSyntax("module Main exposing (main)\n\nmain = 1\n"))
	assert.Error(t, parse.CheckSyntax("module Main exposing (main)\n\nmain = (\n"))
}
