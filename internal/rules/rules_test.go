package rules_test

import (
	"testing"

	"github.com/gnoswap-labs/elmreview/internal/parse"
	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoDebugLogNoOpOnConformingSource(t *testing.T) {
	src := "module Main exposing (main)\n\nmain =\n    1 + 1\n"
	f, err := parse.Parse(src)
	require.NoError(t, err)

	diags := rules.NoDebugLog().Analyze(project.New(nil), f)
	assert.Empty(t, diags)
}

func TestNoDebugLogFindsCallSite(t *testing.T) {
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

	diags := rules.NoDebugLog().Analyze(project.New(nil), f)
	require.Len(t, diags, 1)
	assert.Equal(t, 8, diags[0].Range.Start.Row)
}

func TestNoUnusedLetVariablesFindsDeadBinding(t *testing.T) {
	src := `module Main exposing (main)

main =
    let
        used =
            1

        unused =
            2
    in
    used
`
	f, err := parse.Parse(src)
	require.NoError(t, err)

	diags := rules.NoUnusedLetVariables().Analyze(project.New(nil), f)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unused")
}

func TestNoUnusedLetVariablesNoOpWhenAllUsed(t *testing.T) {
	src := `module Main exposing (main)

main =
    let
        x =
            1

        y =
            x + 1
    in
    y
`
	f, err := parse.Parse(src)
	require.NoError(t, err)

	diags := rules.NoUnusedLetVariables().Analyze(project.New(nil), f)
	assert.Empty(t, diags)
}

func TestNoUnusedConstructorsFindsUnreferencedConstructor(t *testing.T) {
	src := `module Main exposing (main)

type Color
    = Red
    | Blue

main =
    Red
`
	f, err := parse.Parse(src)
	require.NoError(t, err)

	diags := rules.NoUnusedConstructors().Analyze(project.New(nil), f)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Blue")
}

func TestAllReturnsEveryCanonicalRule(t *testing.T) {
	names := map[string]bool{}
	for _, r := range rules.All() {
		names[r.Name()] = true
	}
	assert.True(t, names["NoDebugLog"])
	assert.True(t, names["NoUnusedLetVariables"])
	assert.True(t, names["NoUnusedConstructors"])
}
