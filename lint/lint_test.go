package lint_test

import (
	"testing"

	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/internal/rules"
	"github.com/gnoswap-labs/elmreview/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allRulesAtError(t *testing.T) *lint.Engine {
	t.Helper()
	names := make([]string, 0)
	for _, r := range rules.All() {
		names = append(names, r.Name())
	}
	e, err := lint.NewEngine(rules.All(), lint.DefaultConfig("test", names))
	require.NoError(t, err)
	return e
}

func TestLintSourceNoOpOnConformingSource(t *testing.T) {
	e := allRulesAtError(t)
	diags, err := e.LintSource(project.New(nil), "module Main exposing (main)\n\nmain =\n    1 + 1\n")
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestLintSourceFindsDebugLogAndTagsItCorrectly(t *testing.T) {
	e := allRulesAtError(t)
	src := `module Main exposing (main)

main =
    Debug.log "x" 1
`
	diags, err := e.LintSource(project.New(nil), src)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "NoDebugLog", diags[0].RuleName)
	assert.Equal(t, "Main", diags[0].ModuleName)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)
}

func TestLintSourceUnparseableSourceReturnsSyntheticDiagnostic(t *testing.T) {
	e := allRulesAtError(t)
	diags, err := e.LintSource(project.New(nil), "module Main exposing (main)\n\nmain = (\n")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, lint.ParsingErrorRule, diags[0].RuleName)
	assert.Equal(t, "", diags[0].ModuleName)
	assert.True(t, diags[0].Diagnostic.Range.Zero())
}

func TestLintSourceSortsByRange(t *testing.T) {
	e := allRulesAtError(t)
	src := `module Main exposing (main)

main =
    let
        a =
            Debug.log "a" 1

        b =
            Debug.log "b" 2
    in
    a + b
`
	diags, err := e.LintSource(project.New(nil), src)
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.True(t, diags[0].Diagnostic.Range.Start.Row < diags[1].Diagnostic.Range.Start.Row)
}

func TestLintSourceRespectsDisableNextLine(t *testing.T) {
	e := allRulesAtError(t)
	src := `module Main exposing (main)

main =
    -- review:disable-next-line NoDebugLog
    Debug.log "x" 1
`
	diags, err := e.LintSource(project.New(nil), src)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestNewEngineRejectsUnknownRuleName(t *testing.T) {
	_, err := lint.NewEngine(rules.All(), lint.Config{Rules: map[string]lint.ConfigRule{
		"NotARealRule": {Severity: lint.SeverityError},
	}})
	assert.Error(t, err)
}

func TestNewEngineSkipsOffRules(t *testing.T) {
	e, err := lint.NewEngine(rules.All(), lint.Config{Rules: map[string]lint.ConfigRule{
		"NoDebugLog": {Severity: lint.SeverityOff},
	}})
	require.NoError(t, err)
	diags, err := e.LintSource(project.New(nil), "module Main exposing (main)\n\nmain =\n    Debug.log \"x\" 1\n")
	require.NoError(t, err)
	assert.Empty(t, diags)
}
