package lint_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeElmFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLintPathContextCancellation mirrors gnoverse-tlin's
// TestProcessPathContextCancellation: a directory walk must stop and
// surface context.Canceled once its context is cancelled mid-run.
func TestLintPathContextCancellation(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "elmreview_test_cancel")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	for i := 0; i < 10; i++ {
		writeElmFile(t, tempDir, fmt.Sprintf("Test%d.elm", i), fmt.Sprintf(`module Test%d exposing (main)

main =
    Debug.log "x" %d
`, i, i))
	}

	engine := allRulesAtError(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	results, err := lint.LintPath(ctx, nil, engine, project.New(nil), tempDir)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

// TestLintPathCollectsFromMultipleFiles checks that walking a directory
// accumulates one FileResult per .elm file, each carrying that file's own
// diagnostics.
func TestLintPathCollectsFromMultipleFiles(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "elmreview_test_multi")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	for i := 0; i < 5; i++ {
		writeElmFile(t, tempDir, fmt.Sprintf("Test%d.elm", i), fmt.Sprintf(`module Test%d exposing (main)

main =
    Debug.log "x" %d
`, i, i))
	}
	writeElmFile(t, tempDir, "README.md", "not an elm file")

	engine := allRulesAtError(t)
	results, err := lint.LintPath(context.Background(), nil, engine, project.New(nil), tempDir)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for _, res := range results {
		require.NoError(t, res.Err)
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, "NoDebugLog", res.Diagnostics[0].RuleName)
	}
}

// TestLintPathSurvivesUnparseableFile checks that one unparseable .elm file
// does not abort the walk: it surfaces as a ParsingError diagnostic on its
// own FileResult while sibling files still get linted normally.
func TestLintPathSurvivesUnparseableFile(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "elmreview_test_errors")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	writeElmFile(t, tempDir, "Valid.elm", `module Valid exposing (main)

main =
    1 + 1
`)
	writeElmFile(t, tempDir, "Invalid.elm", "module Invalid exposing (main)\n\nmain = (\n")

	engine := allRulesAtError(t)
	results, err := lint.LintPath(context.Background(), nil, engine, project.New(nil), tempDir)
	require.NoError(t, err)
	require.Len(t, results, 2)

	byBase := map[string]lint.FileResult{}
	for _, res := range results {
		byBase[filepath.Base(res.Path)] = res
	}

	valid := byBase["Valid.elm"]
	require.NoError(t, valid.Err)
	assert.Empty(t, valid.Diagnostics)

	invalid := byBase["Invalid.elm"]
	require.NoError(t, invalid.Err)
	require.Len(t, invalid.Diagnostics, 1)
	assert.Equal(t, lint.ParsingErrorRule, invalid.Diagnostics[0].RuleName)
}

// TestLintPathSingleFile checks the non-directory path of LintPath.
func TestLintPathSingleFile(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "elmreview_test_single")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := writeElmFile(t, tempDir, "Single.elm", `module Single exposing (main)

main =
    Debug.log "x" 1
`)

	engine := allRulesAtError(t)
	results, err := lint.LintPath(context.Background(), nil, engine, project.New(nil), path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, "NoDebugLog", results[0].Diagnostics[0].RuleName)
}

// TestLintPathIgnoresNonElmFiles checks that pointing LintPath at a
// non-.elm file is a silent no-op rather than an error.
func TestLintPathIgnoresNonElmFiles(t *testing.T) {
	t.Parallel()

	tempDir, err := os.MkdirTemp("", "elmreview_test_nonelm")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	path := writeElmFile(t, tempDir, "notes.txt", "just some notes")

	engine := allRulesAtError(t)
	results, err := lint.LintPath(context.Background(), nil, engine, project.New(nil), path)
	require.NoError(t, err)
	assert.Nil(t, results)
}
