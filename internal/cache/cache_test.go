package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/source"
	"github.com/gnoswap-labs/elmreview/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiagnostics(filename string) []lint.LintDiagnostic {
	return []lint.LintDiagnostic{
		{
			Diagnostic: diagnostic.New("debug log left in source", nil, source.Range{
				Start: source.Position{Row: 4, Column: 5},
				End:   source.Position{Row: 4, Column: 20},
			}),
			RuleName:   "NoDebugLog",
			ModuleName: "Main",
			Severity:   lint.SeverityError,
		},
	}
}

func TestCacheSetAndGetRoundTrips(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filename := filepath.Join(tmpDir, "Main.elm")
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n"), 0o644))

	c, err := New(filepath.Join(tmpDir, "cache"), 0)
	require.NoError(t, err)

	diags := sampleDiagnostics(filename)
	require.NoError(t, c.Set(filename, diags))

	got, ok := c.Get(filename)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, diags[0].RuleName, got[0].RuleName)
	assert.Equal(t, diags[0].ModuleName, got[0].ModuleName)
	assert.Equal(t, diags[0].Severity, got[0].Severity)
	assert.Equal(t, diags[0].Diagnostic.Message, got[0].Diagnostic.Message)
	assert.Equal(t, diags[0].Diagnostic.Range, got[0].Diagnostic.Range)
}

func TestCacheGetMissOnUnknownFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test_miss")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	c, err := New(filepath.Join(tmpDir, "cache"), 0)
	require.NoError(t, err)

	_, ok := c.Get(filepath.Join(tmpDir, "NotCached.elm"))
	assert.False(t, ok)
}

func TestCacheInvalidatesOnFileModification(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test_modified")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filename := filepath.Join(tmpDir, "Main.elm")
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n"), 0o644))

	c, err := New(filepath.Join(tmpDir, "cache"), 0)
	require.NoError(t, err)

	require.NoError(t, c.Set(filename, sampleDiagnostics(filename)))

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n\nmain = 1\n"), 0o644))

	_, ok := c.Get(filename)
	assert.False(t, ok)
}

func TestCacheInvalidatesOnMaxAge(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test_age")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filename := filepath.Join(tmpDir, "Main.elm")
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n"), 0o644))

	c, err := New(filepath.Join(tmpDir, "cache"), time.Nanosecond)
	require.NoError(t, err)

	require.NoError(t, c.Set(filename, sampleDiagnostics(filename)))
	time.Sleep(time.Millisecond)

	_, ok := c.Get(filename)
	assert.False(t, ok)
}

func TestCachePersistsAcrossReopen(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test_persist")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filename := filepath.Join(tmpDir, "Main.elm")
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n"), 0o644))

	cacheDir := filepath.Join(tmpDir, "cache")
	c1, err := New(cacheDir, 0)
	require.NoError(t, err)
	require.NoError(t, c1.Set(filename, sampleDiagnostics(filename)))

	c2, err := New(cacheDir, 0)
	require.NoError(t, err)

	got, ok := c2.Get(filename)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "NoDebugLog", got[0].RuleName)
}

func TestInvalidateAllClearsEntries(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "elmreview_cache_test_invalidate")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	filename := filepath.Join(tmpDir, "Main.elm")
	require.NoError(t, os.WriteFile(filename, []byte("module Main exposing (main)\n"), 0o644))

	c, err := New(filepath.Join(tmpDir, "cache"), 0)
	require.NoError(t, err)
	require.NoError(t, c.Set(filename, sampleDiagnostics(filename)))

	require.NoError(t, c.InvalidateAll())

	_, ok := c.Get(filename)
	assert.False(t, ok)
}
