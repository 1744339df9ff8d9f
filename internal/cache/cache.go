// Package cache implements a per-file diagnostic cache, keyed by content
// hash and modification time, so the CLI can skip re-linting files that
// have not changed since their last run. It is modeled on gnoverse-tlin's
// internal.Cache, serialized with msgpack instead of gob, and caching
// lint.LintDiagnostic instead of types.Issue. It sits entirely outside the
// core: lint.Engine.LintSource stays a pure function of its inputs, and
// caching is a concern the CLI opts into.
package cache

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/source"
	"github.com/gnoswap-labs/elmreview/lint"
	"github.com/vmihailenco/msgpack/v5"
)

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

// diagnosticDTO is the msgpack-serializable projection of a
// lint.LintDiagnostic. fix.Fix carries unexported fields and is not itself
// serializable, so cached diagnostics never carry fixes; a cache hit's
// diagnostics report the same problems a fresh run would, just without
// machine-applicable edits attached. A caller that needs fixes applied
// (the `fix` subcommand) re-lints rather than reading from cache.
type diagnosticDTO struct {
	Message    string
	Details    []string
	RuleName   string
	ModuleName string
	Severity   string
	StartRow   int
	StartCol   int
	EndRow     int
	EndCol     int
}

func toDTO(d lint.LintDiagnostic) diagnosticDTO {
	return diagnosticDTO{
		Message:    d.Diagnostic.Message,
		Details:    d.Diagnostic.Details,
		RuleName:   d.RuleName,
		ModuleName: d.ModuleName,
		Severity:   string(d.Severity),
		StartRow:   d.Diagnostic.Range.Start.Row,
		StartCol:   d.Diagnostic.Range.Start.Column,
		EndRow:     d.Diagnostic.Range.End.Row,
		EndCol:     d.Diagnostic.Range.End.Column,
	}
}

func fromDTO(d diagnosticDTO) lint.LintDiagnostic {
	rng := source.Range{
		Start: source.Position{Row: d.StartRow, Column: d.StartCol},
		End:   source.Position{Row: d.EndRow, Column: d.EndCol},
	}
	return lint.LintDiagnostic{
		Diagnostic: diagnostic.New(d.Message, d.Details, rng),
		RuleName:   d.RuleName,
		ModuleName: d.ModuleName,
		Severity:   lint.Severity(d.Severity),
	}
}

// Entry is one file's cached result.
type Entry struct {
	Metadata    fileMetadata
	Diagnostics []diagnosticDTO
	CreatedAt   time.Time
}

// Cache maps a file path to its last-known diagnostics, invalidated by
// content hash, modification time, or age.
type Cache struct {
	dir     string
	entries map[string]Entry
	mutex   sync.RWMutex
	maxAge  time.Duration
}

const cacheFileName = "lint_cache.msgpack"

// New opens or creates a cache rooted at dir, loading any entries already
// on disk. maxAge of 0 disables age-based invalidation.
func New(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: creating directory: %w", err)
	}

	c := &Cache{dir: dir, entries: make(map[string]Entry), maxAge: maxAge}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("cache: loading: %w", err)
	}
	return c, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, cacheFileName)
}

func (c *Cache) load() error {
	f, err := os.Open(c.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	return msgpack.NewDecoder(f).Decode(&c.entries)
}

func (c *Cache) save() error {
	f, err := os.Create(c.path())
	if err != nil {
		return err
	}
	defer f.Close()

	return msgpack.NewEncoder(f).Encode(c.entries)
}

// Set records filename's diagnostics against its current content hash and
// modification time, and persists the cache to disk.
func (c *Cache) Set(filename string, diags []lint.LintDiagnostic) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	meta, err := fileMetadataFor(filename)
	if err != nil {
		return fmt.Errorf("cache: reading metadata for %s: %w", filename, err)
	}

	dtos := make([]diagnosticDTO, len(diags))
	for i, d := range diags {
		dtos[i] = toDTO(d)
	}

	c.entries[filename] = Entry{Metadata: meta, Diagnostics: dtos, CreatedAt: time.Now()}
	return c.save()
}

// Get returns filename's cached diagnostics, and whether the entry was
// present and still valid. An invalid entry is evicted as a side effect.
func (c *Cache) Get(filename string) ([]lint.LintDiagnostic, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[filename]
	if !ok {
		return nil, false
	}

	if c.isStale(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	diags := make([]lint.LintDiagnostic, len(entry.Diagnostics))
	for i, d := range entry.Diagnostics {
		diags[i] = fromDTO(d)
	}
	return diags, true
}

func (c *Cache) isStale(filename string, entry Entry) bool {
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	current, err := fileMetadataFor(filename)
	if err != nil || current != entry.Metadata {
		return true
	}
	return false
}

// InvalidateAll drops every cached entry.
func (c *Cache) InvalidateAll() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]Entry)
	return c.save()
}

func fileMetadataFor(filename string) (fileMetadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, err
	}
	defer f.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return fileMetadata{}, err
	}

	info, err := f.Stat()
	if err != nil {
		return fileMetadata{}, err
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}
