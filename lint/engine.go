// Package lint is the public facade: it wires a rule catalog and a Config
// into an Engine, and the Engine turns one file's source text into a
// sorted, tagged list of diagnostics (spec.md §5). It plays the role
// gnoverse-tlin's own lint package plays over internal.Engine, adapted
// from a Go-source engine to one driven by internal/parse and
// internal/rule.
package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnoswap-labs/elmreview/internal/diagnostic"
	"github.com/gnoswap-labs/elmreview/internal/nolint"
	"github.com/gnoswap-labs/elmreview/internal/parse"
	"github.com/gnoswap-labs/elmreview/internal/project"
	"github.com/gnoswap-labs/elmreview/internal/rule"
	"github.com/gnoswap-labs/elmreview/internal/source"
)

// LintDiagnostic tags a raw diagnostic with the rule that raised it and the
// module it was raised in, per spec.md §5's contract for what a caller of
// the lint engine receives.
type LintDiagnostic struct {
	Diagnostic diagnostic.Diagnostic
	RuleName   string
	ModuleName string
	Severity   Severity
}

// ParsingErrorRule is the synthetic rule name attached to the one
// diagnostic an unparseable source produces, per spec.md §5.2.
const ParsingErrorRule = "ParsingError"

type activeRule struct {
	rule     rule.Rule
	severity Severity
}

// Engine runs a fixed, ordered set of active rules over parsed files.
type Engine struct {
	active []activeRule
}

// NewEngine builds an Engine from a rule catalog and a Config. Every
// non-off entry in cfg.Rules must name a rule present in catalog; an
// unknown name is a configuration error, not a silent no-op.
func NewEngine(catalog []rule.Rule, cfg Config) (*Engine, error) {
	byName := make(map[string]rule.Rule, len(catalog))
	for _, r := range catalog {
		byName[r.Name()] = r
	}

	e := &Engine{}
	for name, cr := range cfg.Rules {
		if cr.Severity == SeverityOff {
			continue
		}
		r, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("lint: configuration names unknown rule %q", name)
		}
		e.active = append(e.active, activeRule{rule: r, severity: cr.Severity})
	}

	// rule order must not depend on map iteration, or two engines built
	// from the same config could disagree on diagnostic order before the
	// final sort by range even gets a chance to run.
	sort.Slice(e.active, func(i, j int) bool {
		return e.active[i].rule.Name() < e.active[j].rule.Name()
	})

	return e, nil
}

// LintSource runs every active rule against one file's source text,
// implementing the pipeline spec.md §5 and §6 describe: parse, handle a
// parse failure as a single synthetic diagnostic, otherwise PostProcess,
// run every active rule, tag and sort the results, and filter anything a
// nolint comment suppresses.
func (e *Engine) LintSource(p *project.Project, src string) ([]LintDiagnostic, error) {
	f, err := parse.Parse(src)
	if err != nil {
		zero := source.Range{}
		d := diagnostic.New("failed to parse source: "+err.Error(), nil, zero)
		return []LintDiagnostic{{Diagnostic: d, RuleName: ParsingErrorRule}}, nil
	}
	f = parse.PostProcess(f)

	var moduleName string
	if f.ModuleDefinition != nil {
		moduleName = strings.Join(f.ModuleDefinition.Name, ".")
	}

	var all []LintDiagnostic
	for _, ar := range e.active {
		for _, d := range ar.rule.Analyze(p, f) {
			all = append(all, LintDiagnostic{
				Diagnostic: d,
				RuleName:   ar.rule.Name(),
				ModuleName: moduleName,
				Severity:   ar.severity,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return source.CompareForDiagnostics(all[i].Diagnostic.Range, all[j].Diagnostic.Range) < 0
	})

	mgr := nolint.ParseSource(src)
	filtered := all[:0]
	for _, d := range all {
		if !mgr.IsNolint(d.Diagnostic.Range, d.RuleName) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
