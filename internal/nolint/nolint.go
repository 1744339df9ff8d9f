// Package nolint implements inline suppression comments. It is the
// elm-like-source equivalent of gnoverse-tlin's internal/nolint package:
// the same scope-and-rule-set model, but driven off raw source text rather
// than Go AST comment nodes, since this project's AST contract
// (internal/ast) never carries comments at all.
package nolint

import (
	"strings"

	"github.com/gnoswap-labs/elmreview/internal/source"
)

const (
	disableNextLinePrefix = "-- review:disable-next-line"
	disableFilePrefix     = "-- review:disable-file"
)

// Manager answers whether a diagnostic at a given range, for a given rule
// name, has been suppressed by a comment in the source it was parsed from.
type Manager struct {
	fileAll   bool
	fileRules map[string]bool
	nextLine  map[int]ruleScope // keyed by the 1-based row the scope applies to
}

type ruleScope struct {
	all   bool
	rules map[string]bool
}

// ParseSource scans src for disable-next-line and disable-file comments and
// builds the Manager that filters diagnostics against them.
func ParseSource(src string) *Manager {
	m := &Manager{nextLine: map[int]ruleScope{}}

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, disableNextLinePrefix):
			rest := strings.TrimSpace(trimmed[len(disableNextLinePrefix):])
			// i is the 0-based index of the comment's own line, so the row
			// it protects (1-based, the next line) is i+2.
			m.nextLine[i+2] = parseRuleScope(rest)
		case strings.HasPrefix(trimmed, disableFilePrefix):
			rest := strings.TrimSpace(trimmed[len(disableFilePrefix):])
			scope := parseRuleScope(rest)
			if scope.all {
				m.fileAll = true
				continue
			}
			if m.fileRules == nil {
				m.fileRules = map[string]bool{}
			}
			for name := range scope.rules {
				m.fileRules[name] = true
			}
		}
	}
	return m
}

// parseRuleScope reads the comma-separated rule list following the
// directive keyword; an empty list means "every rule".
func parseRuleScope(rest string) ruleScope {
	if rest == "" {
		return ruleScope{all: true}
	}
	rules := map[string]bool{}
	for _, name := range strings.Split(rest, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = true
		}
	}
	if len(rules) == 0 {
		return ruleScope{all: true}
	}
	return ruleScope{rules: rules}
}

// IsNolint reports whether a diagnostic starting at rng.Start, raised by
// ruleName, is suppressed.
func (m *Manager) IsNolint(rng source.Range, ruleName string) bool {
	if m == nil {
		return false
	}
	if m.fileAll || m.fileRules[ruleName] {
		return true
	}
	if scope, ok := m.nextLine[rng.Start.Row]; ok {
		if scope.all || scope.rules[ruleName] {
			return true
		}
	}
	return false
}
