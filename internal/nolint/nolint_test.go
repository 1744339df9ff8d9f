package nolint

import (
	"testing"

	"github.com/gnoswap-labs/elmreview/internal/source"
)

func rangeAt(row int) source.Range {
	return source.Range{Start: source.Position{Row: row, Column: 1}, End: source.Position{Row: row, Column: 2}}
}

func TestParseRuleScopeEmptyMeansAll(t *testing.T) {
	scope := parseRuleScope("")
	if !scope.all {
		t.Fatalf("expected an empty directive to mean all rules")
	}
}

func TestParseRuleScopeSpecificRules(t *testing.T) {
	scope := parseRuleScope("NoDebugLog, NoUnusedConstructors")
	if scope.all {
		t.Fatalf("expected a named rule list, not all")
	}
	if !scope.rules["NoDebugLog"] || !scope.rules["NoUnusedConstructors"] {
		t.Fatalf("expected both named rules in scope, got %v", scope.rules)
	}
}

func TestDisableNextLineSuppressesOnlyThatLine(t *testing.T) {
	src := "module Main exposing (main)\n\n-- review:disable-next-line NoDebugLog\nmain =\n    Debug.log \"x\" 1\n"
	m := ParseSource(src)

	if !m.IsNolint(rangeAt(4), "NoDebugLog") {
		t.Errorf("expected line 4 to be suppressed for NoDebugLog")
	}
	if m.IsNolint(rangeAt(5), "NoDebugLog") {
		t.Errorf("did not expect line 5 to be suppressed")
	}
	if m.IsNolint(rangeAt(4), "NoUnusedConstructors") {
		t.Errorf("did not expect an unrelated rule to be suppressed")
	}
}

func TestDisableNextLineWithNoRulesSuppressesEverything(t *testing.T) {
	src := "module Main exposing (main)\n\n-- review:disable-next-line\nmain =\n    1\n"
	m := ParseSource(src)

	if !m.IsNolint(rangeAt(4), "AnyRuleAtAll") {
		t.Errorf("expected a bare disable-next-line to suppress every rule")
	}
}

func TestDisableFileSuppressesEverywhere(t *testing.T) {
	src := "-- review:disable-file NoUnusedConstructors\nmodule Main exposing (main)\n\nmain =\n    1\n"
	m := ParseSource(src)

	if !m.IsNolint(rangeAt(5), "NoUnusedConstructors") {
		t.Errorf("expected a file-wide disable to apply anywhere in the file")
	}
	if m.IsNolint(rangeAt(5), "NoDebugLog") {
		t.Errorf("did not expect an unrelated rule to be suppressed")
	}
}

func TestManagerIsNolintOnNilManagerIsFalse(t *testing.T) {
	var m *Manager
	if m.IsNolint(rangeAt(1), "AnyRule") {
		t.Errorf("expected a nil manager to never suppress anything")
	}
}
