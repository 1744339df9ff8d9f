package rules

import "github.com/gnoswap-labs/elmreview/internal/rule"

// All returns the rule set shipped with the binary: lint.Config selects a
// subset of these by name (see the lint package), so All is a catalog, not
// a fixed active set.
func All() []rule.Rule {
	return []rule.Rule{
		NoDebugLog(),
		NoUnusedLetVariables(),
		NoUnusedConstructors(),
	}
}
