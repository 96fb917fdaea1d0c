package jest

import (
	"strings"

	"github.com/testshift/core/pkg/converter/pattern"
)

// renameImport swaps one identifier in an import's brace list, preserving
// the surrounding spelling.
func renameImport(list, from, to string) string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		if strings.TrimSpace(p) == from {
			parts[i] = strings.Replace(p, from, to, 1)
		}
	}
	return strings.Join(parts, ",")
}

// VitestRules builds the jest -> vitest rule set. The two dialects share
// structure and matcher names; the work is the runtime import and the
// jest.* namespace, with specific rewrites registered before the generic
// namespace swap.
func VitestRules() *pattern.Set {
	s := pattern.NewSet("jest", "vitest")

	s.Register(pattern.CategoryImports,
		pattern.F(`^(\s*)import\s*\{([^}]*)\}\s*from\s*['"]@jest/globals['"];?\s*$`,
			func(g []string) string {
				return g[1] + "import {" + renameImport(g[2], "jest", "vi") + "} from 'vitest';"
			}),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`\bjest\.requireActual\(`, `await vi.importActual(`),
		pattern.T(`\bjest\.setTimeout\((\d+)\)`, `vi.setConfig({ testTimeout: ${1} })`),
		pattern.T(`\bjest\.`, `vi.`),
	)

	return s
}
