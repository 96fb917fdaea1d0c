package vitest

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

// JestRules builds the vitest -> jest rule set. importActual loses its
// await because jest.requireActual is synchronous; the generic namespace
// swap runs last.
func JestRules() *pattern.Set {
	s := pattern.NewSet("vitest", "jest")

	s.Register(pattern.CategoryImports,
		pattern.F(`^(\s*)import\s*\{([^}]*)\}\s*from\s*['"]vitest['"];?\s*$`,
			func(g []string) string {
				return g[1] + "import {" + renameImport(g[2], "vi", "jest") + "} from '@jest/globals';"
			}),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`(?:await\s+)?vi\.importActual\(`, `jest.requireActual(`),
		pattern.T(`\bvi\.setConfig\(\{\s*testTimeout:\s*(\d+)\s*\}\)`, `jest.setTimeout(${1})`),
		pattern.T(`\bvi\.`, `jest.`),
	)

	return s
}
