package mocha

import (
	"strings"

	"github.com/testshift/core/pkg/converter/pattern"
)

// JestRules builds the mocha+chai+sinon -> jest rule set.
func JestRules() *pattern.Set {
	return buildRules("jest", "jest", "import { jest } from '@jest/globals';")
}

// VitestRules builds the mocha+chai+sinon -> vitest rule set.
func VitestRules() *pattern.Set {
	return buildRules("vitest", "vi", "import { vi } from 'vitest';")
}

// buildRules assembles the shared chai/sinon cascade for one target
// dialect; ns is the target's runtime namespace used in the rewrites.
// Rule order is load-bearing throughout: the negation normalizer runs
// before every positive assertion rewrite, calledWith and calledOnce run
// before their prefix called, and specific sinon.stub shapes run before
// the bare stub rewrite.
func buildRules(target, ns, runtimeImport string) *pattern.Set {
	s := pattern.NewSet("mocha", target)

	s.Register(pattern.CategoryImports,
		pattern.T(`^(\s*)import\s[^\n]*from\s*['"](?:chai|sinon|sinon-chai|mocha)['"];?\s*$`,
			`${1}`+runtimeImport),
		pattern.T(`^(\s*)(?:const|let|var)\s+[^=\n]+=\s*require\(['"](?:chai|sinon|sinon-chai|mocha)['"]\)[^\n]*;?\s*$`,
			`${1}`+runtimeImport),
	)

	s.Register(pattern.CategoryStructure,
		pattern.T(`\bcontext\(`, `describe(`),
		pattern.T(`\bbefore\(`, `beforeAll(`),
		pattern.T(`\bafter\(`, `afterAll(`),
		// A test declared without a callback is mocha's pending marker.
		pattern.F(`^(\s*)(?:it|specify)\(\s*(['"][^'"\n]*['"])\s*\);?\s*$`, func(g []string) string {
			return g[1] + "it.todo(" + g[2] + ");"
		}),
		pattern.T(`\bspecify\(`, `it(`),
	)

	s.Register(pattern.CategoryAssertion,
		// Canonicalize the two negation spellings to .not.to. before any
		// positive rewrite sees them.
		pattern.T(`\.to\.not\.`, `.not.to.`),

		// Spy expectations wrapped in a boolean property read.
		pattern.F(`expect\(([\w.]+)\.calledOnce\)\.to\.be\.true`, func(g []string) string {
			return "expect(" + g[1] + ").toHaveBeenCalledTimes(1)"
		}),
		pattern.F(`expect\(([\w.]+)\.called\)\.to\.be\.true`, func(g []string) string {
			return "expect(" + g[1] + ").toHaveBeenCalled()"
		}),

		pattern.T(`\.to\.have\.been\.calledWith\(`, `.toHaveBeenCalledWith(`),
		pattern.T(`\.to\.have\.been\.calledOnce\b`, `.toHaveBeenCalledTimes(1)`),
		pattern.T(`\.to\.have\.been\.calledTwice\b`, `.toHaveBeenCalledTimes(2)`),
		pattern.T(`\.to\.have\.been\.called\b`, `.toHaveBeenCalled()`),

		pattern.T(`\.to\.deep\.equal\(`, `.toEqual(`),
		pattern.T(`\.to\.eql\(`, `.toEqual(`),
		pattern.T(`\.to\.equal\(`, `.toBe(`),
		pattern.T(`\.to\.be\.true\b`, `.toBe(true)`),
		pattern.T(`\.to\.be\.false\b`, `.toBe(false)`),
		pattern.T(`\.to\.be\.null\b`, `.toBeNull()`),
		pattern.T(`\.to\.be\.undefined\b`, `.toBeUndefined()`),
		pattern.T(`\.to\.exist\b`, `.toBeDefined()`),
		pattern.T(`\.to\.have\.lengthOf\(`, `.toHaveLength(`),
		pattern.T(`\.to\.have\.length\(`, `.toHaveLength(`),
		pattern.T(`\.to\.(?:include|contain)\(`, `.toContain(`),
		pattern.T(`\.to\.match\(`, `.toMatch(`),
		pattern.T(`\.to\.throw\(`, `.toThrow(`),
		pattern.T(`\.to\.be\.(?:instanceOf|an\.instanceof)\(`, `.toBeInstanceOf(`),
		pattern.T(`\.to\.be\.(?:greaterThan|above)\(`, `.toBeGreaterThan(`),
		pattern.T(`\.to\.be\.(?:lessThan|below)\(`, `.toBeLessThan(`),

		// After the chain rewrites only the canonical .not.to. connector
		// remains; fold it into the target's .not.
		pattern.T(`\.not\.to(?:\.be)?\.`, `.not.`),
		pattern.T(`\.not\.toBe\(true\)`, `.toBe(false)`),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`\bsinon\.stub\(\)`, ns+`.fn()`),
		// A method stub followed by a configuration chain keeps the chain
		// (the .returns/.resolves rules below rewrite it); a bare method
		// stub needs an explicit no-op implementation or it calls through.
		pattern.F(`\bsinon\.stub\(([^,)\n]+),\s*([^)\n]+)\)(\.\w+\(|[^.\w]|$)`, func(g []string) string {
			if strings.HasPrefix(g[3], ".") {
				return ns + ".spyOn(" + g[1] + ", " + g[2] + ")" + g[3]
			}
			return ns + ".spyOn(" + g[1] + ", " + g[2] + ").mockImplementation(() => {})" + g[3]
		}),
		pattern.F(`\bsinon\.spy\(([^,)\n]+),\s*([^)\n]+)\)`, func(g []string) string {
			return ns + ".spyOn(" + g[1] + ", " + g[2] + ")"
		}),
		pattern.T(`\bsinon\.spy\(\)`, ns+`.fn()`),
		pattern.T(`\bsinon\.fake\(\)`, ns+`.fn()`),
		pattern.T(`\bsinon\.useFakeTimers\(\)`, ns+`.useFakeTimers()`),
		pattern.T(`\bsinon\.restore\(\)`, ns+`.restoreAllMocks()`),
		pattern.T(`\bclock\.tick\(`, ns+`.advanceTimersByTime(`),
		pattern.T(`\bclock\.restore\(\)`, ns+`.useRealTimers()`),
		pattern.T(`\.callsFake\(`, `.mockImplementation(`),
		pattern.T(`\.returns\(`, `.mockReturnValue(`),
		pattern.T(`\.resolves\(`, `.mockResolvedValue(`),
		pattern.T(`\.rejects\(`, `.mockRejectedValue(`),
	)

	return s
}
