package jasmine

import "github.com/testshift/core/pkg/converter/pattern"

// JestRules builds the jasmine -> jest rule set. The matcher surface is
// nearly shared; the work is the focus/exclude aliases, the spy .and.
// strategies, and the clock API.
func JestRules() *pattern.Set {
	s := pattern.NewSet("jasmine", "jest")

	s.Register(pattern.CategoryImports,
		pattern.T(`^(\s*)(?:const|let|var)\s+[^=\n]+=\s*require\(['"]jasmine(?:-core)?['"]\);?\s*$`,
			`${1}import { jest } from '@jest/globals';`),
	)

	s.Register(pattern.CategoryStructure,
		pattern.T(`\bxdescribe\(`, `describe.skip(`),
		pattern.T(`\bfdescribe\(`, `describe.only(`),
		pattern.T(`\bxit\(`, `it.skip(`),
		pattern.T(`\bfit\(`, `it.only(`),
		pattern.F(`^(\s*)it\(\s*(['"][^'"\n]*['"])\s*\);?\s*$`, func(g []string) string {
			return g[1] + "it.todo(" + g[2] + ");"
		}),
	)

	s.Register(pattern.CategoryAssertion,
		pattern.T(`\.toHaveBeenCalledOnceWith\(`, `.toHaveBeenCalledWith(`),
		pattern.T(`\.toBeTrue\(\)`, `.toBe(true)`),
		pattern.T(`\.toBeFalse\(\)`, `.toBe(false)`),
		pattern.T(`\bjasmine\.any\(`, `expect.any(`),
		pattern.T(`\bjasmine\.objectContaining\(`, `expect.objectContaining(`),
		pattern.T(`\bjasmine\.arrayContaining\(`, `expect.arrayContaining(`),
		pattern.T(`\bjasmine\.stringMatching\(`, `expect.stringMatching(`),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`\bjasmine\.createSpy\((?:['"][^'"\n]*['"])?\)`, `jest.fn()`),
		pattern.T(`\bjasmine\.clock\(\)\.install\(\)`, `jest.useFakeTimers()`),
		pattern.T(`\bjasmine\.clock\(\)\.uninstall\(\)`, `jest.useRealTimers()`),
		pattern.T(`\bjasmine\.clock\(\)\.tick\(`, `jest.advanceTimersByTime(`),
		pattern.T(`\bspyOn\(`, `jest.spyOn(`),
		pattern.T(`\.and\.returnValue\(`, `.mockReturnValue(`),
		pattern.T(`\.and\.resolveTo\(`, `.mockResolvedValue(`),
		pattern.T(`\.and\.rejectWith\(`, `.mockRejectedValue(`),
		pattern.T(`\.and\.callFake\(`, `.mockImplementation(`),
		// jest.spyOn calls through by default; the strategy call vanishes.
		pattern.T(`\.and\.callThrough\(\)`, ``),
		pattern.T(`\.calls\.reset\(\)`, `.mockReset()`),
	)

	return s
}
