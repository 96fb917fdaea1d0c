package cypress

import "github.com/testshift/core/pkg/converter/pattern"

// PlaywrightRules builds the cypress -> playwright rule set. Category
// registration order and rule order within each category are load-bearing:
// modifier openers (it.skip) run before the bare opener, and negated
// should spellings run before the positive token they embed.
func PlaywrightRules() *pattern.Set {
	s := pattern.NewSet("cypress", "playwright")

	s.Register(pattern.CategoryImports,
		pattern.T(`from\s+['"]cypress['"]`, `from '@playwright/test'`),
	)

	s.Register(pattern.CategoryStructure,
		pattern.T(`\bdescribe\.skip\(`, `test.describe.skip(`),
		pattern.T(`\bdescribe\.only\(`, `test.describe.only(`),
		pattern.T(`\bdescribe\(`, `test.describe(`),
		pattern.T(`\bcontext\(`, `test.describe(`),
		// Hooks gain the page fixture and become async like tests; their
		// body lines gain awaits. Callback shapes the rewrite does not
		// recognize fall through to the plain rename.
		pattern.F(`\b(beforeEach|afterEach|before|after)\(\s*(?:async\s*)?(?:\(\)|function\s*\(\))\s*(?:=>)?\s*\{`,
			func(g []string) string {
				return "test." + playwrightHook(g[1]) + "(async ({ page }) => {"
			}),
		pattern.T(`(^|\s)beforeEach\(`, `${1}test.beforeEach(`),
		pattern.T(`(^|\s)afterEach\(`, `${1}test.afterEach(`),
		pattern.T(`(^|\s)before\(`, `${1}test.beforeAll(`),
		pattern.T(`(^|\s)after\(`, `${1}test.afterAll(`),
		// Tests gain the page fixture; cypress callbacks are synchronous,
		// playwright bodies await.
		pattern.F(`\b(?:it|specify)(\.skip|\.only)?\(\s*(['"][^'"\n]*['"])\s*,\s*(?:async\s*)?(?:\(\)|function\s*\(\))\s*(?:=>)?\s*\{`,
			func(g []string) string {
				return "test" + g[1] + "(" + g[2] + ", async ({ page }) => {"
			}),
	)

	s.Register(pattern.CategoryNavigation,
		pattern.T(`(^|\s)cy\.visit\(`, `${1}await page.goto(`),
		pattern.T(`(^|\s)cy\.go\(\s*['"]back['"]\s*\)`, `${1}await page.goBack()`),
		pattern.T(`(^|\s)cy\.go\(\s*['"]forward['"]\s*\)`, `${1}await page.goForward()`),
		pattern.T(`(^|\s)cy\.reload\(\)`, `${1}await page.reload()`),
	)

	s.Register(pattern.CategorySelection,
		pattern.T(`\bcy\.get\(`, `page.locator(`),
		pattern.T(`\bcy\.contains\(`, `page.getByText(`),
	)

	s.Register(pattern.CategoryInteraction,
		pattern.T(`^(\s*)page\.`, `${1}await page.`),
		// Statements embedded after an opening brace or a preceding
		// statement on the same line await too.
		pattern.T(`([{;]\s*)page\.`, `${1}await page.`),
		pattern.T(`\.type\(`, `.fill(`),
	)

	s.Register(pattern.CategoryAssertion,
		// Negated spellings normalize first so the positive rules below
		// never see them.
		pattern.F(`^(\s*)(.+?)\.should\('not\.be\.visible'\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").not.toBeVisible();"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('not\.exist'\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").not.toBeAttached();"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('not\.contain',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").not.toContainText(" + g[3] + ");"
		}),
		pattern.F(`^(\s*)cy\.url\(\)\.should\('include',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(page).toHaveURL(new RegExp(" + g[2] + "));"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('be\.visible'\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toBeVisible();"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('exist'\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toBeAttached();"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('have\.text',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toHaveText(" + g[3] + ");"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('(?:contain|include\.text)',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toContainText(" + g[3] + ");"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('have\.value',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toHaveValue(" + g[3] + ");"
		}),
		pattern.F(`^(\s*)(.+?)\.should\('have\.length',\s*([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "await expect(" + g[2] + ").toHaveCount(" + g[3] + ");"
		}),
	)

	s.Register(pattern.CategoryWait,
		pattern.T(`(^|\s)cy\.wait\((\d+)\)`, `${1}await page.waitForTimeout(${2})`),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`(^|\s)cy\.intercept\(`, `${1}await page.route(`),
		pattern.T(`(^|\s)cy\.clock\(\)`, `${1}await page.clock.install()`),
		pattern.T(`(^|\s)cy\.tick\((\d+)\)`, `${1}await page.clock.runFor(${2})`),
	)

	return s
}

// playwrightHook maps a source hook name to its playwright spelling.
func playwrightHook(name string) string {
	switch name {
	case "before":
		return "beforeAll"
	case "after":
		return "afterAll"
	}
	return name
}
