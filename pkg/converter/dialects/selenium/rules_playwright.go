package selenium

import "github.com/testshift/core/pkg/converter/pattern"

// PlaywrightRules builds the selenium (WebdriverIO) -> playwright rule set.
func PlaywrightRules() *pattern.Set {
	s := pattern.NewSet("selenium", "playwright")

	s.Register(pattern.CategoryImports,
		pattern.T(`^(\s*)import\s*\{[^}]*\}\s*from\s*['"]@wdio/globals['"];?\s*$`,
			`${1}import { test, expect } from '@playwright/test';`),
		pattern.T(`^(\s*)(?:const|let|var)\s+[^=\n]+=\s*require\(['"]webdriverio['"]\);?\s*$`,
			`${1}import { test, expect } from '@playwright/test';`),
	)

	s.Register(pattern.CategoryStructure,
		pattern.T(`\bdescribe\.skip\(`, `test.describe.skip(`),
		pattern.T(`\bdescribe\.only\(`, `test.describe.only(`),
		pattern.T(`\bdescribe\(`, `test.describe(`),
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
		pattern.F(`\bit(\.skip|\.only)?\(\s*(['"][^'"\n]*['"])\s*,\s*async\s*(?:\(\)|function\s*\(\))\s*(?:=>)?\s*\{`,
			func(g []string) string {
				return "test" + g[1] + "(" + g[2] + ", async ({ page }) => {"
			}),
	)

	s.Register(pattern.CategoryNavigation,
		pattern.T(`\bbrowser\.url\(`, `page.goto(`),
		pattern.T(`\bbrowser\.back\(\)`, `page.goBack()`),
		pattern.T(`\bbrowser\.refresh\(\)`, `page.reload()`),
	)

	s.Register(pattern.CategorySelection,
		pattern.T(`(^|[^\w$])\$\$\(`, `${1}page.locator(`),
		pattern.T(`(^|[^\w$])\$\(`, `${1}page.locator(`),
	)

	s.Register(pattern.CategoryInteraction,
		pattern.T(`\.setValue\(`, `.fill(`),
		pattern.T(`\.addValue\(`, `.pressSequentially(`),
		pattern.T(`\bbrowser\.keys\(`, `page.keyboard.press(`),
	)

	s.Register(pattern.CategoryAssertion,
		pattern.T(`\.toBeDisplayed\(`, `.toBeVisible(`),
		pattern.T(`\.toExist\(`, `.toBeAttached(`),
		pattern.T(`\.toHaveUrl\(`, `.toHaveURL(`),
	)

	s.Register(pattern.CategoryWait,
		pattern.T(`\bbrowser\.pause\(`, `page.waitForTimeout(`),
		pattern.F(`^(\s*)await\s+(.+?)\.waitForDisplayed\([^)\n]*\);?\s*$`, func(g []string) string {
			return g[1] + "await " + g[2] + ".waitFor({ state: 'visible' });"
		}),
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
