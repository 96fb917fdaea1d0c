package playwright

import "github.com/testshift/core/pkg/converter/pattern"

// CypressRules builds the playwright -> cypress rule set. Compound
// openers (test.describe, test.beforeEach) run before the bare test(
// opener, which would otherwise corrupt them.
func CypressRules() *pattern.Set {
	s := pattern.NewSet("playwright", "cypress")

	s.Register(pattern.CategoryImports,
		pattern.T(`^(\s*)import\s*\{[^}]*\}\s*from\s*['"]@playwright/test['"];?\s*$`,
			`${1}/// <reference types="cypress" />`),
	)

	s.Register(pattern.CategoryStructure,
		pattern.T(`\btest\.describe\.skip\(`, `describe.skip(`),
		pattern.T(`\btest\.describe\.only\(`, `describe.only(`),
		pattern.T(`\btest\.describe\(`, `describe(`),
		pattern.T(`\btest\.beforeAll\(`, `before(`),
		pattern.T(`\btest\.afterAll\(`, `after(`),
		pattern.T(`\btest\.beforeEach\(`, `beforeEach(`),
		pattern.T(`\btest\.afterEach\(`, `afterEach(`),
		// Drop the fixture destructuring; cypress callbacks take no args.
		pattern.F(`\btest(\.skip|\.only)?\(\s*(['"][^'"\n]*['"])\s*,\s*async\s*\(\{[^}\n]*\}\)\s*=>\s*\{`,
			func(g []string) string {
				return "it" + g[1] + "(" + g[2] + ", () => {"
			}),
		pattern.F(`\btest(\.skip|\.only)?\(\s*(['"][^'"\n]*['"])\s*,\s*(?:async\s*)?\(\)\s*=>\s*\{`,
			func(g []string) string {
				return "it" + g[1] + "(" + g[2] + ", () => {"
			}),
		// Hook callbacks keep their shape minus async/fixtures.
		pattern.T(`\(\s*async\s*\(\{[^}\n]*\}\)\s*=>\s*\{`, `(() => {`),
	)

	s.Register(pattern.CategoryNavigation,
		pattern.T(`(^|\s)(?:await\s+)?page\.goto\(`, `${1}cy.visit(`),
		pattern.T(`(^|\s)(?:await\s+)?page\.goBack\(\)`, `${1}cy.go('back')`),
		pattern.T(`(^|\s)(?:await\s+)?page\.goForward\(\)`, `${1}cy.go('forward')`),
		pattern.T(`(^|\s)(?:await\s+)?page\.reload\(\)`, `${1}cy.reload()`),
	)

	s.Register(pattern.CategorySelection,
		pattern.T(`\bpage\.locator\(`, `cy.get(`),
		pattern.T(`\bpage\.getByText\(`, `cy.contains(`),
	)

	s.Register(pattern.CategoryInteraction,
		pattern.T(`\.fill\(`, `.type(`),
		pattern.T(`^(\s*)await\s+cy\.`, `${1}cy.`),
	)

	s.Register(pattern.CategoryAssertion,
		// Negation first, most specific spellings before the generic ones.
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.not\.toBeVisible\(\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('not.be.visible');"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toBeHidden\(\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('not.be.visible');"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.not\.toBeAttached\(\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('not.exist');"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.not\.toContainText\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('not.contain', " + g[3] + ");"
		}),
		pattern.F(`^(\s*)await\s+expect\(page\)\.toHaveURL\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + "cy.url().should('include', " + g[2] + ");"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toBeVisible\(\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('be.visible');"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toBeAttached\(\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('exist');"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toHaveText\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('have.text', " + g[3] + ");"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toContainText\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('contain', " + g[3] + ");"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toHaveValue\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('have.value', " + g[3] + ");"
		}),
		pattern.F(`^(\s*)await\s+expect\((.+?)\)\.toHaveCount\(([^\n]+?)\);?\s*$`, func(g []string) string {
			return g[1] + g[2] + ".should('have.length', " + g[3] + ");"
		}),
	)

	s.Register(pattern.CategoryWait,
		pattern.T(`(^|\s)(?:await\s+)?page\.waitForTimeout\((\d+)\)`, `${1}cy.wait(${2})`),
	)

	s.Register(pattern.CategoryMocking,
		pattern.T(`(^|\s)(?:await\s+)?page\.route\(`, `${1}cy.intercept(`),
		pattern.T(`(^|\s)(?:await\s+)?page\.clock\.install\(\)`, `${1}cy.clock()`),
		pattern.T(`(^|\s)(?:await\s+)?page\.clock\.(?:runFor|fastForward)\((\d+)\)`, `${1}cy.tick(${2})`),
	)

	return s
}
