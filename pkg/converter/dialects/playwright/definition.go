// Package playwright defines the Playwright dialect.
package playwright

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Playwright dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectPlaywright,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectCypress: CypressRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectPlaywright,
		SuiteOpeners: []string{"test.describe"},
		TestOpeners:  []string{"test"},
		Hooks: []scan.HookOpener{
			{Name: "test.beforeAll", Kind: domain.HookBeforeAll},
			{Name: "test.afterAll", Kind: domain.HookAfterAll},
			{Name: "test.beforeEach", Kind: domain.HookBeforeEach},
			{Name: "test.afterEach", Kind: domain.HookAfterEach},
		},
		Assertions: []scan.AssertionSignature{
			{Token: ".toBeHidden(", Kind: domain.AssertVisible, Negated: true},
			{Token: ".toBeVisible(", Kind: domain.AssertVisible},
			{Token: ".toBeAttached(", Kind: domain.AssertExists},
			{Token: ".toHaveText(", Kind: domain.AssertText},
			{Token: ".toContainText(", Kind: domain.AssertContains},
			{Token: ".toHaveValue(", Kind: domain.AssertValue},
			{Token: ".toHaveCount(", Kind: domain.AssertLength},
			{Token: ".toHaveURL(", Kind: domain.AssertURL},
			{Token: ".toEqual(", Kind: domain.AssertDeepEqual},
			{Token: ".toBe(", Kind: domain.AssertEqual},
		},
		Mocks: []scan.MockSignature{
			{Token: "page.route(", Op: domain.MockIntercept},
			{Token: "page.unroute(", Op: domain.MockIntercept},
			{Token: "page.clock.install(", Op: domain.MockTimersInstall},
			{Token: "page.clock.runFor(", Op: domain.MockTimersAdvance},
			{Token: "page.clock.fastForward(", Op: domain.MockTimersAdvance},
			{
				Token:  "test.slow(",
				Op:     domain.MockConfig,
				Risky:  true,
				Advice: "nearest equivalent is raising the timeout in the test options",
			},
			{
				Token:  "test.setTimeout(",
				Op:     domain.MockConfig,
				Risky:  true,
				Advice: "nearest equivalent is the timeout option on the enclosing suite",
			},
			{
				Token:    "page.exposeFunction(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "playwright-expose-function",
				Advice:   "re-express the exposed binding as a cy.stub on the window object",
			},
		},
		NegationMarkers: []string{".not."},
		RuntimeModules:  []string{"@playwright/test", "playwright"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectPlaywright,
		Imports: []string{"@playwright/test", "playwright"},
		Strong: []detect.Signal{
			detect.Strong(`\bpage\.(?:goto|locator|getByText|getByRole|route)\s*\(`, "page.* API"),
			detect.Strong(`\btest\.describe\s*\(`, "test.describe block"),
			detect.Strong(`async\s*\(\{\s*page\s*[,}]`, "page fixture destructuring"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bexpect\s*\(`, "expect call"),
			detect.Weak(`\bawait\s`, "await usage"),
		},
	}
}
