// Package selenium defines the WebdriverIO-style Selenium dialect.
package selenium

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Selenium dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectSelenium,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectPlaywright: PlaywrightRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectSelenium,
		SuiteOpeners: []string{"describe"},
		TestOpeners:  []string{"it"},
		Hooks: []scan.HookOpener{
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
			{Name: "before", Kind: domain.HookBeforeAll},
			{Name: "after", Kind: domain.HookAfterAll},
		},
		Assertions: []scan.AssertionSignature{
			{Token: ".toBeDisplayed(", Kind: domain.AssertVisible},
			{Token: ".toExist(", Kind: domain.AssertExists},
			{Token: ".toHaveText(", Kind: domain.AssertText},
			{Token: ".toHaveValue(", Kind: domain.AssertValue},
			{Token: ".toHaveUrl(", Kind: domain.AssertURL},
			{Token: ".toEqual(", Kind: domain.AssertDeepEqual},
			{Token: ".toBe(", Kind: domain.AssertEqual},
		},
		Mocks: []scan.MockSignature{
			{
				Token:    "browser.mock(",
				Op:       domain.MockIntercept,
				NoAnalog: true,
				TodoID:   "wdio-browser-mock",
				Advice:   "re-express the network mock with page.route and route.fulfill",
			},
			{
				Token:    "browser.execute(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "wdio-browser-execute",
				Advice:   "move the injected script to page.evaluate",
			},
		},
		NegationMarkers: []string{".not."},
		RuntimeModules:  []string{"webdriverio", "@wdio/globals"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectSelenium,
		Imports: []string{"webdriverio", "@wdio/globals", "selenium-webdriver"},
		Strong: []detect.Signal{
			detect.Strong(`\bbrowser\.(?:url|pause|mock|execute|keys)\s*\(`, "browser.* command"),
			detect.Strong(`await\s+\$\$?\(`, "awaited $ selector"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bexpect\s*\(`, "expect call"),
		},
	}
}
