// Package cypress defines the Cypress dialect: classification tables,
// detection profile, and rule sets for its registered targets.
package cypress

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Cypress dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectCypress,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectPlaywright: PlaywrightRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectCypress,
		SuiteOpeners: []string{"describe", "context"},
		TestOpeners:  []string{"it", "specify"},
		Hooks: []scan.HookOpener{
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
			{Name: "before", Kind: domain.HookBeforeAll},
			{Name: "after", Kind: domain.HookAfterAll},
		},
		// Most-specific first: negated spellings carry the not. prefix
		// inside the should argument, so they must precede the positive
		// token they embed.
		Assertions: []scan.AssertionSignature{
			{Token: ".should('not.be.visible'", Kind: domain.AssertVisible, Negated: true},
			{Token: ".should('not.exist'", Kind: domain.AssertExists, Negated: true},
			{Token: ".should('not.contain'", Kind: domain.AssertContains, Negated: true},
			{Token: ".should('be.visible'", Kind: domain.AssertVisible},
			{Token: ".should('exist'", Kind: domain.AssertExists},
			{Token: ".should('have.text'", Kind: domain.AssertText},
			{Token: ".should('include.text'", Kind: domain.AssertText},
			{Token: ".should('contain'", Kind: domain.AssertContains},
			{Token: ".should('have.value'", Kind: domain.AssertValue},
			{Token: ".should('have.length'", Kind: domain.AssertLength},
			{Token: "cy.url().should(", Kind: domain.AssertURL},
			{Token: ".should(", Kind: domain.AssertEqual},
		},
		Mocks: []scan.MockSignature{
			{Token: "cy.intercept(", Op: domain.MockIntercept, NeedsAsync: true},
			{
				Token:    "cy.wait('@",
				Op:       domain.MockIntercept,
				NoAnalog: true,
				TodoID:   "cypress-wait-alias",
				Advice:   "replace the alias wait with page.waitForResponse and a URL predicate",
			},
			{
				Token:    "cy.stub(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "cypress-stub",
				Advice:   "stub at the network layer with page.route, or expose a test double via page.exposeFunction",
			},
			{Token: "cy.clock(", Op: domain.MockTimersInstall, NeedsAsync: true},
			{Token: "cy.tick(", Op: domain.MockTimersAdvance, NeedsAsync: true},
		},
		NegationMarkers: []string{"'not.", "\"not."},
		RuntimeModules:  []string{"cypress"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectCypress,
		Imports: []string{"cypress"},
		Strong: []detect.Signal{
			detect.Strong(`\bcy\.(?:visit|get|contains|intercept|stub|clock)\s*\(`, "cy.* command"),
			detect.Strong(`\bCypress\.(?:env|config|Commands)\b`, "Cypress.* global"),
			detect.Strong(`///\s*<reference types="cypress"`, "cypress reference directive"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bit\s*\(`, "it block"),
			detect.Weak(`\.should\s*\(`, "should assertion"),
		},
	}
}
