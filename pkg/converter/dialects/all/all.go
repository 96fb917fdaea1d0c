// Package all wires every dialect into one registry.
package all

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/dialects/cypress"
	"github.com/testshift/core/pkg/converter/dialects/jasmine"
	"github.com/testshift/core/pkg/converter/dialects/jest"
	"github.com/testshift/core/pkg/converter/dialects/mocha"
	"github.com/testshift/core/pkg/converter/dialects/playwright"
	"github.com/testshift/core/pkg/converter/dialects/selenium"
	"github.com/testshift/core/pkg/converter/dialects/vitest"
)

// NewRegistry builds a registry with every known dialect registered.
func NewRegistry() *converter.Registry {
	r := converter.NewRegistry()
	r.Register(cypress.Definition())
	r.Register(playwright.Definition())
	r.Register(selenium.Definition())
	r.Register(jest.Definition())
	r.Register(vitest.Definition())
	r.Register(mocha.Definition())
	r.Register(jasmine.Definition())
	return r
}
