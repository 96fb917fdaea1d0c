// Package jasmine defines the Jasmine dialect.
package jasmine

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Jasmine dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectJasmine,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectJest: JestRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectJasmine,
		SuiteOpeners: []string{"describe"},
		TestOpeners:  []string{"it"},
		Hooks: []scan.HookOpener{
			{Name: "beforeAll", Kind: domain.HookBeforeAll},
			{Name: "afterAll", Kind: domain.HookAfterAll},
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
		},
		Assertions: []scan.AssertionSignature{
			{Token: ".toHaveBeenCalledOnceWith(", Kind: domain.AssertCalledWith},
			{Token: ".toHaveBeenCalledTimes(", Kind: domain.AssertCallCount},
			{Token: ".toHaveBeenCalledWith(", Kind: domain.AssertCalledWith},
			{Token: ".toHaveBeenCalled(", Kind: domain.AssertCalled},
			{Token: ".toBeInstanceOf(", Kind: domain.AssertInstanceOf},
			{Token: ".toBeGreaterThan(", Kind: domain.AssertGreater},
			{Token: ".toBeLessThan(", Kind: domain.AssertLess},
			{Token: ".toBeUndefined(", Kind: domain.AssertUndefined},
			{Token: ".toBeDefined(", Kind: domain.AssertDefined},
			{Token: ".toBeTruthy(", Kind: domain.AssertTruthy},
			{Token: ".toBeFalsy(", Kind: domain.AssertFalsy},
			{Token: ".toBeTrue(", Kind: domain.AssertTruthy},
			{Token: ".toBeFalse(", Kind: domain.AssertFalsy},
			{Token: ".toBeNull(", Kind: domain.AssertNull},
			{Token: ".toContain(", Kind: domain.AssertContains},
			{Token: ".toEqual(", Kind: domain.AssertDeepEqual},
			{Token: ".toMatch(", Kind: domain.AssertMatch},
			{Token: ".toThrow(", Kind: domain.AssertThrows},
			{Token: ".toBe(", Kind: domain.AssertEqual},
		},
		Mocks: []scan.MockSignature{
			{
				Token:    "jasmine.createSpyObj(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "jasmine-create-spy-obj",
				Advice:   "build a plain object whose methods are individual function mocks",
			},
			{Token: "jasmine.createSpy(", Op: domain.MockCreate},
			{Token: "jasmine.clock().install(", Op: domain.MockTimersInstall},
			{Token: "jasmine.clock().uninstall(", Op: domain.MockTimersRestore},
			{Token: "jasmine.clock().tick(", Op: domain.MockTimersAdvance},
			{Token: "spyOn(", Op: domain.MockSpyOn},
			{Token: ".and.returnValue(", Op: domain.MockStubReturn},
			{Token: ".and.resolveTo(", Op: domain.MockStubReturn},
			{Token: ".and.rejectWith(", Op: domain.MockStubReturn},
			{Token: ".and.callFake(", Op: domain.MockStubReturn},
			{Token: ".and.callThrough(", Op: domain.MockStubReturn},
			{Token: ".calls.reset(", Op: domain.MockReset},
		},
		NegationMarkers: []string{".not."},
		RuntimeModules:  []string{"jasmine", "jasmine-core"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectJasmine,
		Imports: []string{"jasmine", "jasmine-core"},
		Strong: []detect.Signal{
			detect.Strong(`\bjasmine\.(?:createSpy|createSpyObj|clock|any|objectContaining)\b`, "jasmine.* API"),
			detect.Strong(`\.and\.(?:returnValue|callFake|callThrough|resolveTo)\s*\(`, "spy .and. strategy"),
			detect.Strong(`\b(?:fdescribe|fit|xdescribe|xit)\s*\(`, "focus/exclude alias"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bexpect\s*\(`, "expect call"),
			detect.Weak(`\bspyOn\s*\(`, "spyOn call"),
		},
	}
}
