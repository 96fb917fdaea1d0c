// Package jest defines the Jest dialect.
package jest

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Jest dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectJest,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectVitest: VitestRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectJest,
		SuiteOpeners: []string{"describe"},
		TestOpeners:  []string{"it", "test"},
		Hooks: []scan.HookOpener{
			{Name: "beforeAll", Kind: domain.HookBeforeAll},
			{Name: "afterAll", Kind: domain.HookAfterAll},
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
		},
		// toHaveBeenCalled is a prefix of two longer matchers; the longer
		// tokens must come first.
		Assertions: []scan.AssertionSignature{
			{Token: ".toHaveBeenCalledTimes(", Kind: domain.AssertCallCount},
			{Token: ".toHaveBeenCalledWith(", Kind: domain.AssertCalledWith},
			{Token: ".toHaveBeenCalled(", Kind: domain.AssertCalled},
			{Token: ".toMatchSnapshot(", Kind: domain.AssertSnapshot},
			{Token: ".toMatchObject(", Kind: domain.AssertMatch},
			{Token: ".toStrictEqual(", Kind: domain.AssertStrictEq},
			{Token: ".toContainEqual(", Kind: domain.AssertContains},
			{Token: ".toBeInstanceOf(", Kind: domain.AssertInstanceOf},
			{Token: ".toBeGreaterThan(", Kind: domain.AssertGreater},
			{Token: ".toBeLessThan(", Kind: domain.AssertLess},
			{Token: ".toBeUndefined(", Kind: domain.AssertUndefined},
			{Token: ".toBeDefined(", Kind: domain.AssertDefined},
			{Token: ".toHaveLength(", Kind: domain.AssertLength},
			{Token: ".toBeTruthy(", Kind: domain.AssertTruthy},
			{Token: ".toBeFalsy(", Kind: domain.AssertFalsy},
			{Token: ".toBeNull(", Kind: domain.AssertNull},
			{Token: ".toContain(", Kind: domain.AssertContains},
			{Token: ".toEqual(", Kind: domain.AssertDeepEqual},
			{Token: ".toMatch(", Kind: domain.AssertMatch},
			{Token: ".toThrow(", Kind: domain.AssertThrows},
			{Token: ".resolves.", Kind: domain.AssertResolves},
			{Token: ".rejects.", Kind: domain.AssertRejects},
			{Token: ".toBe(", Kind: domain.AssertEqual},
		},
		Mocks: []scan.MockSignature{
			{Token: "jest.requireActual(", Op: domain.MockModule, NeedsAsync: true},
			{
				Token:    "jest.isolateModules(",
				Op:       domain.MockModule,
				NoAnalog: true,
				TodoID:   "jest-isolate-modules",
				Advice:   "use vi.resetModules with a dynamic import inside the test",
			},
			{Token: "jest.advanceTimersByTime(", Op: domain.MockTimersAdvance},
			{Token: "jest.runOnlyPendingTimers(", Op: domain.MockTimersAdvance},
			{Token: "jest.useFakeTimers(", Op: domain.MockTimersInstall},
			{Token: "jest.useRealTimers(", Op: domain.MockTimersRestore},
			{Token: "jest.runAllTimers(", Op: domain.MockTimersAdvance},
			{Token: "jest.restoreAllMocks(", Op: domain.MockReset},
			{Token: "jest.clearAllMocks(", Op: domain.MockReset},
			{Token: "jest.resetAllMocks(", Op: domain.MockReset},
			{Token: "jest.resetModules(", Op: domain.MockReset},
			{Token: "jest.setTimeout(", Op: domain.MockConfig},
			{Token: "jest.spyOn(", Op: domain.MockSpyOn},
			{Token: "jest.mocked(", Op: domain.MockCreate},
			{Token: "jest.unmock(", Op: domain.MockModule},
			{Token: "jest.mock(", Op: domain.MockModule},
			{Token: "jest.fn(", Op: domain.MockCreate},
			{Token: ".mockResolvedValue(", Op: domain.MockStubReturn},
			{Token: ".mockRejectedValue(", Op: domain.MockStubReturn},
			{Token: ".mockReturnValue(", Op: domain.MockStubReturn},
			{Token: ".mockImplementation(", Op: domain.MockStubReturn},
		},
		NegationMarkers: []string{".not."},
		RuntimeModules:  []string{"@jest/globals", "jest"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectJest,
		Imports: []string{"@jest/globals"},
		Strong: []detect.Signal{
			detect.Strong(`\bjest\.(?:fn|mock|spyOn|useFakeTimers|requireActual|isolateModules)\s*\(`, "jest.* API"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bexpect\s*\(`, "expect call"),
			detect.Weak(`\b(?:it|test)\s*\(`, "test block"),
		},
	}
}
