// Package vitest defines the Vitest dialect.
package vitest

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Vitest dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectVitest,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectJest: JestRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectVitest,
		SuiteOpeners: []string{"describe", "suite"},
		TestOpeners:  []string{"it", "test"},
		Hooks: []scan.HookOpener{
			{Name: "beforeAll", Kind: domain.HookBeforeAll},
			{Name: "afterAll", Kind: domain.HookAfterAll},
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
		},
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
			{Token: "vi.importActual(", Op: domain.MockModule},
			{
				Token:    "vi.hoisted(",
				Op:       domain.MockModule,
				NoAnalog: true,
				TodoID:   "vitest-hoisted",
				Advice:   "jest hoists jest.mock automatically; move the hoisted setup above the mock factory",
			},
			{
				Token:    "vi.stubGlobal(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "vitest-stub-global",
				Advice:   "assign to globalThis in beforeEach and restore in afterEach",
			},
			{Token: "vi.advanceTimersByTime(", Op: domain.MockTimersAdvance},
			{Token: "vi.runOnlyPendingTimers(", Op: domain.MockTimersAdvance},
			{Token: "vi.useFakeTimers(", Op: domain.MockTimersInstall},
			{Token: "vi.useRealTimers(", Op: domain.MockTimersRestore},
			{Token: "vi.runAllTimers(", Op: domain.MockTimersAdvance},
			{Token: "vi.restoreAllMocks(", Op: domain.MockReset},
			{Token: "vi.clearAllMocks(", Op: domain.MockReset},
			{Token: "vi.resetAllMocks(", Op: domain.MockReset},
			{Token: "vi.resetModules(", Op: domain.MockReset},
			{Token: "vi.setConfig(", Op: domain.MockConfig},
			{Token: "vi.spyOn(", Op: domain.MockSpyOn},
			{Token: "vi.mocked(", Op: domain.MockCreate},
			{Token: "vi.unmock(", Op: domain.MockModule},
			{Token: "vi.mock(", Op: domain.MockModule},
			{Token: "vi.fn(", Op: domain.MockCreate},
			{Token: ".mockResolvedValue(", Op: domain.MockStubReturn},
			{Token: ".mockRejectedValue(", Op: domain.MockStubReturn},
			{Token: ".mockReturnValue(", Op: domain.MockStubReturn},
			{Token: ".mockImplementation(", Op: domain.MockStubReturn},
		},
		NegationMarkers: []string{".not."},
		RuntimeModules:  []string{"vitest"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectVitest,
		Imports: []string{"vitest"},
		Strong: []detect.Signal{
			detect.Strong(`\bvi\.(?:fn|mock|spyOn|useFakeTimers|importActual|hoisted|stubGlobal)\s*\(`, "vi.* API"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bexpect\s*\(`, "expect call"),
			detect.Weak(`\b(?:it|test)\s*\(`, "test block"),
		},
	}
}
