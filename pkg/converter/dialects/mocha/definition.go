// Package mocha defines the Mocha dialect with chai assertions and sinon
// test doubles.
package mocha

import (
	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition builds the Mocha dialect definition.
func Definition() *converter.Definition {
	return &converter.Definition{
		Dialect: domain.DialectMocha,
		Syntax:  scan.New(syntaxConfig()),
		Profile: profile(),
		Targets: map[domain.Dialect]func() *pattern.Set{
			domain.DialectJest:   JestRules,
			domain.DialectVitest: VitestRules,
		},
	}
}

func syntaxConfig() scan.Config {
	return scan.Config{
		Dialect:      domain.DialectMocha,
		SuiteOpeners: []string{"describe", "context"},
		TestOpeners:  []string{"it", "specify"},
		Hooks: []scan.HookOpener{
			{Name: "beforeEach", Kind: domain.HookBeforeEach},
			{Name: "afterEach", Kind: domain.HookAfterEach},
			{Name: "before", Kind: domain.HookBeforeAll},
			{Name: "after", Kind: domain.HookAfterAll},
		},
		// sinon-chai matchers first: called is a prefix of calledWith and
		// calledOnce, and the property spellings (.to.be.true) have no
		// trailing paren.
		Assertions: []scan.AssertionSignature{
			{Token: ".to.have.been.calledWith(", Kind: domain.AssertCalledWith},
			{Token: ".to.have.been.calledOnce", Kind: domain.AssertCallCount},
			{Token: ".to.have.been.calledTwice", Kind: domain.AssertCallCount},
			{Token: ".to.have.been.called", Kind: domain.AssertCalled},
			{Token: ".to.deep.equal(", Kind: domain.AssertDeepEqual},
			{Token: ".to.have.lengthOf(", Kind: domain.AssertLength},
			{Token: ".to.have.length(", Kind: domain.AssertLength},
			{Token: ".to.be.instanceOf(", Kind: domain.AssertInstanceOf},
			{Token: ".to.be.an.instanceof(", Kind: domain.AssertInstanceOf},
			{Token: ".to.be.greaterThan(", Kind: domain.AssertGreater},
			{Token: ".to.be.above(", Kind: domain.AssertGreater},
			{Token: ".to.be.lessThan(", Kind: domain.AssertLess},
			{Token: ".to.be.below(", Kind: domain.AssertLess},
			{Token: ".to.be.undefined", Kind: domain.AssertUndefined},
			{Token: ".to.be.null", Kind: domain.AssertNull},
			{Token: ".to.be.true", Kind: domain.AssertTruthy},
			{Token: ".to.be.false", Kind: domain.AssertFalsy},
			{Token: ".to.exist", Kind: domain.AssertDefined},
			{Token: ".to.include(", Kind: domain.AssertContains},
			{Token: ".to.contain(", Kind: domain.AssertContains},
			{Token: ".to.equal(", Kind: domain.AssertEqual},
			{Token: ".to.eql(", Kind: domain.AssertDeepEqual},
			{Token: ".to.match(", Kind: domain.AssertMatch},
			{Token: ".to.throw(", Kind: domain.AssertThrows},
			// Catch-all for .to.not.X chains, whose positive token is
			// broken by the interleaved not. The emitter's normalizer
			// canonicalizes the spelling before the positive rewrites.
			{Token: ".to.not.", Kind: domain.AssertEqual, Negated: true},
		},
		Mocks: []scan.MockSignature{
			{
				Token:    "sinon.mock(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "sinon-mock-api",
				Advice:   "rewrite the expectation-style mock with a plain function mock and explicit assertions",
			},
			{
				Token:    "chai.use(",
				Op:       domain.MockCreate,
				NoAnalog: true,
				TodoID:   "chai-plugin",
				Advice:   "port plugin matchers with expect.extend",
			},
			{
				Token:  "this.timeout(",
				Op:     domain.MockConfig,
				Risky:  true,
				Advice: "nearest equivalent is the test's timeout option or a file-scope setTimeout on the runtime",
			},
			{
				Token:  "this.retries(",
				Op:     domain.MockConfig,
				Risky:  true,
				Advice: "nearest equivalent is retryTimes configured at file scope",
			},
			{Token: "sinon.useFakeTimers(", Op: domain.MockTimersInstall},
			{Token: "sinon.restore(", Op: domain.MockReset},
			{Token: "sinon.stub(", Op: domain.MockCreate},
			{Token: "sinon.spy(", Op: domain.MockSpyOn},
			{Token: "sinon.fake(", Op: domain.MockCreate},
			{Token: "clock.tick(", Op: domain.MockTimersAdvance},
			{Token: "clock.restore(", Op: domain.MockTimersRestore},
			{Token: ".callsFake(", Op: domain.MockStubReturn},
			{Token: ".resolves(", Op: domain.MockStubReturn},
			{Token: ".rejects(", Op: domain.MockStubReturn},
			{Token: ".returns(", Op: domain.MockStubReturn},
		},
		NegationMarkers: []string{".to.not.", ".not.to."},
		RuntimeModules:  []string{"mocha", "chai", "sinon", "sinon-chai"},
	}
}

func profile() detect.Profile {
	return detect.Profile{
		Dialect: domain.DialectMocha,
		Imports: []string{"chai", "sinon", "mocha", "sinon-chai"},
		Strong: []detect.Signal{
			detect.Strong(`\.to\.(?:equal|eql|deep|be|have|include|contain|match|throw|exist|not)\b`, "chai to-chain"),
			detect.Strong(`\bsinon\.(?:stub|spy|fake|mock|useFakeTimers|restore)\s*\(`, "sinon.* API"),
		},
		Weak: []detect.Signal{
			detect.Weak(`\bdescribe\s*\(`, "describe block"),
			detect.Weak(`\bit\s*\(`, "it block"),
		},
	}
}
