package mocha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/dialects/jest"
	"github.com/testshift/core/pkg/converter/dialects/vitest"
	"github.com/testshift/core/pkg/domain"
)

func newConverter(t *testing.T, target domain.Dialect) *converter.Converter {
	t.Helper()
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(jest.Definition())
	r.Register(vitest.Definition())
	c, err := r.New(domain.DialectMocha, target)
	require.NoError(t, err)
	return c
}

func TestConvertBasicSuite(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	src := `const chai = require('chai');
const expect = chai.expect;

describe('calculator', () => {
  context('addition', () => {
    before(() => {});

    it('adds', () => {
      expect(add(1, 2)).to.equal(3);
    });
  });
});
`
	out := c.Convert(src)

	assert.Contains(t, out, "import { jest } from '@jest/globals';")
	assert.Contains(t, out, "describe('addition', () => {")
	assert.Contains(t, out, "beforeAll(")
	assert.Contains(t, out, "expect(add(1, 2)).toBe(3);")
	assert.NotContains(t, out, ".to.")
}

func TestChaiAssertionCascade(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strict equal", "expect(v).to.equal(3);", "expect(v).toBe(3);"},
		{"deep equal", "expect(v).to.deep.equal({ a: 1 });", "expect(v).toEqual({ a: 1 });"},
		{"eql", "expect(v).to.eql([1, 2]);", "expect(v).toEqual([1, 2]);"},
		{"true", "expect(v).to.be.true;", "expect(v).toBe(true);"},
		{"false", "expect(v).to.be.false;", "expect(v).toBe(false);"},
		{"null", "expect(v).to.be.null;", "expect(v).toBeNull();"},
		{"undefined", "expect(v).to.be.undefined;", "expect(v).toBeUndefined();"},
		{"exist", "expect(v).to.exist;", "expect(v).toBeDefined();"},
		{"lengthOf", "expect(list).to.have.lengthOf(3);", "expect(list).toHaveLength(3);"},
		{"include", "expect(list).to.include('x');", "expect(list).toContain('x');"},
		{"contain", "expect(list).to.contain('x');", "expect(list).toContain('x');"},
		{"match", "expect(s).to.match(/ab+/);", "expect(s).toMatch(/ab+/);"},
		{"throw", "expect(fn).to.throw('boom');", "expect(fn).toThrow('boom');"},
		{"instanceOf", "expect(e).to.be.instanceOf(Error);", "expect(e).toBeInstanceOf(Error);"},
		{"greaterThan", "expect(n).to.be.greaterThan(5);", "expect(n).toBeGreaterThan(5);"},
		{"above", "expect(n).to.be.above(5);", "expect(n).toBeGreaterThan(5);"},
		{"below", "expect(n).to.be.below(5);", "expect(n).toBeLessThan(5);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
		})
	}
}

func TestNegationSpellingsConverge(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// chai allows .to.not. and .not.to.; both canonicalize identically.
	a := c.Convert("expect(v).to.not.equal(3);\n")
	b := c.Convert("expect(v).not.to.equal(3);\n")
	assert.Equal(t, a, b)
	assert.Equal(t, "expect(v).not.toBe(3);\n", a)
}

func TestNegatedContainsSingleRewrite(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// One negated containment assertion, not two colliding rewrites.
	assert.Equal(t,
		"expect(list).not.toContain('x');\n",
		c.Convert("expect(list).to.not.include('x');\n"))
}

func TestSinonChaiCallOrder(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// called is a prefix of calledWith/calledOnce; specific first.
	tests := []struct {
		in   string
		want string
	}{
		{"expect(spy).to.have.been.calledWith(1, 2);", "expect(spy).toHaveBeenCalledWith(1, 2);"},
		{"expect(spy).to.have.been.calledOnce;", "expect(spy).toHaveBeenCalledTimes(1);"},
		{"expect(spy).to.have.been.calledTwice;", "expect(spy).toHaveBeenCalledTimes(2);"},
		{"expect(spy).to.have.been.called;", "expect(spy).toHaveBeenCalled();"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
	}
}

func TestSpyPropertyAssertions(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// The boolean-property spelling rewrites to a call matcher, not to
	// expect(spy.calledOnce).toBe(true).
	assert.Equal(t,
		"expect(spy).toHaveBeenCalledTimes(1);\n",
		c.Convert("expect(spy.calledOnce).to.be.true;\n"))
	assert.Equal(t,
		"expect(spy).toHaveBeenCalled();\n",
		c.Convert("expect(spy.called).to.be.true;\n"))
}

func TestSinonRewrites(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"stub with returns", "sinon.stub(api, 'fetch').returns(data);", "jest.spyOn(api, 'fetch').mockReturnValue(data);"},
		{"stub with resolves", "sinon.stub(api, 'fetch').resolves(data);", "jest.spyOn(api, 'fetch').mockResolvedValue(data);"},
		{"bare method stub", "sinon.stub(api, 'fetch');", "jest.spyOn(api, 'fetch').mockImplementation(() => {});"},
		{"anonymous stub", "const f = sinon.stub();", "const f = jest.fn();"},
		{"method spy", "sinon.spy(api, 'fetch');", "jest.spyOn(api, 'fetch');"},
		{"anonymous spy", "const f = sinon.spy();", "const f = jest.fn();"},
		{"fake timers", "const clock = sinon.useFakeTimers();", "const clock = jest.useFakeTimers();"},
		{"tick", "clock.tick(500);", "jest.advanceTimersByTime(500);"},
		{"restore all", "sinon.restore();", "jest.restoreAllMocks();"},
		{"callsFake", "stub.callsFake(() => 7);", "stub.mockImplementation(() => 7);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
		})
	}
}

func TestVitestTarget(t *testing.T) {
	c := newConverter(t, domain.DialectVitest)

	tests := []struct {
		in   string
		want string
	}{
		{"sinon.stub(api, 'fetch').returns(data);", "vi.spyOn(api, 'fetch').mockReturnValue(data);"},
		{"const f = sinon.stub();", "const f = vi.fn();"},
		{"sinon.restore();", "vi.restoreAllMocks();"},
		{"expect(v).to.equal(3);", "expect(v).toBe(3);"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
	}

	out := c.Convert("import sinon from 'sinon';\n")
	assert.Contains(t, out, "import { vi } from 'vitest';")
}

func TestConvertSingleLineTestBody(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// A test whose body sits on the opener line still gets its assertion
	// rewritten.
	assert.Equal(t,
		"it('adds', () => { expect(sum(1, 2)).toBe(3); });\n",
		c.Convert("it('adds', () => { expect(sum(1, 2)).to.equal(3); });\n"))
}

func TestRuleSetNamesDialects(t *testing.T) {
	assert.Equal(t, "mocha", JestRules().Source())
	assert.Equal(t, "jest", JestRules().Target())
	assert.Equal(t, "vitest", VitestRules().Target())
}

func TestPendingTestBecomesTodo(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	assert.Equal(t, "it.todo('handles leap years');\n", c.Convert("it('handles leap years');\n"))
}

func TestChaiPluginIsTodo(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	out := c.Convert("chai.use(require('sinon-chai'));\n")

	assert.Contains(t, out, "TESTSHIFT-TODO(chai-plugin)")
	assert.Contains(t, out, "// original: chai.use(require('sinon-chai'));")
	assert.Contains(t, out, "expect.extend")
}

func TestSinonMockIsTodo(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	out := c.Convert("const mock = sinon.mock(api);\n")

	assert.Contains(t, out, "TESTSHIFT-TODO(sinon-mock-api)")
	assert.Contains(t, out, "// original: const mock = sinon.mock(api);")
}

func TestTimeoutTuningWarns(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	out := c.Convert("this.timeout(5000);\n")

	assert.Contains(t, out, "TESTSHIFT-WARN")
	assert.Contains(t, out, "this.timeout(5000);")
}

func TestMultiLineStubJoined(t *testing.T) {
	c := newConverter(t, domain.DialectJest)

	// A 4-line double declaration with a trailing config object re-joins
	// and converts once.
	src := `const stub = sinon.stub(api, 'load').returns({
  id: 7,
  name: 'x',
});
`
	out := c.Convert(src)
	assert.Contains(t, out, "jest.spyOn(api, 'load').mockReturnValue({")
	assert.NotContains(t, out, "sinon")
}

func TestDetectProfile(t *testing.T) {
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(jest.Definition())
	d := r.Detector()

	res := d.Detect(`const sinon = require('sinon');
describe('x', () => {
  it('y', () => {
    expect(v).to.equal(1);
  });
});`)
	assert.Equal(t, domain.DialectMocha, res.Dialect)
}
