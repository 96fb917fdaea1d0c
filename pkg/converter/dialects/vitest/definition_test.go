package vitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/dialects/jest"
	"github.com/testshift/core/pkg/domain"
)

func newConverter(t *testing.T) *converter.Converter {
	t.Helper()
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(jest.Definition())
	c, err := r.New(domain.DialectVitest, domain.DialectJest)
	require.NoError(t, err)
	return c
}

func TestConvertBasicSuite(t *testing.T) {
	c := newConverter(t)

	src := `import { describe, it, expect, vi } from 'vitest';

describe('svc', () => {
	it('calls back', () => {
		const cb = vi.fn();
		cb();
		expect(cb).toHaveBeenCalled();
	});
});
`
	out := c.Convert(src)

	assert.Contains(t, out, "import { describe, it, expect, jest } from '@jest/globals';")
	assert.Contains(t, out, "const cb = jest.fn();")
	assert.NotContains(t, out, "vi.")
}

func TestImportActualLosesAwait(t *testing.T) {
	c := newConverter(t)

	assert.Equal(t,
		"const real = jest.requireActual('./math');\n",
		c.Convert("const real = await vi.importActual('./math');\n"))
}

func TestSetConfigBecomesSetTimeout(t *testing.T) {
	c := newConverter(t)

	assert.Equal(t,
		"jest.setTimeout(20000);\n",
		c.Convert("vi.setConfig({ testTimeout: 20000 });\n"))
}

func TestHoistedIsTodo(t *testing.T) {
	c := newConverter(t)

	src := `const mocks = vi.hoisted(() => {
	return { fetch: vi.fn() };
});
`
	out := c.Convert(src)

	assert.Contains(t, out, "TESTSHIFT-TODO(vitest-hoisted)")
	assert.Contains(t, out, "// original: const mocks = vi.hoisted(() => {")
	assert.NotContains(t, out, "jest.hoisted")
}

func TestStubGlobalIsTodo(t *testing.T) {
	c := newConverter(t)

	out := c.Convert("vi.stubGlobal('fetch', fakeFetch);\n")

	assert.Contains(t, out, "TESTSHIFT-TODO(vitest-stub-global)")
	assert.Contains(t, out, "globalThis")
}

func TestDetectDisambiguatesFromJest(t *testing.T) {
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(jest.Definition())
	d := r.Detector()

	// Shared describe/expect boilerplate; vi.fn is the deciding signal.
	res := d.Detect("describe('x', () => { it('y', () => { const f = vi.fn(); expect(f).toBeDefined(); }); });")
	require.Equal(t, domain.DialectVitest, res.Dialect)

	jestScore := d.Score("describe('x', () => { const f = vi.fn(); });", domain.DialectJest)
	viScore := d.Score("describe('x', () => { const f = vi.fn(); });", domain.DialectVitest)
	assert.Greater(t, viScore.Confidence, jestScore.Confidence)
}
