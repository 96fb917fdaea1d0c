package playwright

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/dialects/cypress"
	"github.com/testshift/core/pkg/domain"
)

func newConverter(t *testing.T) *converter.Converter {
	t.Helper()
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(cypress.Definition())
	c, err := r.New(domain.DialectPlaywright, domain.DialectCypress)
	require.NoError(t, err)
	return c
}

func TestConvertBasicSuite(t *testing.T) {
	c := newConverter(t)

	src := `import { test, expect } from '@playwright/test';

test.describe('login', () => {
  test('shows the form', async ({ page }) => {
    await page.goto('/login');
    await expect(page.locator('#username')).toBeVisible();
  });
});
`
	out := c.Convert(src)

	assert.Contains(t, out, "/// <reference types=\"cypress\" />")
	assert.Contains(t, out, "describe('login', () => {")
	assert.Contains(t, out, "it('shows the form', () => {")
	assert.Contains(t, out, "cy.visit('/login');")
	assert.Contains(t, out, "cy.get('#username').should('be.visible');")
	assert.NotContains(t, out, "TESTSHIFT")
	assert.NotContains(t, out, "page.")
}

func TestConvertAssertions(t *testing.T) {
	c := newConverter(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"visible", "await expect(page.locator('#a')).toBeVisible();", "cy.get('#a').should('be.visible');"},
		{"negated visible", "await expect(page.locator('#a')).not.toBeVisible();", "cy.get('#a').should('not.be.visible');"},
		{"hidden spelling", "await expect(page.locator('#a')).toBeHidden();", "cy.get('#a').should('not.be.visible');"},
		{"attached", "await expect(page.locator('#a')).toBeAttached();", "cy.get('#a').should('exist');"},
		{"text", "await expect(page.locator('h1')).toHaveText('Hi');", "cy.get('h1').should('have.text', 'Hi');"},
		{"contains", "await expect(page.locator('p')).toContainText('ok');", "cy.get('p').should('contain', 'ok');"},
		{"count", "await expect(page.locator('li')).toHaveCount(3);", "cy.get('li').should('have.length', 3);"},
		{"url", "await expect(page).toHaveURL('/dash');", "cy.url().should('include', '/dash');"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
		})
	}
}

func TestNegationSpellingsConverge(t *testing.T) {
	c := newConverter(t)

	// Both playwright spellings of an invisibility assertion produce the
	// same canonical cypress output.
	a := c.Convert("await expect(page.locator('#a')).not.toBeVisible();\n")
	b := c.Convert("await expect(page.locator('#a')).toBeHidden();\n")
	assert.Equal(t, a, b)
}

func TestConvertNavigationAndWaits(t *testing.T) {
	c := newConverter(t)

	tests := []struct {
		in   string
		want string
	}{
		{"await page.goto('/x');", "cy.visit('/x');"},
		{"await page.goBack();", "cy.go('back');"},
		{"await page.reload();", "cy.reload();"},
		{"await page.waitForTimeout(250);", "cy.wait(250);"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want+"\n", c.Convert(tt.in+"\n"))
	}
}

func TestConvertClock(t *testing.T) {
	c := newConverter(t)

	out := c.Convert("await page.clock.install();\nawait page.clock.runFor(1000);\n")
	assert.Contains(t, out, "cy.clock();")
	assert.Contains(t, out, "cy.tick(1000);")
}

func TestSlowTestWarns(t *testing.T) {
	c := newConverter(t)

	out := c.Convert("test.slow();\n")

	assert.Contains(t, out, "TESTSHIFT-WARN")
	assert.Contains(t, out, "raising the timeout in the test options")
	// The original call is preserved on the line below the warning.
	assert.Contains(t, out, "test.slow();")
}

func TestExposeFunctionIsTodo(t *testing.T) {
	c := newConverter(t)

	out := c.Convert("await page.exposeFunction('md5', text => hash(text));\n")

	assert.Contains(t, out, "TESTSHIFT-TODO(playwright-expose-function)")
	assert.Contains(t, out, "// original: await page.exposeFunction('md5', text => hash(text));")
}

func TestDetectProfile(t *testing.T) {
	r := converter.NewRegistry()
	r.Register(Definition())
	r.Register(cypress.Definition())
	d := r.Detector()

	res := d.Detect(`import { test, expect } from '@playwright/test';
test('x', async ({ page }) => { await page.goto('/'); });`)
	assert.Equal(t, domain.DialectPlaywright, res.Dialect)
}
