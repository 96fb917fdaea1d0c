package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/converter"
	"github.com/testshift/core/pkg/converter/dialects/all"
	"github.com/testshift/core/pkg/domain"
)

const cypressSpec = `describe('login', () => {
	it('logs in', () => {
		cy.visit('/login');
		cy.get('#user').type('admin');
		cy.get('#submit').click();
	});
});
`

const jestSpec = `import { jest } from '@jest/globals';

test('adds', () => {
	const f = jest.fn();
	expect(f).toBeDefined();
});
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func newRunner(t *testing.T, opts ...Option) *Runner {
	t.Helper()
	r := all.NewRegistry()
	opts = append(opts, WithLogger(quietLogger()))
	return NewRunner(r, opts...)
}

func TestRunConvertsTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"login.cy.js":        cypressSpec,
		"cart/cart.spec.js":  cypressSpec,
		"cart/items.spec.js": cypressSpec,
	})
	outDir := t.TempDir()

	runner := newRunner(t, WithOutDir(outDir))
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 3, result.Stats.FilesConverted)
	assert.Equal(t, 0, result.Stats.FilesFailed)
	assert.Empty(t, result.Errors)

	// Results are sorted by path regardless of completion order.
	require.Len(t, result.Files, 3)
	assert.Equal(t, filepath.Join("cart", "cart.spec.js"), result.Files[0].Path)

	converted, readErr := os.ReadFile(filepath.Join(outDir, "login.cy.js"))
	require.NoError(t, readErr)
	assert.Contains(t, string(converted), "await page.goto('/login');")
	assert.NotContains(t, string(converted), "cy.")
}

func TestRunFailsFastOnConfigError(t *testing.T) {
	root := writeTree(t, map[string]string{"a.spec.js": cypressSpec})
	runner := newRunner(t)

	_, err := runner.Run(context.Background(), root, domain.DialectJest, domain.DialectCypress)
	assert.ErrorIs(t, err, converter.ErrUnregisteredPair)

	_, err = runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectCypress)
	assert.ErrorIs(t, err, converter.ErrSameDialect)

	_, err = runner.Run(context.Background(), root, domain.DialectUnknown, domain.Dialect("qunit"))
	assert.ErrorIs(t, err, converter.ErrUnknownDialect)
}

func TestRunSkipsNonCandidates(t *testing.T) {
	root := writeTree(t, map[string]string{
		"app.spec.js":                cypressSpec,
		"helper.js":                  "export const x = 1;\n",
		"node_modules/dep/a.spec.js": cypressSpec,
		"dist/out.spec.js":           cypressSpec,
	})

	runner := newRunner(t)
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesDiscovered)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "app.spec.js", result.Files[0].Path)
}

func TestRunDetectionModeIsolatesFailures(t *testing.T) {
	// ui.cy.js detects as cypress and converts; unit.spec.js detects as
	// jest, whose pair with playwright is unregistered; plain.spec.js has
	// no dialect signals at all.
	root := writeTree(t, map[string]string{
		"ui.cy.js":      cypressSpec,
		"unit.spec.js":  jestSpec,
		"plain.spec.js": "const x = 1;\n",
	})

	runner := newRunner(t)
	result, err := runner.Run(context.Background(), root, domain.DialectUnknown, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesConverted)
	assert.Equal(t, 2, result.Stats.FilesFailed)

	require.Len(t, result.Files, 1)
	assert.Equal(t, "ui.cy.js", result.Files[0].Path)
	assert.Equal(t, domain.DialectCypress, result.Files[0].Source)

	phases := map[string]string{}
	for _, e := range result.Errors {
		phases[e.Path] = e.Phase
	}
	assert.Equal(t, "pair", phases["unit.spec.js"])
	assert.Equal(t, "detect", phases["plain.spec.js"])
}

func TestRunMaxFileSizeFiltersAtDiscovery(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.spec.js": cypressSpec,
		"big.spec.js":   cypressSpec + cypressSpec + cypressSpec,
	})

	runner := newRunner(t, WithMaxFileSize(int64(len(cypressSpec))))
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesDiscovered)
	assert.Equal(t, "small.spec.js", result.Files[0].Path)
}

func TestRunGlobPatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"e2e/login.cy.js":    cypressSpec,
		"unit/calc.spec.js":  cypressSpec,
		"unit/other.spec.js": cypressSpec,
	})

	runner := newRunner(t, WithPatterns([]string{"e2e/**/*.cy.js"}))
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, filepath.Join("e2e", "login.cy.js"), result.Files[0].Path)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{"a.spec.js": cypressSpec})

	runner := newRunner(t)
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Empty(t, result.Files[0].OutPath)
}

func TestRunFilesBypassesDiscovery(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.spec.js": cypressSpec,
		"b.spec.js": cypressSpec,
	})

	runner := newRunner(t)
	result, err := runner.RunFiles(context.Background(), root, []string{"a.spec.js"},
		domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesDiscovered)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.spec.js", result.Files[0].Path)
}

func TestRunSummaryCountsAnnotations(t *testing.T) {
	withStub := `describe('checkout', () => {
	it('pays', () => {
		cy.stub(api, 'charge');
		cy.visit('/pay');
	});
});
`
	root := writeTree(t, map[string]string{"pay.spec.js": withStub})

	runner := newRunner(t)
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.TotalTodos)

	summary := result.Summary()
	assert.Equal(t, 1, summary.TotalTodos)
	assert.Equal(t, 1, summary.TodosByID["cypress-stub"])
}

func TestRunGeneratedBatch(t *testing.T) {
	const n = 40
	files := make(map[string]string, n)
	for i := 0; i < n; i++ {
		files[fmt.Sprintf("suite%02d/case%02d.spec.js", i%5, i)] = cypressSpec
	}
	root := writeTree(t, files)
	outDir := t.TempDir()

	runner := newRunner(t, WithOutDir(outDir), WithWorkers(4))
	result, err := runner.Run(context.Background(), root, domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)

	assert.Equal(t, n, result.Stats.FilesDiscovered)
	assert.Equal(t, n, result.Stats.FilesConverted)
	assert.Equal(t, 0, result.Stats.FilesFailed)
	require.Len(t, result.Files, n)

	// Identical inputs convert identically regardless of worker scheduling.
	first, err := os.ReadFile(result.Files[0].OutPath)
	require.NoError(t, err)
	last, err := os.ReadFile(result.Files[n-1].OutPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(last))
}

func TestIsTestFileCandidate(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"src/app.test.ts", true},
		{"src/app.spec.jsx", true},
		{"cypress/e2e/login.cy.js", true},
		{"cypress/e2e/smoke.js", true},
		{"auth.setup.ts", true},
		{"__tests__/calc.js", true},
		{"__mocks__/fs.test.js", false},
		{"__fixtures__/data.spec.js", false},
		{"src/app.ts", false},
		{"readme.spec.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isTestFileCandidate(tt.path))
		})
	}
}
