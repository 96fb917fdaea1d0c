package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportMarkdown(t *testing.T) {
	dir := t.TempDir()
	annotated := `test('pays', async ({ page }) => {
	// TESTSHIFT-TODO(cypress-stub): create operation has no target-dialect equivalent
	// original: cy.stub(api, 'charge');
	// action: port this test-double setup manually
});
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pay.spec.js"), []byte(annotated), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.spec.js"), []byte("test('ok', () => {});\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# TESTSHIFT-TODO(x): not code\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunReport(&buf, dir, false))

	out := buf.String()
	assert.Contains(t, out, "# Conversion Report")
	assert.Contains(t, out, "| `cypress-stub` | 1 |")
	assert.Contains(t, out, "### pay.spec.js")
	assert.NotContains(t, out, "notes.md")
}

func TestRunReportJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clean.spec.js"), []byte("test('ok', () => {});\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunReport(&buf, dir, true))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 1, decoded["totalFiles"])
	assert.EqualValues(t, 1, decoded["cleanFiles"])
}
