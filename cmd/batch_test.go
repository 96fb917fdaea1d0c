package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/state"
)

func writeBatchTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"login.cy.js", "cart.spec.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(cypressFixture), 0o644))
	}
	return root
}

func TestRunBatchEndToEnd(t *testing.T) {
	root := writeBatchTree(t)
	outDir := t.TempDir()
	statePath := filepath.Join(t.TempDir(), "state.db")

	var buf bytes.Buffer
	err := RunBatch(&buf, BatchParams{
		Root:      root,
		From:      "cypress",
		To:        "playwright",
		Out:       outDir,
		StatePath: statePath,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "converted 2 files")

	converted, readErr := os.ReadFile(filepath.Join(outDir, "login.cy.js"))
	require.NoError(t, readErr)
	assert.Contains(t, string(converted), "await page.goto('/login');")

	store, err := state.Open(statePath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	run, err := store.LastRun(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, run.FilesConverted)

	hashes, err := store.FileHashes(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, hashes, 2)
}

func TestRunBatchChangedOnly(t *testing.T) {
	root := writeBatchTree(t)
	statePath := filepath.Join(t.TempDir(), "state.db")

	params := BatchParams{
		Root:      root,
		From:      "cypress",
		To:        "playwright",
		Out:       t.TempDir(),
		StatePath: statePath,
	}

	var first bytes.Buffer
	require.NoError(t, RunBatch(&first, params))
	assert.Contains(t, first.String(), "converted 2 files")

	// Nothing changed: everything is skipped.
	params.ChangedOnly = true
	var second bytes.Buffer
	require.NoError(t, RunBatch(&second, params))
	assert.Contains(t, second.String(), "converted 0 files")
	assert.Contains(t, second.String(), "skip")

	// One modified file is reconverted; the other stays skipped.
	require.NoError(t, os.WriteFile(filepath.Join(root, "cart.spec.js"),
		[]byte(cypressFixture+"describe('extra', () => {});\n"), 0o644))

	var third bytes.Buffer
	require.NoError(t, RunBatch(&third, params))
	assert.Contains(t, third.String(), "converted 1 files")
	assert.Contains(t, third.String(), "cart.spec.js")

	// The carried-forward state still covers the unchanged file.
	var fourth bytes.Buffer
	require.NoError(t, RunBatch(&fourth, params))
	assert.Contains(t, fourth.String(), "converted 0 files")
}

func TestRunBatchChangedOnlyRequiresState(t *testing.T) {
	var buf bytes.Buffer
	err := RunBatch(&buf, BatchParams{
		Root:        t.TempDir(),
		From:        "cypress",
		To:          "playwright",
		ChangedOnly: true,
	})
	assert.ErrorContains(t, err, "--state")
}
