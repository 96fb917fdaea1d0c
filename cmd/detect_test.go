package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDetect(t *testing.T) {
	path := writeFixture(t, "login.cy.js", cypressFixture)

	var buf bytes.Buffer
	require.NoError(t, RunDetect(&buf, path, false))

	assert.Contains(t, buf.String(), "cypress")
}

func TestRunDetectWithEvidence(t *testing.T) {
	path := writeFixture(t, "login.cy.js", cypressFixture)

	var buf bytes.Buffer
	require.NoError(t, RunDetect(&buf, path, true))

	assert.Contains(t, buf.String(), "cy.* command")
}

func TestRunDetectNoSignals(t *testing.T) {
	path := writeFixture(t, "plain.js", "const x = 1;\n")

	var buf bytes.Buffer
	assert.Error(t, RunDetect(&buf, path, false))
}
