package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDocs(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, context.Background(), "generate-docs")
	require.NoError(t, err)

	assert.Contains(t, out, "# MCP Tools Reference")
	assert.Contains(t, out, "### find_group_availability")
	assert.Contains(t, out, "### query_busy_intervals")
	assert.Contains(t, out, "- `invitees` (string, required)")
	assert.Contains(t, out, "**Daily window:** 09:00 to 17:00")
}

func TestGenerateDocsToFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tools.md")

	_, stderr, err := execute(t, context.Background(), "generate-docs", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### find_group_availability")
}
