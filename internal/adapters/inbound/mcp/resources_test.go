package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResource(t *testing.T, contents []mcplib.ResourceContents) map[string]any {
	t.Helper()
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &v))
	return v
}

func TestConfigResource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stylelint-aot.yaml"),
		[]byte("linter_config:\n  syntax: less\ndisable_console_logging: true\n"), 0644))

	contents, err := handleConfigResource(dir)(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	v := readResource(t, contents)
	syntax := v["syntax"].(map[string]any)
	assert.Equal(t, []any{"less"}, syntax["source_extensions"])
	assert.Len(t, v["notices"], 1)
}

func TestConfigResource_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stylelint-aot.yaml"), []byte("group: a/b\n"), 0644))

	_, err := handleConfigResource(dir)(context.Background(), mcplib.ReadResourceRequest{})
	assert.Error(t, err)
}

func TestFrameworksResource(t *testing.T) {
	contents, err := handleFrameworksResource()(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)

	v := readResource(t, contents)
	assert.Equal(t, "qunit", v["default"])
	assert.Equal(t, []any{"mocha", "qunit"}, v["frameworks"])
}
