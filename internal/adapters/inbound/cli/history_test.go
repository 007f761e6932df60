package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/openkraft/stylelint-aot/internal/adapters/inbound/cli"
	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand_RecordsBuilds(t *testing.T) {
	script := setupProject(t)

	_, _, err := runBuild(t, "styles", "--command", script)
	require.NoError(t, err)
	_, _, err = runBuild(t, "styles", "--command", script, "--syntax", "css")
	require.NoError(t, err)
	_, _, err = runBuild(t, "styles", "--command", script, "--history=false")
	require.NoError(t, err)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history", "--json"})
	require.NoError(t, cmd.Execute())

	var entries []domain.BuildEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].Files)
	assert.Equal(t, 2, entries[0].Errored)
	assert.Equal(t, 1, entries[1].Files)
	assert.Equal(t, 0, entries[1].Warnings)
}

func TestHistoryCommand_Empty(t *testing.T) {
	setupProject(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"history"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No build history found.")
}
