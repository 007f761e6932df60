package tui_test

import (
	"bytes"
	"testing"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/tui"
	"github.com/stretchr/testify/assert"
)

func TestConsole_LogWritesLine(t *testing.T) {
	var buf bytes.Buffer
	tui.NewConsole(&buf).Log("has-errors.scss")
	assert.Equal(t, "has-errors.scss\n", buf.String())
}

func TestErrorConsole_KeepsText(t *testing.T) {
	var buf bytes.Buffer
	tui.NewErrorConsole(&buf).Log("======= Something went wrong running stylelint =======")
	assert.Contains(t, buf.String(), "Something went wrong running stylelint")
}
