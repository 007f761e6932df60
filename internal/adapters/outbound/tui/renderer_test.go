package tui_test

import (
	"testing"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/tui"
	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleReport() *domain.BuildReport {
	return &domain.BuildReport{
		InputDir:  "app/styles",
		OutputDir: "dist",
		Files: []domain.FileReport{
			{Path: "has-errors.scss", Status: domain.StatusGenerated, Errored: true, Warnings: 2, Output: "has-errors.scss.stylelint-test.js"},
			{Path: "ignored.scss", Status: domain.StatusSkipped},
			{Path: "no-errors.scss", Status: domain.StatusGenerated, Output: "no-errors.scss.stylelint-test.js", Cached: true},
			{Path: "broken.scss", Status: domain.StatusFailed},
		},
		Artifacts: []string{"has-errors.scss.stylelint-test.js", "no-errors.scss.stylelint-test.js"},
	}
}

func TestRenderBuildReport_ListsFiles(t *testing.T) {
	out := tui.RenderBuildReport(sampleReport())
	assert.Contains(t, out, "stylelint-aot")
	assert.Contains(t, out, "has-errors.scss")
	assert.Contains(t, out, "2 warnings")
	assert.Contains(t, out, "ignored")
	assert.Contains(t, out, "stylelint failed")
	assert.Contains(t, out, "cached")
}

func TestRenderBuildReport_Totals(t *testing.T) {
	out := tui.RenderBuildReport(sampleReport())
	assert.Contains(t, out, "2 linted")
	assert.Contains(t, out, "1 with violations")
	assert.Contains(t, out, "1 ignored")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "2 written")
}

func TestRenderBuildReport_Empty(t *testing.T) {
	out := tui.RenderBuildReport(&domain.BuildReport{InputDir: "a", OutputDir: "b"})
	assert.Contains(t, out, "No matching files.")
	assert.Contains(t, out, "0 written")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No build history found.")
}

func TestRenderHistory_Trend(t *testing.T) {
	out := tui.RenderHistory([]domain.BuildEntry{
		{Timestamp: "2026-10-14T09:00:00Z", Commit: "0123456789abcdef", Files: 4, Warnings: 5},
		{Timestamp: "2026-10-15T09:00:00Z", Files: 4, Warnings: 2, Failed: 1},
		{Timestamp: "2026-10-16T09:00:00Z", Files: 1, Warnings: 0},
	})
	assert.Contains(t, out, "Build History")
	assert.Contains(t, out, "2026-10-14")
	assert.Contains(t, out, "0123456")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "5 warnings")
	assert.Contains(t, out, "↓3")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "1 file ")
	assert.Contains(t, out, "clean")
}
