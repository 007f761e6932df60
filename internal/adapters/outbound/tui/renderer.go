package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/stylelint-aot/internal/domain"
)

// ── palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 48))
)

// RenderBuildReport renders a BuildReport as a styled summary.
func RenderBuildReport(report *domain.BuildReport) string {
	var b strings.Builder

	// Header
	title := titleStyle.Render("stylelint-aot")
	dirs := dimStyle.Render(fmt.Sprintf("%s → %s", report.InputDir, report.OutputDir))
	b.WriteString(boxStyle.Render(title + "\n" + dirs))
	b.WriteString("\n\n")

	// Files
	for _, f := range report.Files {
		renderFile(&b, f)
	}
	if len(report.Files) == 0 {
		b.WriteString("  " + dimStyle.Render("No matching files.") + "\n")
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	// Totals
	linted := len(report.Files) - report.Count(domain.StatusSkipped) - report.Count(domain.StatusFailed)
	fmt.Fprintf(&b, "  %s %d linted", titleStyle.Render("Files"), linted)
	if n := report.ErroredFiles(); n > 0 {
		b.WriteString("  " + errorTagStyle.Render(fmt.Sprintf("%d with violations", n)))
	}
	if n := report.Count(domain.StatusSkipped); n > 0 {
		b.WriteString("  " + dimStyle.Render(fmt.Sprintf("%d ignored", n)))
	}
	if n := report.Count(domain.StatusFailed); n > 0 {
		b.WriteString("  " + errorTagStyle.Render(fmt.Sprintf("%d failed", n)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d written\n", titleStyle.Render("Artifacts"), len(report.Artifacts))

	return b.String()
}

func renderFile(b *strings.Builder, f domain.FileReport) {
	var symbol, detail string
	switch f.Status {
	case domain.StatusSkipped:
		symbol = dimStyle.Render("○")
		detail = dimStyle.Render("ignored")
	case domain.StatusFailed:
		symbol = failStyle.Render("✗")
		detail = errorTagStyle.Render("stylelint failed")
	default:
		if f.Errored {
			symbol = warnStyle.Render("●")
			detail = warnStyle.Render(fmt.Sprintf("%d %s", f.Warnings, plural(f.Warnings, "warning")))
		} else {
			symbol = passStyle.Render("✓")
			detail = passStyle.Render("passed")
		}
	}

	line := fmt.Sprintf("  %s %s  %s", symbol, f.Path, detail)
	if f.Status == domain.StatusDropped {
		line += "  " + faintStyle.Render("(no test)")
	}
	if f.Cached {
		line += "  " + faintStyle.Render("cached")
	}
	b.WriteString(line + "\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// RenderHistory renders recorded builds, oldest first, with the change in
// warnings since the previous build.
func RenderHistory(entries []domain.BuildEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No build history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Build History") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for i, e := range entries {
		hash := e.Commit
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		warnings := passStyle.Render("clean")
		if e.Warnings > 0 {
			warnings = warnStyle.Render(fmt.Sprintf("%d %s", e.Warnings, plural(e.Warnings, "warning")))
		}

		line := fmt.Sprintf("  %s  %s  %d %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			e.Files, plural(e.Files, "file"),
			warnings,
		)
		if e.Failed > 0 {
			line += "  " + errorTagStyle.Render(fmt.Sprintf("%d failed", e.Failed))
		}

		if i > 0 {
			diff := e.Warnings - entries[i-1].Warnings
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
