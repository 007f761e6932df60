// Package stylelint runs the stylelint CLI as the lint engine.
package stylelint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

// DefaultCommand runs the project-local stylelint without installing it.
var DefaultCommand = []string{"npx", "--no-install", "stylelint"}

// customSyntaxes maps syntax names to the PostCSS syntax package stylelint
// loads for them.
var customSyntaxes = map[string]string{
	"scss":    "postcss-scss",
	"sass":    "postcss-sass",
	"less":    "postcss-less",
	"sugarss": "sugarss",
}

// Runner implements domain.Linter by piping code into the stylelint CLI.
type Runner struct {
	command []string
}

// New creates a Runner. An empty command uses DefaultCommand.
func New(command ...string) *Runner {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Runner{command: append([]string(nil), command...)}
}

// Args builds the CLI arguments for req. Code is sent on stdin.
func (r *Runner) Args(req domain.LintRequest) []string {
	args := []string{"--stdin", "--stdin-filename", req.CodeFilename, "--formatter", "json"}
	if req.ConfigFile != "" {
		args = append(args, "--config", req.ConfigFile)
	}
	if req.ConfigBasedir != "" {
		args = append(args, "--config-basedir", req.ConfigBasedir)
	}
	if pkg, ok := customSyntaxes[req.Syntax]; ok {
		args = append(args, "--custom-syntax", pkg)
	}
	return args
}

// Lint runs stylelint on req.Code.
func (r *Runner) Lint(ctx context.Context, req domain.LintRequest) (domain.RawResult, error) {
	args := append(append([]string(nil), r.command[1:]...), r.Args(req)...)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Stdin = strings.NewReader(req.Code)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return domain.RawResult{}, &domain.LintError{Code: -1, Message: "running " + r.command[0], Err: err}
		}
		code = exitErr.ExitCode()
	}

	switch code {
	case 0, 2:
		out := stdout.Bytes()
		if len(bytes.TrimSpace(out)) == 0 {
			// newer stylelint releases print formatter output on stderr
			out = stderr.Bytes()
		}
		return ParseOutput(out)
	case domain.ExitCodeConfig:
		return domain.RawResult{}, &domain.ConfigurationError{Message: firstLine(stderr.String())}
	default:
		return domain.RawResult{}, &domain.LintError{
			Code:    code,
			Message: firstLine(stderr.String()),
			Stderr:  stderr.String(),
		}
	}
}

// ParseOutput decodes stylelint's JSON formatter output and renders the
// human-readable log the string formatter would have printed.
func ParseOutput(data []byte) (domain.RawResult, error) {
	var results []domain.RawFileResult
	if err := json.Unmarshal(data, &results); err != nil {
		return domain.RawResult{}, &domain.LintError{Message: "parsing stylelint output", Err: err}
	}

	raw := domain.RawResult{Results: results}
	for _, r := range results {
		if r.Errored {
			raw.Errored = true
		}
	}
	raw.Output = FormatString(results)
	return raw, nil
}

// FormatString renders results in the layout of stylelint's string formatter.
func FormatString(results []domain.RawFileResult) string {
	var b strings.Builder
	for _, r := range results {
		if len(r.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", r.Source)
		for _, w := range r.Warnings {
			symbol := "⚠"
			if w.Severity == domain.SeverityError {
				symbol = "✖"
			}
			fmt.Fprintf(&b, " %-7s %s  %s\n", w.Position(), symbol, w.Text)
		}
	}
	return b.String()
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
