package application_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

// fakeLinter mimics stylelint with two rules: block-no-empty for "{}" and
// color-named for "#000000". Files named broken.* fail, noconfig.* report a
// missing configuration.
type fakeLinter struct {
	mu       sync.Mutex
	requests []domain.LintRequest
}

func (f *fakeLinter) Lint(_ context.Context, req domain.LintRequest) (domain.RawResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	base := filepath.Base(req.CodeFilename)
	switch {
	case strings.HasPrefix(base, "broken."):
		return domain.RawResult{}, &domain.LintError{Code: 1, Message: "TypeError: boom"}
	case strings.HasPrefix(base, "noconfig."):
		return domain.RawResult{}, &domain.ConfigurationError{Message: "No configuration provided for " + req.CodeFilename}
	case strings.HasPrefix(base, "badrule."):
		return domain.RawResult{}, &domain.ConfigurationError{Message: `Unknown rule "nope"`}
	}

	var warnings []domain.Warning
	for i, line := range strings.Split(req.Code, "\n") {
		if col := strings.Index(line, "{}"); col >= 0 {
			warnings = append(warnings, domain.Warning{
				Line: i + 1, Column: col + 1, Rule: "block-no-empty", Severity: domain.SeverityError,
				Text: "Unexpected empty block (block-no-empty)",
			})
		}
		if col := strings.Index(line, "#000000"); col >= 0 {
			warnings = append(warnings, domain.Warning{
				Line: i + 1, Column: col + 1, Rule: "color-named", Severity: domain.SeverityError,
				Text: `Expected "#000000" to be "black" (color-named)`,
			})
		}
	}

	raw := domain.RawResult{
		Errored: len(warnings) > 0,
		Results: []domain.RawFileResult{{Source: req.CodeFilename, Errored: len(warnings) > 0, Warnings: warnings}},
	}
	if len(warnings) > 0 {
		raw.Output = "log:" + req.CodeFilename
	}
	return raw, nil
}

func (f *fakeLinter) calls() []domain.LintRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.LintRequest(nil), f.requests...)
}

// recordingSink collects logged texts.
type recordingSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *recordingSink) Log(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, text)
}

func (s *recordingSink) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

// ignoreNames ignores files by base name.
type ignoreNames []string

func (n ignoreNames) Ignores(abs string) bool {
	for _, name := range n {
		if filepath.Base(abs) == name {
			return true
		}
	}
	return false
}
