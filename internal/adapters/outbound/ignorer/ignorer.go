package ignorer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/openkraft/stylelint-aot/internal/domain"
)

// FileName is the ignore file looked up in the working directory.
const FileName = ".stylelintignore"

// Matcher implements domain.IgnoreMatcher with .gitignore semantics.
// Patterns are matched against paths relative to root.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
	empty   bool
}

// New parses ignore file content. Blank lines and # comments are skipped.
func New(content, root string) *Matcher {
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return &Matcher{
		root:    root,
		matcher: gitignore.NewMatcher(patterns),
		empty:   len(patterns) == 0,
	}
}

// Load reads root/.stylelintignore. A missing file yields a matcher that
// ignores nothing; any other read error is a configuration error.
func Load(root string) (*Matcher, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New("", root), nil
		}
		return nil, &domain.ConfigurationError{Message: "reading " + FileName, Err: err}
	}
	return New(string(data), root), nil
}

// Ignores reports whether absolutePath is excluded. Paths outside root are
// never ignored.
func (m *Matcher) Ignores(absolutePath string) bool {
	if m.empty {
		return false
	}
	rel, err := filepath.Rel(m.root, absolutePath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return m.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), false)
}
