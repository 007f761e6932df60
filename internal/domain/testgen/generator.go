package testgen

import (
	"strings"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

// Generator turns lint results into test source for one framework.
type Generator struct {
	fw Framework
}

// New creates a Generator rendering with fw.
func New(fw Framework) *Generator {
	return &Generator{fw: fw}
}

// Framework returns the framework the generator renders with.
func (g *Generator) Framework() Framework { return g.fw }

// Suite renders a self-contained suite holding the single test for
// relativePath. A nil result renders a passing test.
func (g *Generator) Suite(relativePath string, result *domain.LintResult) string {
	return g.fw.SuiteHeader("Stylelint: "+relativePath) +
		g.Fragment(relativePath, result) +
		g.fw.SuiteFooter()
}

// Fragment renders only the test for relativePath, for later aggregation.
func (g *Generator) Fragment(relativePath string, result *domain.LintResult) string {
	title := relativePath + " should pass stylelint"
	if result == nil || !result.Errored {
		return g.fw.Test(title, true, "")
	}
	return g.fw.Test(title, false, FailureDetail(result.Warnings))
}

// FailureDetail joins warnings as "<line>:<column> <text>" lines in the
// order the engine reported them.
func FailureDetail(warnings []domain.Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Position() + " " + w.Text
	}
	return strings.Join(lines, "\n")
}

// Aggregate wraps fragments, in the given order, in a single suite.
func Aggregate(fragments []string, title string, fw Framework) string {
	var b strings.Builder
	b.WriteString(fw.SuiteHeader(title))
	for _, f := range fragments {
		b.WriteString(f)
	}
	b.WriteString(fw.SuiteFooter())
	return b.String()
}
