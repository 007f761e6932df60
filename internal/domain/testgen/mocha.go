package testgen

import (
	"fmt"
	"strings"
)

// Mocha renders describe/it blocks that throw a chai AssertionError on failure.
type Mocha struct{}

func (Mocha) Name() string { return "mocha" }

func (Mocha) SuiteHeader(title string) string {
	return fmt.Sprintf("describe('%s', function() {\n", EscapeString(title))
}

func (Mocha) SuiteFooter() string { return "});\n" }

func (Mocha) Test(title string, passed bool, detail string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  it('%s', function() {\n", EscapeString(title))
	if passed {
		b.WriteString("    // precompiled test passed\n")
	} else {
		b.WriteString("    // precompiled test failed\n")
		fmt.Fprintf(&b, "    var error = new chai.AssertionError('%s');\n", EscapeString(detail))
		b.WriteString("    error.stack = undefined;\n")
		b.WriteString("    throw error;\n")
	}
	b.WriteString("  });\n")
	return b.String()
}
