package testgen

import "fmt"

// QUnit renders QUnit modules. It has no suite footer.
type QUnit struct{}

func (QUnit) Name() string { return "qunit" }

func (QUnit) SuiteHeader(title string) string {
	return fmt.Sprintf("QUnit.module('%s');\n", EscapeString(title))
}

func (QUnit) SuiteFooter() string { return "" }

func (QUnit) Test(title string, passed bool, detail string) string {
	if detail == "" {
		detail = title + " should pass."
	}
	return fmt.Sprintf("QUnit.test('%s', function(assert) {\n"+
		"  assert.expect(1);\n"+
		"  assert.ok(%t, '%s');\n"+
		"});\n", EscapeString(title), passed, EscapeString(detail))
}
