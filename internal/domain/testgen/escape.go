package testgen

import "strings"

var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeString escapes s for embedding in a single- or double-quoted
// JavaScript string literal.
func EscapeString(s string) string {
	return jsEscaper.Replace(s)
}
