package testgen_test

import (
	"testing"

	"github.com/openkraft/stylelint-aot/internal/domain/testgen"
	"github.com/stretchr/testify/assert"
)

func TestEscapeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Unexpected empty block", "Unexpected empty block"},
		{"single quote", "it's", `it\'s`},
		{"double quote", `"#000000"`, `\"#000000\"`},
		{"backslash", `a\b`, `a\\b`},
		{"newline", "a\nb", `a\nb`},
		{"carriage return", "a\r\nb", `a\r\nb`},
		{"line separators", "a\u2028b\u2029c", `a\u2028b\u2029c`},
		{"escaped quote stays unambiguous", `\'`, `\\\'`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testgen.EscapeString(tt.in))
		})
	}
}
