package domain

import "fmt"

// TestArtifactExtension is appended to a source path when a test is generated.
const TestArtifactExtension = "stylelint-test.js"

// Recognized syntax names. SyntaxAll lints every supported extension and
// lets the lint engine infer the syntax from each file's extension.
const (
	SyntaxSCSS    = "scss"
	SyntaxSass    = "sass"
	SyntaxCSS     = "css"
	SyntaxLess    = "less"
	SyntaxSugarSS = "sugarss"
	SyntaxAll     = "*"
)

// SupportedExtensions lists every extension watched in wildcard mode.
var SupportedExtensions = []string{"sss", "scss", "sass", "css", "less", "html", "js", "md"}

// ValidSyntaxes enumerates the accepted values of the syntax option.
var ValidSyntaxes = []string{SyntaxSCSS, SyntaxSass, SyntaxCSS, SyntaxLess, SyntaxSugarSS, SyntaxAll}

// SyntaxResolution is the file matching and linter setup derived from a syntax.
type SyntaxResolution struct {
	Syntax            string   `json:"syntax"`
	LinterSyntax      string   `json:"linter_syntax,omitempty"`
	SourceExtensions  []string `json:"source_extensions"`
	ArtifactExtension string   `json:"artifact_extension,omitempty"`
	Wildcard          bool     `json:"wildcard,omitempty"`
}

// ResolveSyntax maps a configured syntax to the source extensions to watch,
// the syntax handed to the linter and the suffix of generated artifacts.
// An empty ArtifactExtension means files pass through unrenamed.
func ResolveSyntax(syntax string, policy GenerationPolicy) (SyntaxResolution, error) {
	res := SyntaxResolution{Syntax: syntax}

	switch syntax {
	case "":
		res.Syntax = SyntaxSCSS
		res.LinterSyntax = SyntaxSCSS
		res.SourceExtensions = []string{SyntaxSCSS}
	case SyntaxCSS:
		// plain css: no preprocessor syntax for the linter
		res.SourceExtensions = []string{SyntaxCSS}
	case SyntaxSugarSS:
		res.LinterSyntax = SyntaxSugarSS
		res.SourceExtensions = []string{"sss"}
	case SyntaxSass, SyntaxSCSS, SyntaxLess:
		res.LinterSyntax = syntax
		res.SourceExtensions = []string{syntax}
	case SyntaxAll:
		res.Wildcard = true
		res.SourceExtensions = append([]string(nil), SupportedExtensions...)
	default:
		return SyntaxResolution{}, &ConfigurationError{
			Message: fmt.Sprintf("unknown syntax %q (valid: scss, sass, css, less, sugarss, *)", syntax),
		}
	}

	if policy.Enabled() {
		res.ArtifactExtension = TestArtifactExtension
	}
	return res, nil
}
