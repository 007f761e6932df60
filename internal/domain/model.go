package domain

import "fmt"

// Severity is the level stylelint attached to a warning.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Warning is a single rule violation reported for a file.
type Warning struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Position renders the "<line>:<column>" prefix used in failure details.
func (w Warning) Position() string {
	return fmt.Sprintf("%d:%d", w.Line, w.Column)
}

// Notice is a deprecation or invalid-option message from the lint engine.
type Notice struct {
	Text      string `json:"text"`
	Reference string `json:"reference,omitempty"`
}

// RawFileResult is the per-snippet entry inside a RawResult.
type RawFileResult struct {
	Source                string    `json:"source"`
	Errored               bool      `json:"errored"`
	Warnings              []Warning `json:"warnings"`
	Deprecations          []Notice  `json:"deprecations"`
	InvalidOptionWarnings []Notice  `json:"invalidOptionWarnings"`
}

// RawResult is what the lint engine returns for a single snippet: a result
// list holding exactly one entry plus the formatted text output.
type RawResult struct {
	Errored bool            `json:"errored"`
	Output  string          `json:"output"`
	Results []RawFileResult `json:"results"`
}

// LintResult is the normalized outcome of linting one file.
// Errored is true exactly when Warnings is non-empty.
type LintResult struct {
	Source                string    `json:"source"`
	Errored               bool      `json:"errored"`
	Warnings              []Warning `json:"warnings"`
	Deprecations          []Notice  `json:"deprecations,omitempty"`
	InvalidOptionWarnings []Notice  `json:"invalid_option_warnings,omitempty"`
	Log                   string    `json:"log"`
}

// FileStatus is the terminal state of one file in a build pass.
type FileStatus string

const (
	StatusSkipped       FileStatus = "skipped"
	StatusFailed        FileStatus = "failed"
	StatusDropped       FileStatus = "dropped"
	StatusGenerated     FileStatus = "generated"
	StatusPassedThrough FileStatus = "passed_through"
)

// FileReport summarizes what happened to one source file.
type FileReport struct {
	Path     string     `json:"path"`
	Status   FileStatus `json:"status"`
	Errored  bool       `json:"errored"`
	Warnings int        `json:"warnings"`
	Output   string     `json:"output,omitempty"`
	Cached   bool       `json:"cached,omitempty"`
}

// BuildReport is the result of one build pass over an input tree.
type BuildReport struct {
	InputDir  string       `json:"input_dir"`
	OutputDir string       `json:"output_dir"`
	Commit    string       `json:"commit,omitempty"`
	Files     []FileReport `json:"files"`
	Artifacts []string     `json:"artifacts"`
}

// Count returns how many files ended in the given status.
func (r *BuildReport) Count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// ErroredFiles returns how many linted files had violations.
func (r *BuildReport) ErroredFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Errored {
			n++
		}
	}
	return n
}

// BuildEntry is the summary of one build kept in the build history.
type BuildEntry struct {
	Timestamp string `json:"timestamp"`
	Commit    string `json:"commit,omitempty"`
	Files     int    `json:"files"`
	Errored   int    `json:"errored"`
	Warnings  int    `json:"warnings"`
	Failed    int    `json:"failed"`
	Artifacts int    `json:"artifacts"`
}

// Entry summarizes the report for the build history.
func (r *BuildReport) Entry(timestamp string) BuildEntry {
	e := BuildEntry{
		Timestamp: timestamp,
		Commit:    r.Commit,
		Files:     len(r.Files),
		Errored:   r.ErroredFiles(),
		Failed:    r.Count(StatusFailed),
		Artifacts: len(r.Artifacts),
	}
	for _, f := range r.Files {
		e.Warnings += f.Warnings
	}
	return e
}
