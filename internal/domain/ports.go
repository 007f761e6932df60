package domain

import (
	"context"
	"fmt"
	"io"
)

// LintRequest is one snippet handed to the lint engine. Files is always nil:
// the engine never globs the filesystem itself.
type LintRequest struct {
	Code          string
	CodeFilename  string
	Syntax        string
	Formatter     string
	ConfigFile    string
	ConfigBasedir string
	Files         []string
}

// Linter runs the lint engine on a single snippet. Configuration problems
// are reported as *ConfigurationError, anything else as *LintError.
type Linter interface {
	Lint(ctx context.Context, req LintRequest) (RawResult, error)
}

// IgnoreMatcher decides whether an absolute path is excluded from linting.
type IgnoreMatcher interface {
	Ignores(absolutePath string) bool
}

// LogSink receives human-readable text.
type LogSink interface {
	Log(text string)
}

// WriterSink is a LogSink writing one line per call to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Log(text string) {
	fmt.Fprintln(s.W, text)
}

// SourceFile is a matched file of the input tree.
type SourceFile struct {
	RelativePath string
	Content      string
}

// TreeScanner lists the files of an input tree accepted by match, in
// lexical order of their slash-separated relative paths.
type TreeScanner interface {
	Scan(root string, match func(relativePath string) bool) ([]SourceFile, error)
}

// TreeWriter materializes build outputs under an output directory. Reset
// removes only what the previous Commit recorded; other files in outputDir
// are left alone.
type TreeWriter interface {
	Reset(outputDir string) error
	Write(outputDir, relativePath, content string) error
	Commit(outputDir string, written []string) error
}

// OutputCache memoizes transform outputs by content key.
type OutputCache interface {
	Get(key string) (CachedOutput, bool)
	Put(key string, out CachedOutput)
}

// CachedOutput is the persisted part of a transform output. Result is the
// normalized lint result, nil for skipped files.
type CachedOutput struct {
	Status   FileStatus
	Path     string
	Content  string
	Fragment bool
	Result   *LintResult
}

// ConfigLoader loads the project configuration from a directory. The
// returned notices describe deprecated settings that were translated.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, []string, error)
}

// BuildHistory persists build summaries per project.
type BuildHistory interface {
	Save(projectPath string, entry BuildEntry) error
	Load(projectPath string) ([]BuildEntry, error)
}

// RevisionReader resolves the VCS revision a project is checked out at.
type RevisionReader interface {
	Revision(projectPath string) (string, error)
}
