package application

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/openkraft/stylelint-aot/internal/domain/testgen"
)

const failureBanner = "======= Something went wrong running stylelint ======="

const missingConfigHint = "No stylelint configuration found please create a .stylelintrc file in the root directory"

// Output is the outcome of transforming one source file.
// Path and Content are set only for StatusGenerated and StatusPassedThrough.
type Output struct {
	Status  domain.FileStatus
	Path    string
	Content string
	// Fragment marks Content as a bare test to be aggregated into a group.
	Fragment bool
	Result   *domain.LintResult
}

// TransformEngine lints single files and renders their test artifacts.
// It holds no mutable state and is safe for concurrent use.
type TransformEngine struct {
	cfg       domain.Config
	linter    domain.Linter
	ignore    domain.IgnoreMatcher
	generator *testgen.Generator
}

// NewTransformEngine builds an engine from a resolved config. An unknown
// testing framework fails construction.
func NewTransformEngine(cfg domain.Config, linter domain.Linter, ignore domain.IgnoreMatcher) (*TransformEngine, error) {
	fw, err := testgen.Lookup(cfg.Framework)
	if err != nil {
		return nil, err
	}
	return &TransformEngine{
		cfg:       cfg,
		linter:    linter,
		ignore:    ignore,
		generator: testgen.New(fw),
	}, nil
}

// Config returns the engine configuration.
func (e *TransformEngine) Config() domain.Config { return e.cfg }

// Framework returns the framework tests are rendered with.
func (e *TransformEngine) Framework() testgen.Framework { return e.generator.Framework() }

// Extensions lists the source extensions the engine processes.
func (e *TransformEngine) Extensions() []string {
	return append([]string(nil), e.cfg.Syntax.SourceExtensions...)
}

// TargetExtension is the suffix appended to renamed outputs, or "" when
// files pass through.
func (e *TransformEngine) TargetExtension() string {
	return e.cfg.Syntax.ArtifactExtension
}

// Match reports whether relativePath has one of the source extensions.
func (e *TransformEngine) Match(relativePath string) bool {
	for _, ext := range e.cfg.Syntax.SourceExtensions {
		if strings.HasSuffix(relativePath, "."+ext) {
			return true
		}
	}
	return false
}

// Rename returns the output path for relativePath. The source extension is
// kept so a.css and a.scss never collide.
func (e *TransformEngine) Rename(relativePath string) string {
	if ext := e.TargetExtension(); ext != "" {
		return relativePath + "." + ext
	}
	return relativePath
}

// Transform lints content and decides what, if anything, is emitted for
// relativePath. Lint engine failures are reported to the error console and
// yield StatusFailed; they never abort the caller's batch.
func (e *TransformEngine) Transform(ctx context.Context, content, relativePath string) Output {
	codeFilename := e.codeFilename(relativePath)
	if e.ignore != nil && e.ignore.Ignores(codeFilename) {
		return Output{Status: domain.StatusSkipped}
	}

	raw, err := e.linter.Lint(ctx, domain.LintRequest{
		Code:          content,
		CodeFilename:  codeFilename,
		Syntax:        e.cfg.Linter.Syntax,
		Formatter:     e.cfg.Linter.Formatter,
		ConfigFile:    e.cfg.Linter.ConfigFile,
		ConfigBasedir: e.cfg.Linter.ConfigBasedir,
	})
	if err != nil {
		e.reportFailure(err)
		return Output{Status: domain.StatusFailed}
	}

	result, err := domain.Normalize(raw, relativePath)
	if err != nil {
		e.reportFailure(err)
		return Output{Status: domain.StatusFailed}
	}
	e.Report(result)

	if !e.cfg.Policy.Enabled() {
		return Output{
			Status:  domain.StatusPassedThrough,
			Path:    relativePath,
			Content: content,
			Result:  &result,
		}
	}
	if !e.cfg.Policy.ShouldGenerate(result.Errored) {
		return Output{Status: domain.StatusDropped, Result: &result}
	}

	out := Output{
		Status: domain.StatusGenerated,
		Path:   e.Rename(relativePath),
		Result: &result,
	}
	if e.cfg.Group != "" {
		out.Content = e.generator.Fragment(relativePath, &result)
		out.Fragment = true
	} else {
		out.Content = e.generator.Suite(relativePath, &result)
	}
	return out
}

// GroupArtifact aggregates fragments, in the given order, into the group's
// single artifact and returns its path and content.
func (e *TransformEngine) GroupArtifact(fragments []string) (string, string) {
	name := e.cfg.Group + "." + domain.TestArtifactExtension
	content := testgen.Aggregate(fragments, "Stylelint: "+e.cfg.Group, e.generator.Framework())
	return name, content
}

func (e *TransformEngine) codeFilename(relativePath string) string {
	return filepath.Join(e.cfg.RootDir, filepath.FromSlash(path.Clean(relativePath)))
}

// Report hands an errored result to the OnError hook and, when logging is
// enabled, prints its log to the console. Clean results are not reported.
func (e *TransformEngine) Report(result domain.LintResult) {
	if !result.Errored {
		return
	}
	if e.cfg.OnError != nil {
		e.cfg.OnError(result)
	}
	if e.cfg.Log {
		e.cfg.Console.Log(result.Log)
	}
}

func (e *TransformEngine) reportFailure(err error) {
	sink := e.cfg.ErrorConsole
	sink.Log(failureBanner)

	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		if cfgErr.MissingConfig() {
			sink.Log(missingConfigHint)
		} else {
			sink.Log(cfgErr.Message)
		}
		return
	}
	sink.Log(fmt.Sprintf("%+v", err))
}
