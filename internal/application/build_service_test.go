package application_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/cache"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/ignorer"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/scanner"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/writer"
	"github.com/openkraft/stylelint-aot/internal/application"
	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildFixture struct {
	svc     *application.BuildService
	linter  *fakeLinter
	console *recordingSink
	mu      sync.Mutex
	failed  []string
}

func (f *buildFixture) onError() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.failed...)
}

func newBuildFixture(t *testing.T, opts domain.Options, store domain.OutputCache) *buildFixture {
	t.Helper()
	root, err := filepath.Abs(stylesDir)
	require.NoError(t, err)

	f := &buildFixture{linter: &fakeLinter{}, console: &recordingSink{}}
	opts.RootDir = root
	opts.Console = f.console
	opts.ErrorConsole = &recordingSink{}
	opts.OnError = func(r domain.LintResult) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.failed = append(f.failed, r.Source)
	}
	cfg, err := domain.NewConfig(opts)
	require.NoError(t, err)

	engine, err := application.NewTransformEngine(cfg, f.linter, ignorer.New("ignored.scss\n", root))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = application.NewBuildService(engine, scanner.New(), writer.New(), store, logger, 2)
	return f
}

func newBuildService(t *testing.T, opts domain.Options, store domain.OutputCache) (*application.BuildService, *fakeLinter) {
	t.Helper()
	f := newBuildFixture(t, opts, store)
	return f.svc, f.linter
}

func readOutput(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuildService_PerFileArtifacts(t *testing.T) {
	svc, _ := newBuildService(t, domain.Options{}, nil)
	out := t.TempDir()

	report, err := svc.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)

	require.Len(t, report.Files, 4)
	assert.Equal(t, "has-errors.scss", report.Files[0].Path)
	assert.Equal(t, domain.StatusGenerated, report.Files[0].Status)
	assert.True(t, report.Files[0].Errored)
	assert.Equal(t, 2, report.Files[0].Warnings)
	assert.Equal(t, "ignored.scss", report.Files[1].Path)
	assert.Equal(t, domain.StatusSkipped, report.Files[1].Status)
	assert.Equal(t, 1, report.Count(domain.StatusSkipped))
	assert.Equal(t, 3, report.Count(domain.StatusGenerated))
	assert.Equal(t, 1, report.ErroredFiles())

	assert.Equal(t, []string{
		"has-errors.scss.stylelint-test.js",
		"nested/clean.scss.stylelint-test.js",
		"no-errors.scss.stylelint-test.js",
	}, report.Artifacts)

	assert.Contains(t, readOutput(t, out, "has-errors.scss.stylelint-test.js"), "assert.ok(false, '1:15 Unexpected empty block")
	assert.Contains(t, readOutput(t, out, "nested/clean.scss.stylelint-test.js"), "QUnit.module('Stylelint: nested/clean.scss');")
	assert.NoFileExists(t, filepath.Join(out, "ignored.scss.stylelint-test.js"))
	assert.NoFileExists(t, filepath.Join(out, "plain.css.stylelint-test.js"))
}

func TestBuildService_GroupArtifact(t *testing.T) {
	svc, _ := newBuildService(t, domain.Options{Group: "app"}, nil)
	out := t.TempDir()

	report, err := svc.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.stylelint-test.js"}, report.Artifacts)
	for _, f := range report.Files {
		assert.Empty(t, f.Output, f.Path)
	}

	content := readOutput(t, out, "app.stylelint-test.js")
	assert.True(t, strings.HasPrefix(content, "QUnit.module('Stylelint: app');\n"))
	assert.Equal(t, 1, strings.Count(content, "QUnit.module("))
	assert.Equal(t, 3, strings.Count(content, "QUnit.test("))

	hasErrors := strings.Index(content, "has-errors.scss should pass stylelint")
	clean := strings.Index(content, "nested/clean.scss should pass stylelint")
	noErrors := strings.Index(content, "no-errors.scss should pass stylelint")
	assert.True(t, hasErrors >= 0 && hasErrors < clean && clean < noErrors)
	assert.NoFileExists(t, filepath.Join(out, "has-errors.scss.stylelint-test.js"))
}

func TestBuildService_FailingOnly(t *testing.T) {
	no := false
	svc, _ := newBuildService(t, domain.Options{Policy: domain.PolicyOptions{TestPassingFiles: &no}}, nil)
	out := t.TempDir()

	report, err := svc.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)

	assert.Equal(t, []string{"has-errors.scss.stylelint-test.js"}, report.Artifacts)
	assert.Equal(t, 2, report.Count(domain.StatusDropped))
}

func TestBuildService_PassThrough(t *testing.T) {
	yes := true
	svc, _ := newBuildService(t, domain.Options{Policy: domain.PolicyOptions{DisableTestGeneration: &yes}}, nil)
	out := t.TempDir()

	report, err := svc.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Count(domain.StatusPassedThrough))
	assert.Equal(t, readOutput(t, stylesDir, "nested/clean.scss"), readOutput(t, out, "nested/clean.scss"))
}

func TestBuildService_ReplacesPreviousArtifactsOnly(t *testing.T) {
	out := t.TempDir()
	handwritten := filepath.Join(out, "handwritten-test.js")
	require.NoError(t, os.WriteFile(handwritten, []byte("QUnit.test('mine');"), 0o644))

	perFile, _ := newBuildService(t, domain.Options{}, nil)
	_, err := perFile.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "nested", "clean.scss.stylelint-test.js"))

	grouped, _ := newBuildService(t, domain.Options{Group: "app"}, nil)
	_, err = grouped.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)

	assert.FileExists(t, handwritten, "files the build did not write are kept")
	assert.FileExists(t, filepath.Join(out, "app.stylelint-test.js"))
	assert.NoFileExists(t, filepath.Join(out, "has-errors.scss.stylelint-test.js"))
	assert.NoDirExists(t, filepath.Join(out, "nested"))
}

func TestBuildService_CacheSkipsUnchangedFiles(t *testing.T) {
	store, err := cache.New(16)
	require.NoError(t, err)
	f := newBuildFixture(t, domain.Options{}, store)
	svc, linter := f.svc, f.linter

	first, err := svc.Build(context.Background(), stylesDir, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, linter.calls(), 3)
	assert.Equal(t, []string{"has-errors.scss"}, f.onError())
	assert.Len(t, f.console.all(), 1)

	out := t.TempDir()
	second, err := svc.Build(context.Background(), stylesDir, out)
	require.NoError(t, err)
	assert.Len(t, linter.calls(), 3, "second build should be served from cache")

	// cached violations are reported again
	assert.Equal(t, []string{"has-errors.scss", "has-errors.scss"}, f.onError())
	assert.Len(t, f.console.all(), 2)
	assert.Equal(t, f.console.all()[0], f.console.all()[1])

	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.True(t, second.Files[0].Cached)
	assert.True(t, second.Files[0].Errored)
	assert.Equal(t, 2, second.Files[0].Warnings)
	assert.True(t, second.Files[2].Cached, "clean files are cached too")
	assert.Contains(t, readOutput(t, out, "has-errors.scss.stylelint-test.js"), "1:15 Unexpected empty block")
}

func TestBuildService_RejectsOutputContainingInput(t *testing.T) {
	svc, _ := newBuildService(t, domain.Options{}, nil)

	_, err := svc.Build(context.Background(), stylesDir, filepath.Dir(stylesDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not contain the input directory")

	_, err = svc.Build(context.Background(), stylesDir, stylesDir)
	assert.Error(t, err)
}

func TestBuildService_CanceledContext(t *testing.T) {
	svc, _ := newBuildService(t, domain.Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Build(ctx, stylesDir, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
