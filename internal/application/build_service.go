package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/openkraft/stylelint-aot/internal/domain"
	"golang.org/x/sync/errgroup"
)

// BuildService drives a TransformEngine over an input tree:
// scan -> transform (parallel, cached) -> aggregate groups -> write.
type BuildService struct {
	engine  *TransformEngine
	scanner domain.TreeScanner
	writer  domain.TreeWriter
	cache   domain.OutputCache
	logger  *slog.Logger
	workers int
}

// NewBuildService wires a build. cache may be nil. workers <= 0 uses one
// worker per CPU.
func NewBuildService(
	engine *TransformEngine,
	scanner domain.TreeScanner,
	writer domain.TreeWriter,
	cache domain.OutputCache,
	logger *slog.Logger,
	workers int,
) *BuildService {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildService{
		engine:  engine,
		scanner: scanner,
		writer:  writer,
		cache:   cache,
		logger:  logger,
		workers: workers,
	}
}

// Engine returns the transform engine driven by the build.
func (s *BuildService) Engine() *TransformEngine { return s.engine }

// Build transforms every matching file under inputDir and writes the
// results to outputDir, replacing the artifacts of the previous build.
func (s *BuildService) Build(ctx context.Context, inputDir, outputDir string) (*domain.BuildReport, error) {
	absIn, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", inputDir, err)
	}
	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", outputDir, err)
	}
	// outputs mirror source paths and would overwrite the sources
	if rel, err := filepath.Rel(absOut, absIn); err == nil && !strings.HasPrefix(rel, "..") {
		return nil, fmt.Errorf("output directory %s must not contain the input directory %s", outputDir, inputDir)
	}

	match := s.engine.Match
	if rel, err := filepath.Rel(absIn, absOut); err == nil && !strings.HasPrefix(rel, "..") {
		prefix := filepath.ToSlash(rel) + "/"
		match = func(p string) bool {
			return !strings.HasPrefix(p, prefix) && s.engine.Match(p)
		}
	}

	// 1. Scan input tree
	files, err := s.scanner.Scan(inputDir, match)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", inputDir, err)
	}
	s.logger.Debug("scanned input tree", "dir", inputDir, "files", len(files))

	// 2. Transform files; results are stored by index so the scan order
	// survives any scheduling.
	outputs := make([]Output, len(files))
	cached := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i], cached[i] = s.transform(gctx, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("transforming %s: %w", inputDir, err)
	}

	// 3. Write outputs
	if err := s.writer.Reset(outputDir); err != nil {
		return nil, fmt.Errorf("preparing output %s: %w", outputDir, err)
	}

	report := &domain.BuildReport{InputDir: inputDir, OutputDir: outputDir}
	var fragments []string
	for i, out := range outputs {
		fr := domain.FileReport{
			Path:   files[i].RelativePath,
			Status: out.Status,
			Cached: cached[i],
		}
		if out.Result != nil {
			fr.Errored = out.Result.Errored
			fr.Warnings = len(out.Result.Warnings)
		}

		switch out.Status {
		case domain.StatusGenerated, domain.StatusPassedThrough:
			if out.Fragment {
				fragments = append(fragments, out.Content)
				break
			}
			if err := s.writer.Write(outputDir, out.Path, out.Content); err != nil {
				return nil, fmt.Errorf("writing %s: %w", out.Path, err)
			}
			fr.Output = out.Path
			report.Artifacts = append(report.Artifacts, out.Path)
		}
		report.Files = append(report.Files, fr)
	}

	// 4. Aggregate group
	if len(fragments) > 0 {
		name, content := s.engine.GroupArtifact(fragments)
		if err := s.writer.Write(outputDir, name, content); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		report.Artifacts = append(report.Artifacts, name)
	}

	if err := s.writer.Commit(outputDir, report.Artifacts); err != nil {
		return nil, fmt.Errorf("recording outputs in %s: %w", outputDir, err)
	}

	s.logger.Info("build finished",
		"files", len(report.Files),
		"artifacts", len(report.Artifacts),
		"errored", report.ErroredFiles(),
		"failed", report.Count(domain.StatusFailed),
	)
	return report, nil
}

// transform runs the engine on f, consulting the cache first. A cache hit
// still reports its result, so violations are logged on every build. Failed
// transforms are never cached so they are retried on the next build.
func (s *BuildService) transform(ctx context.Context, f domain.SourceFile) (Output, bool) {
	if s.cache == nil {
		return s.engine.Transform(ctx, f.Content, f.RelativePath), false
	}

	key := s.cacheKey(f)
	if c, ok := s.cache.Get(key); ok {
		out := fromCache(c)
		if out.Result != nil {
			s.engine.Report(*out.Result)
		}
		return out, true
	}

	out := s.engine.Transform(ctx, f.Content, f.RelativePath)
	if out.Status != domain.StatusFailed {
		s.cache.Put(key, toCache(out))
	}
	return out, false
}

func (s *BuildService) cacheKey(f domain.SourceFile) string {
	h := sha256.New()
	h.Write([]byte(s.engine.Config().Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(f.RelativePath))
	h.Write([]byte{0})
	h.Write([]byte(f.Content))
	return hex.EncodeToString(h.Sum(nil))
}

func fromCache(c domain.CachedOutput) Output {
	out := Output{Status: c.Status, Path: c.Path, Content: c.Content, Fragment: c.Fragment}
	if c.Result != nil {
		r := cloneResult(*c.Result)
		out.Result = &r
	}
	return out
}

func toCache(out Output) domain.CachedOutput {
	c := domain.CachedOutput{Status: out.Status, Path: out.Path, Content: out.Content, Fragment: out.Fragment}
	if out.Result != nil {
		r := cloneResult(*out.Result)
		c.Result = &r
	}
	return c
}

// cloneResult copies the slices of r so cached entries are never shared
// with OnError callers.
func cloneResult(r domain.LintResult) domain.LintResult {
	r.Warnings = append([]domain.Warning(nil), r.Warnings...)
	r.Deprecations = append([]domain.Notice(nil), r.Deprecations...)
	r.InvalidOptionWarnings = append([]domain.Notice(nil), r.InvalidOptionWarnings...)
	return r
}
