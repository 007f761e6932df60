package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/cache"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/config"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/history"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/ignorer"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/scanner"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/stylelint"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/tui"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/watcher"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/writer"
	"github.com/openkraft/stylelint-aot/internal/application"
	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/spf13/cobra"
)

const defaultOutput = "dist"

type buildFlags struct {
	output        string
	syntax        string
	framework     string
	group         string
	configFile    string
	configBasedir string
	command       []string
	workers       int
	log           bool
	disableTests  bool
	testPassing   bool
	testFailing   bool
	watch         bool
	jsonOutput    bool
	strict        bool
	verbose       bool
	history       bool
}

func newBuildCmd() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build [input]",
		Short: "Lint a source tree and emit test files",
		Long: "Lint every matching stylesheet below input (default: current directory) and write " +
			"one test per file, or a single grouped test, to the output directory. " +
			"Settings are read from .stylelint-aot.yaml and overridden by flags.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "."
			if len(args) > 0 {
				input = args[0]
			}

			logger := newLogger(cmd.ErrOrStderr(), f.verbose, f.watch)

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("resolving working directory: %w", err)
			}
			project, notices, err := config.New().Load(cwd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			for _, n := range notices {
				logger.Warn(n)
			}
			applyBuildFlags(cmd, &f, &project)
			if err := project.Validate(); err != nil {
				return err
			}

			svc, err := newBuildService(cmd, cwd, input, project, logger)
			if err != nil {
				return err
			}

			output := project.Output
			if output == "" {
				output = defaultOutput
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			rec := recorder{cwd: cwd, enabled: f.history, logger: logger}
			report, err := svc.Build(ctx, input, output)
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}
			rec.record(report)
			if err := renderReport(cmd, report, f.jsonOutput); err != nil {
				return err
			}

			if f.watch {
				return watch(ctx, cmd, svc, rec, input, output, f.jsonOutput, logger)
			}

			if f.strict {
				if n := report.ErroredFiles() + report.Count(domain.StatusFailed); n > 0 {
					return fmt.Errorf("%d file(s) did not pass stylelint", n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.output, "out", "o", "", "Output directory (default \"dist\")")
	cmd.Flags().StringVar(&f.syntax, "syntax", "", "Source syntax: scss, sass, css, less, sugarss or * (default scss)")
	cmd.Flags().StringVar(&f.framework, "framework", "", "Testing framework: qunit or mocha (default qunit)")
	cmd.Flags().StringVar(&f.group, "group", "", "Aggregate all tests into <group>.stylelint-test.js")
	cmd.Flags().StringVar(&f.configFile, "config-file", "", "Path of the stylelint configuration")
	cmd.Flags().StringVar(&f.configBasedir, "config-basedir", "", "Directory relative paths in the stylelint configuration resolve against")
	cmd.Flags().StringSliceVar(&f.command, "command", nil, "Command that runs stylelint (default npx --no-install stylelint)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Files linted in parallel (default one per CPU)")
	cmd.Flags().BoolVar(&f.log, "log", true, "Print lint results of failing files")
	cmd.Flags().BoolVar(&f.disableTests, "disable-test-generation", false, "Copy sources through instead of generating tests")
	cmd.Flags().BoolVar(&f.testPassing, "test-passing", true, "Generate tests for passing files")
	cmd.Flags().BoolVar(&f.testFailing, "test-failing", true, "Generate tests for failing files")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Rebuild when sources change")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Output the build report as JSON")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit 1 if any file has violations or could not be linted")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log build progress")
	cmd.Flags().BoolVar(&f.history, "history", true, "Record the build in .stylelint-aot/history")

	return cmd
}

// applyBuildFlags overlays explicitly set flags on the file configuration.
func applyBuildFlags(cmd *cobra.Command, f *buildFlags, project *domain.ProjectConfig) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		project.Output = f.output
	}
	if flags.Changed("syntax") {
		project.LinterConfig.Syntax = f.syntax
	}
	if flags.Changed("framework") {
		project.TestingFramework = f.framework
	}
	if flags.Changed("group") {
		project.Group = f.group
	}
	if flags.Changed("config-file") {
		project.LinterConfig.ConfigFile = f.configFile
	}
	if flags.Changed("config-basedir") {
		project.LinterConfig.ConfigBasedir = f.configBasedir
	}
	if flags.Changed("command") {
		project.Command = f.command
	}
	if flags.Changed("workers") {
		project.Workers = f.workers
	}
	if flags.Changed("log") {
		project.Log = boolPtr(f.log)
	}
	if flags.Changed("disable-test-generation") {
		project.Policy.DisableTestGeneration = boolPtr(f.disableTests)
	}
	if flags.Changed("test-passing") {
		project.Policy.TestPassingFiles = boolPtr(f.testPassing)
	}
	if flags.Changed("test-failing") {
		project.Policy.TestFailingFiles = boolPtr(f.testFailing)
	}
}

// newBuildService wires the outbound adapters around a transform engine.
// The ignore file is read from cwd.
func newBuildService(cmd *cobra.Command, cwd, input string, project domain.ProjectConfig, logger *slog.Logger) (*application.BuildService, error) {
	root, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", input, err)
	}
	ignore, err := ignorer.Load(cwd)
	if err != nil {
		return nil, err
	}

	opts := project.Options
	opts.RootDir = root
	opts.Console = tui.NewConsole(cmd.ErrOrStderr())
	opts.ErrorConsole = tui.NewErrorConsole(cmd.ErrOrStderr())
	cfg, err := domain.NewConfig(opts)
	if err != nil {
		return nil, err
	}

	engine, err := application.NewTransformEngine(cfg, stylelint.New(project.Command...), ignore)
	if err != nil {
		return nil, err
	}
	store, err := cache.New(0)
	if err != nil {
		return nil, err
	}
	return application.NewBuildService(engine, scanner.New(), writer.New(), store, logger, project.Workers), nil
}

// recorder stamps reports with the checked out revision and appends them to
// the build history. Failures are logged, never returned.
type recorder struct {
	cwd     string
	enabled bool
	logger  *slog.Logger
}

func (r recorder) record(report *domain.BuildReport) {
	if rev, err := gitinfo.New().Revision(r.cwd); err == nil {
		report.Commit = rev
	}
	if !r.enabled {
		return
	}
	entry := report.Entry(time.Now().UTC().Format(time.RFC3339))
	if err := history.New().Save(r.cwd, entry); err != nil {
		r.logger.Warn("recording build history", "error", err)
	}
}

func watch(ctx context.Context, cmd *cobra.Command, svc *application.BuildService, rec recorder, input, output string, jsonOutput bool, logger *slog.Logger) error {
	root, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return err
	}

	logger.Info("watching for changes", "dir", root)
	err = watcher.New(root, watcher.DefaultDebounce, out).WithLogger(logger).Run(ctx, func(paths []string) {
		logger.Info("change detected", "files", len(paths))
		report, err := svc.Build(ctx, input, output)
		if err != nil {
			logger.Error("rebuild failed", "error", err)
			return
		}
		rec.record(report)
		if err := renderReport(cmd, report, jsonOutput); err != nil {
			logger.Error("rendering report", "error", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func renderReport(cmd *cobra.Command, report *domain.BuildReport, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderBuildReport(report))
	return nil
}

func newLogger(w io.Writer, verbose, watching bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case watching:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func boolPtr(b bool) *bool { return &b }
