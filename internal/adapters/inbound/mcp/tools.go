package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/config"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/ignorer"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/scanner"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/stylelint"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/writer"
	"github.com/openkraft/stylelint-aot/internal/application"
	"github.com/openkraft/stylelint-aot/internal/domain"
)

const defaultOutput = "dist"

// registerTools registers all stylelint-aot MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. stylelint_build
	s.AddTool(
		mcplib.NewTool("stylelint_build",
			mcplib.WithDescription("Lint a source tree and write one test per stylesheet (or one grouped test) to the output directory. Returns the build report as JSON."),
			mcplib.WithString("input", mcplib.Description("Input directory relative to the project (default: project root)")),
			mcplib.WithString("output", mcplib.Description("Output directory relative to the project (default: configured output or dist)")),
			mcplib.WithString("syntax", mcplib.Description("Source syntax: scss, sass, css, less, sugarss or *")),
			mcplib.WithString("framework", mcplib.Description("Testing framework: qunit or mocha")),
			mcplib.WithString("group", mcplib.Description("Aggregate all tests into <group>.stylelint-test.js")),
		),
		handleBuild(projectPath),
	)

	// 2. stylelint_generate_test
	s.AddTool(
		mcplib.NewTool("stylelint_generate_test",
			mcplib.WithDescription("Lint a single stylesheet and return the generated test source with the lint result"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the stylesheet relative to the project"),
			),
			mcplib.WithString("code", mcplib.Description("Source to lint instead of the file content on disk")),
			mcplib.WithString("framework", mcplib.Description("Testing framework: qunit or mocha")),
		),
		handleGenerateTest(projectPath),
	)
}

// toolOverrides are optional per-call settings layered over the project
// configuration.
type toolOverrides struct {
	syntax    string
	framework string
	group     string
}

// newEngine loads the project configuration and builds a transform engine
// rooted at root. Console output is discarded; lint failures go to errs so
// they can be returned to the client.
func newEngine(projectPath, root string, o toolOverrides, errs domain.LogSink) (*application.TransformEngine, domain.ProjectConfig, error) {
	project, _, err := config.New().Load(projectPath)
	if err != nil {
		return nil, project, fmt.Errorf("loading config: %w", err)
	}
	if o.syntax != "" {
		project.LinterConfig.Syntax = o.syntax
	}
	if o.framework != "" {
		project.TestingFramework = o.framework
	}
	if o.group != "" {
		project.Group = o.group
	}

	ignore, err := ignorer.Load(projectPath)
	if err != nil {
		return nil, project, err
	}

	opts := project.Options
	opts.RootDir = root
	opts.Console = domain.WriterSink{W: io.Discard}
	opts.ErrorConsole = errs
	cfg, err := domain.NewConfig(opts)
	if err != nil {
		return nil, project, err
	}

	engine, err := application.NewTransformEngine(cfg, stylelint.New(project.Command...), ignore)
	if err != nil {
		return nil, project, err
	}
	return engine, project, nil
}

func handleBuild(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		input, _ := args["input"].(string)
		output, _ := args["output"].(string)
		var o toolOverrides
		o.syntax, _ = args["syntax"].(string)
		o.framework, _ = args["framework"].(string)
		o.group, _ = args["group"].(string)

		inputDir, err := inProject(projectPath, input)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		engine, project, err := newEngine(projectPath, inputDir, o, domain.WriterSink{W: io.Discard})
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if output == "" {
			output = project.Output
		}
		if output == "" {
			output = defaultOutput
		}
		outputDir, err := inProject(projectPath, output)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := application.NewBuildService(engine, scanner.New(), writer.New(), nil, logger, project.Workers)
		report, err := svc.Build(ctx, inputDir, outputDir)
		if err != nil {
			return errorResult(fmt.Sprintf("build failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// generatedTest is the result of stylelint_generate_test.
type generatedTest struct {
	File     string             `json:"file"`
	Status   domain.FileStatus  `json:"status"`
	Artifact string             `json:"artifact,omitempty"`
	Content  string             `json:"content,omitempty"`
	Result   *domain.LintResult `json:"result,omitempty"`
}

func handleGenerateTest(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if _, err := inProject(projectPath, file); err != nil {
			return errorResult(err.Error()), nil
		}
		rel := filepath.ToSlash(filepath.Clean(file))

		args := request.GetArguments()
		code, hasCode := args["code"].(string)
		var o toolOverrides
		o.framework, _ = args["framework"].(string)
		var errs bytes.Buffer
		engine, _, err := newEngine(projectPath, projectPath, o, domain.WriterSink{W: &errs})
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if !hasCode {
			data, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(rel)))
			if err != nil {
				return errorResult(fmt.Sprintf("reading %s: %v", file, err)), nil
			}
			code = string(data)
		}

		out := engine.Transform(ctx, code, rel)
		if out.Status == domain.StatusFailed {
			return errorResult(fmt.Sprintf("stylelint failed on %s:\n%s", rel, strings.TrimSpace(errs.String()))), nil
		}
		res := generatedTest{File: rel, Status: out.Status, Result: out.Result}
		switch {
		// grouped configurations render the group suite holding only this test
		case out.Fragment:
			res.Artifact, res.Content = engine.GroupArtifact([]string{out.Content})
		case out.Status == domain.StatusGenerated || out.Status == domain.StatusPassedThrough:
			res.Artifact, res.Content = out.Path, out.Content
		}
		return jsonResult(res)
	}
}

// inProject resolves p against projectPath and rejects absolute paths and
// paths leaving the project.
func inProject(projectPath, p string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(p))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q must be relative to the project", p)
	}
	return filepath.Join(projectPath, clean), nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
