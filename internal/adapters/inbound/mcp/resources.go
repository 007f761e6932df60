package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/config"
	"github.com/openkraft/stylelint-aot/internal/domain"
	"github.com/openkraft/stylelint-aot/internal/domain/testgen"
)

// registerResources registers all stylelint-aot MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. stylelint-aot://config - effective project configuration
	s.AddResource(
		mcplib.NewResource(
			"stylelint-aot://config",
			"Configuration",
			mcplib.WithResourceDescription("Project configuration from .stylelint-aot.yaml with its resolved syntax and generation policy"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. stylelint-aot://frameworks - supported testing frameworks
	s.AddResource(
		mcplib.NewResource(
			"stylelint-aot://frameworks",
			"Testing Frameworks",
			mcplib.WithResourceDescription("Testing frameworks tests can be generated for"),
			mcplib.WithMIMEType("application/json"),
		),
		handleFrameworksResource(),
	)
}

// effectiveConfig is the content of the config resource.
type effectiveConfig struct {
	Project domain.ProjectConfig    `json:"project"`
	Syntax  domain.SyntaxResolution `json:"syntax"`
	Policy  domain.GenerationPolicy `json:"policy"`
	Notices []string                `json:"notices,omitempty"`
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		project, notices, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg, err := domain.NewConfig(project.Options)
		if err != nil {
			return nil, err
		}

		return jsonContents("stylelint-aot://config", effectiveConfig{
			Project: project,
			Syntax:  cfg.Syntax,
			Policy:  cfg.Policy,
			Notices: notices,
		})
	}
}

func handleFrameworksResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents("stylelint-aot://frameworks", map[string]any{
			"default":    domain.DefaultFramework,
			"frameworks": testgen.Names(),
		})
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
