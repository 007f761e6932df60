package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with the stylelint-aot tools and resources
// registered. projectPath is the directory holding .stylelint-aot.yaml and
// .stylelintignore; relative tool paths resolve against it.
func NewServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"stylelint-aot",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
