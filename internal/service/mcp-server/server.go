package mcpserver

import (
	"net/http"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "jira"
	serverVersion = "1.0.0"
)

// NewServer creates a new MCP server exposing the read-only Jira tools
func NewServer(c JiraClient) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	formatter := NewToolMessageFormatter()
	for _, tool := range jiraTools(c) {
		s.AddTools(withCallLogging(formatter, tool))
	}

	return s
}

// Serve serves the MCP server over stdio
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// NewHTTPHandler exposes the MCP server as a stateless streamable-HTTP
// endpoint; every POST carries its own request.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s, server.WithStateLess(true))
}
