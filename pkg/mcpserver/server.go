// Package mcpserver exposes the harness as a set of MCP tools so an
// LLM-driven test script can drive network lifecycle and ZCL dispatch
// the same way a human would over the coordinator console, without
// hand-rolling a protocol client.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/urmzd/zcl-harness/pkg/coordinator"
	"github.com/urmzd/zcl-harness/pkg/paramcheck"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// Server wraps an MCP server with the ZCL test harness's scripting
// surface.
type Server struct {
	mcpServer *server.MCPServer
	schema    *zcl.Schema
	session   *coordinator.Session
	checker   *paramcheck.Checker
}

// NewServer builds an MCP server over schema and session.
func NewServer(schema *zcl.Schema, session *coordinator.Session) *Server {
	s := &Server{
		schema:  schema,
		session: session,
		checker: paramcheck.NewChecker(),
	}

	s.mcpServer = server.NewMCPServer(
		"zcl-harness",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using the stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
