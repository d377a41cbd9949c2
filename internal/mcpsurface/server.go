package mcpsurface

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/nkvale/quickfind/internal/core"
)

const (
	// ServerName is the MCP server name.
	ServerName = "quickfind-mcp"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the engine it dispatches tool calls to.
type Server struct {
	mcp    *server.MCPServer
	engine *core.Engine
}

// NewServer constructs a Server over an already-open Engine.
func NewServer(engine *core.Engine) (*Server, error) {
	mcpServer := server.NewMCPServer(ServerName, ServerVersion)

	s := &Server{mcp: mcpServer, engine: engine}
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("mcpsurface: register tools: %w", err)
	}
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() error {
	s.mcp.AddTool(searchFilesTool(), s.handleSearchFiles)
	s.mcp.AddTool(indexRootsTool(), s.handleIndexRoots)
	s.mcp.AddTool(getIndexStatusTool(), s.handleGetIndexStatus)
	return nil
}
