package mcp

import (
	"context"

	"resp-analyzer/internal/config"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the schedule analysis as MCP tools.
type Server struct {
	cfg     *config.AppConfig
	version string
	server  *mcpsdk.Server
}

// NewServer creates a new MCP server and registers its tools.
func NewServer(cfg *config.AppConfig, version string) *Server {
	s := &Server{cfg: cfg, version: version}
	s.server = mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "resp-analyzer",
		Version: version,
	}, nil)
	s.registerTools()
	return s
}

// Start runs the server over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Str("version", s.version).Msg("MCP Server starting Stdio loop")
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}
