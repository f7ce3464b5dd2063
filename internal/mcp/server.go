package mcp

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope/codescope/internal/config"
)

// Server manages the MCP server lifecycle.
type Server struct {
	repoRoot string
	cfg      *config.Config
	mcp      *server.MCPServer
}

// NewServer creates an MCP server exposing the inspect, map, graph, and
// slice operations over stdio.
func NewServer(repoRoot string, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	mcpServer := server.NewMCPServer(
		"codescope-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddContextSliceTool(mcpServer, repoRoot, cfg)
	AddInspectTool(mcpServer, repoRoot)
	AddRepoMapTool(mcpServer, repoRoot)
	AddModuleGraphTool(mcpServer, repoRoot)

	return &Server{
		repoRoot: repoRoot,
		cfg:      cfg,
		mcp:      mcpServer,
	}
}

// Serve starts the MCP server and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
