package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for codebase context",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants inspect files, map the repository, build module graphs,
and request token-budgeted context slices.

The server communicates via stdio (standard MCP transport).

Example:
  codescope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfigForRoot()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(root, cfg)
	return srv.Serve(context.Background())
}
