package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/inspector"
	"github.com/codescope/codescope/internal/mapper"
	"github.com/codescope/codescope/internal/slicer"
)

// AddContextSliceTool registers the get_context_slice tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddContextSliceTool(s *server.MCPServer, repoRoot string, cfg *config.Config) {
	tool := mcp.NewTool(
		"get_context_slice",
		mcp.WithDescription("Assemble a token-budgeted slice of the repository as a single XML document. Files under the target are fitted greedily into the budget in path order."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("File or directory to slice, relative to the repository root (e.g. 'src', 'core/lib.rs')")),
		mcp.WithNumber("budget_tokens",
			mcp.Description(fmt.Sprintf("Token budget for the slice (default: %d)", cfg.Estimator.DefaultBudgetTokens))),
	)

	s.AddTool(tool, createContextSliceHandler(repoRoot, cfg))
}

// createContextSliceHandler creates the handler function for get_context_slice.
func createContextSliceHandler(repoRoot string, cfg *config.Config) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		target, err := parseStringArg(argsMap, "target", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		budget := parseIntArg(argsMap, "budget_tokens", cfg.Estimator.DefaultBudgetTokens)

		doc, _, err := slicer.Slice(slicer.Options{
			RepoRoot:      repoRoot,
			Target:        target,
			BudgetTokens:  budget,
			CharsPerToken: cfg.Estimator.CharsPerToken,
			MaxFileBytes:  cfg.Estimator.MaxFileBytes,
			ExcludeDirs:   cfg.Scan.ExcludeDirs,
			IgnoreGlobs:   cfg.Scan.Ignore,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("slice failed: %v", err)), nil
		}

		return mcp.NewToolResultText(doc), nil
	}
}

// AddInspectTool registers the inspect_file tool with an MCP server.
func AddInspectTool(s *server.MCPServer, repoRoot string) {
	tool := mcp.NewTool(
		"inspect_file",
		mcp.WithDescription("Extract top-level symbols, imports, and exports from one source file using tree-sitter. Supports Rust, TypeScript, TSX, JavaScript, and Python."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file to inspect, relative to the repository root")),
	)

	s.AddTool(tool, createInspectHandler(repoRoot))
}

// createInspectHandler creates the handler function for inspect_file.
// The result's file field is always the repo-relative POSIX path.
func createInspectHandler(repoRoot string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		file, err := parseStringArg(argsMap, "file", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := inspector.InspectRel(repoRoot, file)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

// AddRepoMapTool registers the repo_map tool with an MCP server.
func AddRepoMapTool(s *server.MCPServer, repoRoot string) {
	tool := mcp.NewTool(
		"repo_map",
		mcp.WithDescription("Build a one-level map of a directory: its files and subdirectories as nodes, containment edges, and import edges between the listed files."),
		mcp.WithString("dir",
			mcp.Description("Directory to map, relative to the repository root (default: the root itself)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		dir, err := parseStringArg(argsMap, "dir", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		scope := repoRoot
		if dir != "" {
			scope = joinRoot(repoRoot, dir)
		}

		repoMap, err := mapper.ScopedMap(repoRoot, scope)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("map failed: %v", err)), nil
		}
		return jsonResult(repoMap)
	})
}

// AddModuleGraphTool registers the module_graph tool with an MCP server.
func AddModuleGraphTool(s *server.MCPServer, repoRoot string) {
	tool := mcp.NewTool(
		"module_graph",
		mcp.WithDescription("Aggregate a subtree into modules (manifest or entry-file directories) and return the weighted dependency graph between them."),
		mcp.WithString("dir",
			mcp.Description("Subtree to aggregate, relative to the repository root (default: the root itself)")),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		dir, err := parseStringArg(argsMap, "dir", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		scanRoot := repoRoot
		if dir != "" {
			scanRoot = joinRoot(repoRoot, dir)
		}

		moduleGraph, err := mapper.BuildModuleGraph(repoRoot, scanRoot)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
		}
		return jsonResult(moduleGraph)
	})
}

// joinRoot resolves a possibly-relative path against the repo root.
func joinRoot(repoRoot, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(repoRoot, p)
}

// jsonResult marshals v and wraps it as an MCP text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
