package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/inspector"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Extract symbols, imports, and exports from a source file",
	Long: `Parse a single source file with tree-sitter and print its structural
summary as JSON: top-level symbols with line spans, import refs, and
exported names.

Supported languages: Rust, TypeScript, TSX, JavaScript, Python.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	result, err := inspector.InspectRel(root, args[0])
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}
	return printJSON(result)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
