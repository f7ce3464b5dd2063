package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/mapper"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [dir]",
	Short: "Print the module dependency graph",
	Long: `Aggregate the subtree under the given directory into modules (manifest
or entry-file directories) and print the weighted dependency graph
between them. Defaults to the repository root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	scanRoot := root
	if len(args) == 1 {
		scanRoot = args[0]
	}

	graph, err := mapper.BuildModuleGraph(root, scanRoot,
		mapper.WithModuleProgress(NewCLIProgressReporter(quiet)))
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}
	return printJSON(graph)
}
