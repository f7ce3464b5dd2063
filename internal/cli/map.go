package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/mapper"
)

// mapCmd represents the map command
var mapCmd = &cobra.Command{
	Use:   "map [dir]",
	Short: "Print the repo map for a directory scope",
	Long: `Build a one-level map of the given directory: its immediate files and
subdirectories as nodes, containment edges, and import edges between the
listed files. Defaults to the repository root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMap,
}

func init() {
	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	scope := root
	if len(args) == 1 {
		scope = args[0]
	}

	repoMap, err := mapper.ScopedMap(root, scope)
	if err != nil {
		return fmt.Errorf("map failed: %w", err)
	}
	return printJSON(repoMap)
}
