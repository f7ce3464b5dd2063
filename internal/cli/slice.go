package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codescope/codescope/internal/slicer"
)

var sliceBudget int

// sliceFileName and sliceMetaFileName are the fixed artifact names under
// the configured output dir.
const (
	sliceFileName     = "active_context.xml"
	sliceMetaFileName = "active_context.meta.json"
)

// sliceMeta is the sidecar written next to the XML document. Token and
// char totals describe the document itself, not the raw inputs.
type sliceMeta struct {
	RepoRoot     string `json:"repoRoot"`
	Target       string `json:"target"`
	BudgetTokens int    `json:"budgetTokens"`
	TotalTokens  int    `json:"totalTokens"`
	TotalChars   int    `json:"totalChars"`
}

// sliceCmd represents the slice command
var sliceCmd = &cobra.Command{
	Use:   "slice <target>",
	Short: "Assemble a token-budgeted context slice",
	Long: `Scan the target file or directory, greedily fit files into the token
budget in path order, and write the selection as a single XML document
to <output_dir>/active_context.xml with a JSON sidecar describing it.

Example:
  codescope slice src --budget 32000`,
	Args: cobra.ExactArgs(1),
	RunE: runSlice,
}

func init() {
	sliceCmd.Flags().IntVar(&sliceBudget, "budget", 0, "token budget (default from config)")
	rootCmd.AddCommand(sliceCmd)
}

func runSlice(cmd *cobra.Command, args []string) error {
	root, cfg, err := loadConfigForRoot()
	if err != nil {
		return err
	}

	budget := sliceBudget
	if budget <= 0 {
		budget = cfg.Estimator.DefaultBudgetTokens
	}

	doc, _, err := slicer.Slice(slicer.Options{
		RepoRoot:      root,
		Target:        args[0],
		BudgetTokens:  budget,
		CharsPerToken: cfg.Estimator.CharsPerToken,
		MaxFileBytes:  cfg.Estimator.MaxFileBytes,
		ExcludeDirs:   cfg.Scan.ExcludeDirs,
		IgnoreGlobs:   cfg.Scan.Ignore,
		Verbose:       verbose,
	})
	if err != nil {
		return fmt.Errorf("slice failed: %w", err)
	}

	outDir := filepath.Join(root, cfg.Output.Dir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	xmlPath := filepath.Join(outDir, sliceFileName)
	if err := os.WriteFile(xmlPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", xmlPath, err)
	}

	meta := sliceMeta{
		RepoRoot:     root,
		Target:       args[0],
		BudgetTokens: budget,
		TotalTokens:  slicer.EstimateTokens(int64(len(doc)), cfg.Estimator.CharsPerToken),
		TotalChars:   len(doc),
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slice meta: %w", err)
	}
	metaPath := filepath.Join(outDir, sliceMetaFileName)
	if err := os.WriteFile(metaPath, append(metaBytes, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", metaPath, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s (%d tokens of %d budget)\n",
			xmlPath, meta.TotalTokens, budget)
	}
	return nil
}
