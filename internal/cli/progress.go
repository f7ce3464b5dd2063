package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders module-graph build progress as a terminal
// progress bar. It satisfies mapper.ModuleProgressReporter.
type CLIProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnModuleScanStart(totalFiles int) {
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Building module graph"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWriter(rootCmd.ErrOrStderr()),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(rootCmd.ErrOrStderr())
		}),
	)
}

func (c *CLIProgressReporter) OnModuleFileProcessed(processed, totalFiles int, fileName string) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnModuleScanComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "✓ Graph built: %d nodes, %d edges (took %.1fs)\n",
		nodeCount, edgeCount, duration.Seconds())
}
