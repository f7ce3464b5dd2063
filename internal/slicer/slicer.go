// Package slicer assembles a token-budgeted slice of a repository: it
// scans the target, fits files into the budget greedily in path order,
// and serializes the selection into one XML context document.
package slicer

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/codescope/codescope/internal/scanner"
	"github.com/codescope/codescope/internal/xmldoc"
)

// Meta summarizes what a slice contains.
type Meta struct {
	RepoRoot     string `json:"repo_root"`
	Target       string `json:"target"`
	BudgetTokens int    `json:"budget_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	TotalFiles   int    `json:"total_files"`
	TotalBytes   int64  `json:"total_bytes"`
}

// Options configures a slice.
type Options struct {
	RepoRoot      string
	Target        string
	BudgetTokens  int
	CharsPerToken int
	MaxFileBytes  int64
	ExcludeDirs   []string
	IgnoreGlobs   []string
	Verbose       bool
}

// EstimateTokens converts a byte count into an estimated token count,
// rounding up.
func EstimateTokens(bytes int64, charsPerToken int) int {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	return int(math.Ceil(float64(bytes) / float64(charsPerToken)))
}

// Slice builds the context document for the target. Files are taken in
// relative-path order; a file whose inclusion would push the cumulative
// token estimate past the budget is skipped, and the pass continues so
// smaller files later in the order can still fit. Files that cannot be
// read are skipped.
func Slice(opts Options) (string, *Meta, error) {
	if opts.BudgetTokens <= 0 {
		return "", nil, fmt.Errorf("budget must be positive, got %d", opts.BudgetTokens)
	}

	sc, err := scanner.New(scanner.Options{
		RepoRoot:     opts.RepoRoot,
		Target:       opts.Target,
		MaxFileBytes: opts.MaxFileBytes,
		ExcludeDirs:  opts.ExcludeDirs,
		IgnoreGlobs:  opts.IgnoreGlobs,
		Verbose:      opts.Verbose,
	})
	if err != nil {
		return "", nil, err
	}

	entries, err := sc.Scan()
	if err != nil {
		return "", nil, err
	}

	var (
		pairs      []xmldoc.FilePair
		totalBytes int64
		totalFiles int
	)
	for _, entry := range entries {
		candidate := totalBytes + entry.Bytes
		if EstimateTokens(candidate, opts.CharsPerToken) > opts.BudgetTokens {
			continue
		}

		raw, err := os.ReadFile(entry.AbsPath)
		if err != nil {
			continue
		}

		pairs = append(pairs, xmldoc.FilePair{
			Path:    entry.RelPath,
			Content: strings.ToValidUTF8(string(raw), "�"),
		})
		totalBytes = candidate
		totalFiles++
	}

	doc, err := xmldoc.Build(pairs)
	if err != nil {
		return "", nil, err
	}

	meta := &Meta{
		RepoRoot:     opts.RepoRoot,
		Target:       opts.Target,
		BudgetTokens: opts.BudgetTokens,
		TotalTokens:  EstimateTokens(totalBytes, opts.CharsPerToken),
		TotalFiles:   totalFiles,
		TotalBytes:   totalBytes,
	}
	return doc, meta, nil
}
