// Package mapper aggregates per-file extraction into repository maps and
// module dependency graphs for UI and agent consumption.
package mapper

import (
	"math"
	"path/filepath"
	"strings"
)

// Node kinds for scoped maps.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// MapNode is one file or directory in a scoped repo map. ID is the
// POSIX-style repo-relative path, with "." standing in for the repo root
// — frontends key off that sentinel, so it is part of the contract.
type MapNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	SizeClass string `json:"size_class"`
	Bytes     int64  `json:"bytes"`
	EstTokens int64  `json:"est_tokens"`
}

// MapEdge connects two map nodes. ID is "{source}->{target}" and is
// unique within an edge set; duplicate pairs collapse.
type MapEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// RepoMap is a scoped parent/children view of one directory. Nodes and
// edges are sorted by ID for deterministic output.
type RepoMap struct {
	Nodes []MapNode `json:"nodes"`
	Edges []MapEdge `json:"edges"`
}

// ModuleNode is one module (marker-rooted directory) in a module graph.
type ModuleNode struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Path      string `json:"path"`
	SizeClass string `json:"size_class"`
	Bytes     int64  `json:"bytes"`
	EstTokens int64  `json:"est_tokens"`
	Files     int    `json:"files"`
}

// ModuleEdge is a weighted dependency between modules; the weight counts
// distinct resolved cross-module imports over all files the source
// module owns.
type ModuleEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// ModuleGraph is a whole-subtree module dependency graph.
type ModuleGraph struct {
	Nodes []ModuleNode `json:"nodes"`
	Edges []ModuleEdge `json:"edges"`
}

// charsPerToken is the byte-to-token heuristic shared with the slicer.
const charsPerToken = 4

func sizeClassFromBytes(bytes int64) string {
	switch {
	case bytes < 200_000:
		return "small"
	case bytes < 1_500_000:
		return "medium"
	default:
		return "large"
	}
}

func estTokensFromBytes(bytes int64) int64 {
	return int64(math.Ceil(float64(bytes) / charsPerToken))
}

// relID converts an absolute path into the repo-relative POSIX id,
// normalizing the repo root itself to the "." sentinel. The boolean is
// false when p is not under root.
func relID(repoRoot, p string) (string, bool) {
	rel, err := filepath.Rel(repoRoot, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	if rel == "." || rel == "" {
		return ".", true
	}
	return rel, true
}

func edgeID(source, target string) string {
	return source + "->" + target
}
