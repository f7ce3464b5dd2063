package mapper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/codescope/codescope/internal/inspector"
)

// ScopedMap builds a one-level parent/children map of a directory for
// incremental UI expansion.
//
// Contract:
//   - The scope directory itself is emitted as a node, so callers have a
//     stable anchor to attach children to.
//   - Only immediate children appear; directories recurse no further.
//   - Deny-listed names are hard-excluded at any depth, and file nodes
//     are restricted to the extension allow-list.
//   - Edges connect scope->child, plus "smart edges" between sibling
//     files whose relative imports resolve to each other.
func ScopedMap(repoRoot, scope string) (*RepoMap, error) {
	scopeAbs := scope
	if !filepath.IsAbs(scopeAbs) {
		scopeAbs = filepath.Join(repoRoot, scopeAbs)
	}
	scopeAbs = filepath.Clean(scopeAbs)

	info, err := os.Stat(scopeAbs)
	if err != nil {
		return nil, fmt.Errorf("scope path not found: %s: %w", scopeAbs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scope path is not a directory: %s", scopeAbs)
	}

	parentID, ok := relID(repoRoot, scopeAbs)
	if !ok {
		parentID = filepath.ToSlash(scope)
	}

	label := filepath.Base(scopeAbs)
	if parentID == "." {
		label = filepath.Base(repoRoot)
	}

	nodes := []MapNode{{
		ID:        parentID,
		Label:     label,
		Path:      parentID,
		Kind:      KindDirectory,
		SizeClass: "small",
	}}
	edges := []MapEdge{}

	// file node id -> absolute path, for smart-edge resolution.
	fileNodes := map[string]string{}
	nodeSet := map[string]struct{}{parentID: {}}

	entries, err := os.ReadDir(scopeAbs)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", scopeAbs, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(scopeAbs, name)

		if isDeniedName(name) || hasDeniedComponent(path) {
			continue
		}

		id, ok := relID(repoRoot, path)
		if !ok {
			continue
		}

		if entry.IsDir() {
			nodes = append(nodes, MapNode{
				ID:        id,
				Label:     name,
				Path:      id,
				Kind:      KindDirectory,
				SizeClass: "small",
			})
			edges = append(edges, MapEdge{ID: edgeID(parentID, id), Source: parentID, Target: id})
			nodeSet[id] = struct{}{}
			continue
		}

		if !entry.Type().IsRegular() || !isAllowedExt(path) {
			continue
		}

		var bytes int64
		if fi, err := entry.Info(); err == nil {
			bytes = fi.Size()
		}

		nodes = append(nodes, MapNode{
			ID:        id,
			Label:     name,
			Path:      id,
			Kind:      KindFile,
			SizeClass: sizeClassFromBytes(bytes),
			Bytes:     bytes,
			EstTokens: estTokensFromBytes(bytes),
		})
		edges = append(edges, MapEdge{ID: edgeID(parentID, id), Source: parentID, Target: id})
		nodeSet[id] = struct{}{}
		fileNodes[id] = path
	}

	edges = append(edges, smartEdges(repoRoot, fileNodes, nodeSet)...)

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	edges = dedupEdges(edges)

	return &RepoMap{Nodes: nodes, Edges: edges}, nil
}

// smartEdges extracts each file node's imports and adds an edge when a
// relative import resolves to another emitted node. Extraction failures
// skip the file; a map never fails because one child would not parse.
func smartEdges(repoRoot string, fileNodes map[string]string, nodeSet map[string]struct{}) []MapEdge {
	var edges []MapEdge
	for sourceID, abs := range fileNodes {
		fs, err := inspector.Inspect(abs)
		if err != nil {
			continue
		}
		for _, imp := range fs.Imports {
			resolved, ok := ResolveImport(repoRoot, abs, imp)
			if !ok {
				continue
			}
			targetID, ok := relID(repoRoot, resolved)
			if !ok {
				continue
			}
			if _, emitted := nodeSet[targetID]; !emitted || targetID == sourceID {
				continue
			}
			edges = append(edges, MapEdge{ID: edgeID(sourceID, targetID), Source: sourceID, Target: targetID})
		}
	}
	return edges
}

// dedupEdges collapses duplicate (source,target) pairs and returns the
// set sorted by edge id.
func dedupEdges(edges []MapEdge) []MapEdge {
	seen := map[string]struct{}{}
	out := edges[:0]
	for _, e := range edges {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
