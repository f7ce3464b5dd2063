package mapper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dominikbraun/graph"

	"github.com/codescope/codescope/internal/inspector"
)

// maxModuleDepth bounds the module-graph walk: entries more than this
// many components below the scan root are invisible to the graph.
const maxModuleDepth = 6

// moduleMarkers identifies directories that act as independent units: a
// package manifest or a language entry/root file.
var moduleMarkers = map[string]struct{}{
	"package.json": {},
	"Cargo.toml":   {},
	"lib.rs":       {},
	"mod.rs":       {},
	"index.ts":     {},
	"index.tsx":    {},
	"index.js":     {},
}

// ModuleProgressReporter receives progress callbacks during the
// per-file extraction pass of a module-graph build.
type ModuleProgressReporter interface {
	OnModuleScanStart(totalFiles int)
	OnModuleFileProcessed(processed, totalFiles int, fileName string)
	OnModuleScanComplete(nodeCount, edgeCount int, duration time.Duration)
}

// ModuleGraphOption configures a module-graph build.
type ModuleGraphOption func(*moduleGraphBuilder)

// WithModuleProgress attaches a progress reporter.
func WithModuleProgress(progress ModuleProgressReporter) ModuleGraphOption {
	return func(b *moduleGraphBuilder) {
		b.progress = progress
	}
}

type moduleGraphBuilder struct {
	progress ModuleProgressReporter
}

// BuildModuleGraph walks the subtree under scanRoot and aggregates it
// into a module-granularity dependency graph.
//
// Three passes: discover module roots via marker files (the scan root is
// always a fallback module), assign every allow-listed file to its
// nearest enclosing module and accumulate sizes, then extract each
// file's imports and count resolved cross-module references as edge
// weights. A file that fails to parse contributes nothing; the build
// never aborts on a single bad file. A missing or non-directory scan
// root is a hard error.
func BuildModuleGraph(repoRoot, scanRoot string, opts ...ModuleGraphOption) (*ModuleGraph, error) {
	b := &moduleGraphBuilder{}
	for _, opt := range opts {
		opt(b)
	}

	start := time.Now()

	rootAbs := scanRoot
	if !filepath.IsAbs(rootAbs) {
		rootAbs = filepath.Join(repoRoot, rootAbs)
	}
	rootAbs = filepath.Clean(rootAbs)

	info, err := os.Stat(rootAbs)
	if err != nil {
		return nil, fmt.Errorf("scan root not found: %s: %w", rootAbs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", rootAbs)
	}

	files, moduleDirs := discoverModules(rootAbs)

	// The scan root is always a module, so every file has an owner.
	moduleDirs[rootAbs] = struct{}{}

	// Pass 2: ownership and size accumulation.
	type moduleStats struct {
		bytes int64
		files int
	}
	stats := map[string]*moduleStats{}
	owner := make(map[string]string, len(files))
	for _, f := range files {
		dir := nearestModuleDir(f.path, rootAbs, moduleDirs)
		owner[f.path] = dir
		st := stats[dir]
		if st == nil {
			st = &moduleStats{}
			stats[dir] = st
		}
		st.bytes += f.bytes
		st.files++
	}

	// Pass 3: weighted import edges, accumulated in a directed weighted
	// graph keyed by module id so duplicate pairs collapse into weights.
	ids := make(map[string]string, len(moduleDirs)) // abs dir -> module id
	for dir := range moduleDirs {
		id, ok := relID(repoRoot, dir)
		if !ok {
			id = filepath.ToSlash(dir)
		}
		ids[dir] = id
	}

	g := graph.New(graph.StringHash, graph.Directed(), graph.Weighted())
	for _, id := range ids {
		_ = g.AddVertex(id)
	}

	if b.progress != nil {
		b.progress.OnModuleScanStart(len(files))
	}

	for i, f := range files {
		if b.progress != nil {
			b.progress.OnModuleFileProcessed(i+1, len(files), filepath.Base(f.path))
		}

		syms, err := inspector.Inspect(f.path)
		if err != nil {
			continue
		}

		sourceID := ids[owner[f.path]]
		for _, imp := range syms.Imports {
			resolved, ok := ResolveImport(repoRoot, f.path, imp)
			if !ok {
				continue
			}
			targetDir := nearestModuleDir(resolved, rootAbs, moduleDirs)
			if targetDir == "" {
				continue
			}
			targetID := ids[targetDir]
			if targetID == sourceID {
				continue
			}
			addWeightedEdge(g, sourceID, targetID)
		}
	}

	// Export deterministically.
	nodes := make([]ModuleNode, 0, len(moduleDirs))
	for dir := range moduleDirs {
		id := ids[dir]
		label := filepath.Base(dir)
		if id == "." {
			label = filepath.Base(repoRoot)
		}

		var bytes int64
		var fileCount int
		if st := stats[dir]; st != nil {
			bytes = st.bytes
			fileCount = st.files
		}

		nodes = append(nodes, ModuleNode{
			ID:        id,
			Label:     label,
			Path:      id,
			SizeClass: sizeClassFromBytes(bytes),
			Bytes:     bytes,
			EstTokens: estTokensFromBytes(bytes),
			Files:     fileCount,
		})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	rawEdges, err := g.Edges()
	if err != nil {
		return nil, fmt.Errorf("failed to list module edges: %w", err)
	}
	edges := make([]ModuleEdge, 0, len(rawEdges))
	for _, e := range rawEdges {
		edges = append(edges, ModuleEdge{
			ID:     edgeID(e.Source, e.Target),
			Source: e.Source,
			Target: e.Target,
			Weight: e.Properties.Weight,
		})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })

	if b.progress != nil {
		b.progress.OnModuleScanComplete(len(nodes), len(edges), time.Since(start))
	}

	return &ModuleGraph{Nodes: nodes, Edges: edges}, nil
}

type scannedFile struct {
	path  string
	bytes int64
}

// discoverModules walks the subtree once, collecting allow-listed files
// and the directories holding module markers. The walk prunes denied
// directories and respects the fixed depth bound. Per-entry filesystem
// errors skip the entry; they never abort the walk.
func discoverModules(rootAbs string) ([]scannedFile, map[string]struct{}) {
	var files []scannedFile
	moduleDirs := map[string]struct{}{}

	_ = filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == rootAbs {
				return nil
			}
			// A dir at the depth bound would only yield entries past it.
			if isDeniedName(name) || walkDepth(rootAbs, path) >= maxModuleDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if hasDeniedComponent(path) {
			return nil
		}

		if _, marker := moduleMarkers[name]; marker {
			moduleDirs[filepath.Dir(path)] = struct{}{}
		}

		if !isAllowedExt(path) {
			return nil
		}

		fi, err := d.Info()
		if err != nil || fi.Size() == 0 {
			return nil
		}

		files = append(files, scannedFile{path: path, bytes: fi.Size()})
		return nil
	})

	return files, moduleDirs
}

func walkDepth(rootAbs, path string) int {
	rel, err := filepath.Rel(rootAbs, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(filepath.ToSlash(rel), "/"))
}

// nearestModuleDir walks upward from the file to the scan root and
// returns the closest directory registered as a module. Returns "" for
// paths outside the scan root.
func nearestModuleDir(path, rootAbs string, moduleDirs map[string]struct{}) string {
	dir := filepath.Dir(path)
	for {
		if _, ok := moduleDirs[dir]; ok {
			return dir
		}
		if dir == rootAbs {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// addWeightedEdge inserts an edge with weight 1 or bumps the weight of
// an existing one.
func addWeightedEdge(g graph.Graph[string, string], source, target string) {
	err := g.AddEdge(source, target, graph.EdgeWeight(1))
	if err == nil {
		return
	}
	if !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return
	}
	if e, err := g.Edge(source, target); err == nil {
		_ = g.UpdateEdge(source, target, graph.EdgeWeight(e.Properties.Weight+1))
	}
}
