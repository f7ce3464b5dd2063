package mapper

import (
	"path/filepath"
	"strings"
)

// deniedDirs is the fixed set of infrastructure directories excluded
// from every map and graph. Matching is by exact path-component name,
// case-sensitive, at any depth. This list is a stable external contract:
// changing it changes which files are ever visible to any consumer.
var deniedDirs = map[string]struct{}{
	".git":         {},
	".vscode":      {},
	"node_modules": {},
	"dist":         {},
	"build":        {},
	"target":       {},
	".next":        {},
	".turbo":       {},
	".codescope":   {},
	".cargo":       {},
}

// allowedExts gates which file kinds participate in maps and graphs.
// Slicing has its own, broader size-based filter.
var allowedExts = map[string]struct{}{
	".rs":   {},
	".ts":   {},
	".tsx":  {},
	".js":   {},
	".jsx":  {},
	".py":   {},
	".json": {},
	".md":   {},
	".toml": {},
	".css":  {},
	".scss": {},
	".sass": {},
	".html": {},
}

// isDeniedName reports whether a single path component is deny-listed.
func isDeniedName(name string) bool {
	_, ok := deniedDirs[name]
	return ok
}

// hasDeniedComponent reports whether any component of the path is
// deny-listed, regardless of depth.
func hasDeniedComponent(path string) bool {
	for _, comp := range strings.Split(filepath.ToSlash(path), "/") {
		if isDeniedName(comp) {
			return true
		}
	}
	return false
}

func isAllowedExt(path string) bool {
	_, ok := allowedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}
