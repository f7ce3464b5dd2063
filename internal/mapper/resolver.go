package mapper

import (
	"os"
	"path/filepath"
	"strings"
)

// resolveExts is the fixed extension list tried when an import omits its
// extension, and again for directory imports via index files.
var resolveExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".rs", ".py"}

// ResolveImport resolves a raw import reference against the file that
// contains it. Only relative references ("./x", "../x") are attempted;
// bare and absolute specifiers are external packages and always return
// false. Candidates are tried in order: the literal joined path, the
// path with each known extension appended, then the path as a directory
// with an index file of each extension. The first candidate that is a
// regular file under repoRoot wins.
//
// This is deliberately a heuristic, not a module-resolution algorithm:
// no manifests, no path aliases. The surrounding system assumes
// best-effort edges.
func ResolveImport(repoRoot, fromFile, ref string) (string, bool) {
	if !strings.HasPrefix(ref, "./") && !strings.HasPrefix(ref, "../") {
		return "", false
	}

	base := filepath.Join(filepath.Dir(fromFile), filepath.FromSlash(ref))

	candidates := make([]string, 0, 1+2*len(resolveExts))
	candidates = append(candidates, base)
	for _, ext := range resolveExts {
		candidates = append(candidates, base+ext)
	}
	for _, ext := range resolveExts {
		candidates = append(candidates, filepath.Join(base, "index"+ext))
	}

	for _, cand := range candidates {
		cand = filepath.Clean(cand)
		info, err := os.Stat(cand)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if _, ok := relID(repoRoot, cand); !ok {
			continue
		}
		return cand, true
	}
	return "", false
}
