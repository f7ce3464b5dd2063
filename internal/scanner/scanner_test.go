package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Scanner:
// - Directory scan returns files sorted by relative path
// - Exclude dirs pruned anywhere, hidden files and dirs skipped
// - Ignore globs applied against slash-relative paths
// - .gitignore rules honored when present
// - Empty files and files over the size cap dropped
// - Single-file target bypasses filters but not the size cap
// - Missing target is a hard error
// - Invalid ignore glob fails at construction

func setupScanRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "x"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".hidden"), 0o755))

	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte(content), 0o644))
	}
	write("src/b.ts", "export const b = 1;\n")
	write("src/a.ts", "export const a = 1;\n")
	write("src/a.min.js", "minified\n")
	write("src/empty.ts", "")
	write("node_modules/x/index.js", "ignored\n")
	write(".hidden/secret.ts", "hidden\n")
	write(".env", "SECRET=1\n")
	write("big.ts", string(make([]byte, 100)))
	return root
}

func TestScan_SortedAndFiltered(t *testing.T) {
	root := setupScanRepo(t)

	sc, err := New(Options{
		RepoRoot:    root,
		Target:      root,
		ExcludeDirs: []string{"node_modules"},
		IgnoreGlobs: []string{"**/*.min.js"},
	})
	require.NoError(t, err)

	entries, err := sc.Scan()
	require.NoError(t, err)

	rels := make([]string, 0, len(entries))
	for _, e := range entries {
		rels = append(rels, e.RelPath)
	}
	assert.Equal(t, []string{"big.ts", "src/a.ts", "src/b.ts"}, rels)
}

func TestScan_SizeCap(t *testing.T) {
	root := setupScanRepo(t)

	sc, err := New(Options{
		RepoRoot:     root,
		Target:       root,
		MaxFileBytes: 50,
		ExcludeDirs:  []string{"node_modules"},
	})
	require.NoError(t, err)

	entries, err := sc.Scan()
	require.NoError(t, err)

	for _, e := range entries {
		assert.NotEqual(t, "big.ts", e.RelPath)
		assert.LessOrEqual(t, e.Bytes, int64(50))
	}
}

func TestScan_GitignoreRules(t *testing.T) {
	root := setupScanRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("src/b.ts\n"), 0o644))

	sc, err := New(Options{RepoRoot: root, Target: root, ExcludeDirs: []string{"node_modules"}})
	require.NoError(t, err)

	entries, err := sc.Scan()
	require.NoError(t, err)

	for _, e := range entries {
		assert.NotEqual(t, "src/b.ts", e.RelPath)
	}
}

func TestScan_SingleFileTarget(t *testing.T) {
	root := setupScanRepo(t)

	sc, err := New(Options{RepoRoot: root, Target: "src/a.min.js", IgnoreGlobs: []string{"**/*.min.js"}})
	require.NoError(t, err)

	// Explicitly named files skip the glob filters.
	entries, err := sc.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src/a.min.js", entries[0].RelPath)
	assert.Equal(t, int64(9), entries[0].Bytes)
}

func TestScan_SingleFileTargetOverCap(t *testing.T) {
	root := setupScanRepo(t)

	sc, err := New(Options{RepoRoot: root, Target: "big.ts", MaxFileBytes: 50})
	require.NoError(t, err)

	entries, err := sc.Scan()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScan_MissingTarget(t *testing.T) {
	root := t.TempDir()

	sc, err := New(Options{RepoRoot: root, Target: "nope"})
	require.NoError(t, err)

	_, err = sc.Scan()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target not found")
}

func TestNew_InvalidGlob(t *testing.T) {
	_, err := New(Options{RepoRoot: t.TempDir(), Target: ".", IgnoreGlobs: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}
