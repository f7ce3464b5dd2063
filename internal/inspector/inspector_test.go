package inspector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Inspector:
// - TypeScript: functions, classes, arrow consts extracted with line spans
// - TypeScript: imports captured with quotes stripped, exports captured
// - Rust: pub items surface as exports, use declarations as imports
// - Python: functions and classes extracted, signatures present
// - Symbols ordered by (line, name); imports/exports deduped and sorted
// - Inspect is idempotent for the same input
// - Unsupported extensions return ErrUnsupportedLanguage
// - Missing files return a read error
// - InspectRel resolves against the repo root and emits repo-relative
//   file paths; files outside the root keep their absolute path

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInspect_TypeScript(t *testing.T) {
	dir := t.TempDir()
	src := `import { helper } from './util';
import fs from 'node:fs';

export function greet(name: string): string {
  return "hi " + name;
}

const localOnly = () => 42;

export class Greeter {
  greet() {
    return greet("world");
  }
}
`
	path := writeFixture(t, dir, "app.ts", src)

	result, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"./util", "node:fs"}, result.Imports)
	assert.Contains(t, result.Exports, "greet")
	assert.Contains(t, result.Exports, "Greeter")

	// Sorted by (line, name): the top-level function, the arrow const,
	// the class, then the method inside it.
	require.Len(t, result.Symbols, 4)

	greet := result.Symbols[0]
	assert.Equal(t, "greet", greet.Name)
	assert.Equal(t, "function", greet.Kind)
	assert.Equal(t, 3, greet.Line)
	assert.Equal(t, 5, greet.LineEnd)
	assert.Contains(t, greet.Signature, "function greet(name: string): string")

	assert.Equal(t, "localOnly", result.Symbols[1].Name)
	assert.Equal(t, "function", result.Symbols[1].Kind)

	assert.Equal(t, "Greeter", result.Symbols[2].Name)
	assert.Equal(t, "class", result.Symbols[2].Kind)

	assert.Equal(t, "greet", result.Symbols[3].Name)
	assert.Equal(t, "method", result.Symbols[3].Kind)
}

func TestInspect_Rust(t *testing.T) {
	dir := t.TempDir()
	src := `use std::collections::HashMap;
use crate::scanner::Scanner;

pub fn build(input: &str) -> HashMap<String, usize> {
    HashMap::new()
}

fn internal_helper() {}

pub struct Slice {
    pub bytes: usize,
}
`
	path := writeFixture(t, dir, "lib.rs", src)

	result, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"crate::scanner::Scanner", "std::collections::HashMap"}, result.Imports)
	assert.Equal(t, []string{"Slice", "build"}, result.Exports)

	kinds := map[string]string{}
	for _, sym := range result.Symbols {
		kinds[sym.Name] = sym.Kind
	}
	assert.Equal(t, "function", kinds["build"])
	assert.Equal(t, "function", kinds["internal_helper"])
	assert.Equal(t, "struct", kinds["Slice"])
}

func TestInspect_Python(t *testing.T) {
	dir := t.TempDir()
	src := `def slice_repo(root, budget):
    return []


class Mapper:
    def scoped(self, root):
        return None
`
	path := writeFixture(t, dir, "tool.py", src)

	result, err := Inspect(path)
	require.NoError(t, err)

	require.NotEmpty(t, result.Symbols)
	assert.Equal(t, "slice_repo", result.Symbols[0].Name)
	assert.Equal(t, "function", result.Symbols[0].Kind)
	assert.Equal(t, 0, result.Symbols[0].Line)
	assert.Contains(t, result.Symbols[0].Signature, "def slice_repo(root, budget)")

	var class Symbol
	for _, sym := range result.Symbols {
		if sym.Kind == "class" {
			class = sym
		}
	}
	assert.Equal(t, "Mapper", class.Name)
}

func TestInspect_SymbolOrderAndDedup(t *testing.T) {
	dir := t.TempDir()
	src := `import { a } from './dep';
import { b } from './dep';

function zeta() {}
function alpha() {}
`
	path := writeFixture(t, dir, "order.ts", src)

	result, err := Inspect(path)
	require.NoError(t, err)

	// Duplicate import refs collapse to one.
	assert.Equal(t, []string{"./dep"}, result.Imports)

	// Source order (line) wins over name order.
	require.Len(t, result.Symbols, 2)
	assert.Equal(t, "zeta", result.Symbols[0].Name)
	assert.Equal(t, "alpha", result.Symbols[1].Name)
}

func TestInspect_PublicAndPrivateMix(t *testing.T) {
	dir := t.TempDir()
	src := `import { u } from './util';

export function first() {
  return u;
}

function second() {
  return 2;
}

class Holder {}
`
	path := writeFixture(t, dir, "mix.ts", src)

	result, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"./util"}, result.Imports)
	assert.Equal(t, []string{"first"}, result.Exports)

	require.Len(t, result.Symbols, 3)
	assert.Equal(t, "first", result.Symbols[0].Name)
	assert.Equal(t, "function", result.Symbols[0].Kind)
	assert.Equal(t, "second", result.Symbols[1].Name)
	assert.Equal(t, "function", result.Symbols[1].Kind)
	assert.Equal(t, "Holder", result.Symbols[2].Name)
	assert.Equal(t, "class", result.Symbols[2].Kind)
}

func TestInspect_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "same.rs", "pub fn one() {}\npub fn two() {}\n")

	first, err := Inspect(path)
	require.NoError(t, err)
	second, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestInspect_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "notes.txt", "hello")

	_, err := Inspect(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestInspect_MissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "missing.rs"))
	require.Error(t, err)
}

func TestInspectRel_RepoRelativeFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	abs := writeFixture(t, filepath.Join(root, "sub"), "app.ts", "export const a = 1;\n")

	// Relative argument resolves against the root, not the CWD.
	result, err := InspectRel(root, "sub/app.ts")
	require.NoError(t, err)
	assert.Equal(t, "sub/app.ts", result.File)

	// Absolute argument is rewritten to the same repo-relative path.
	result, err = InspectRel(root, abs)
	require.NoError(t, err)
	assert.Equal(t, "sub/app.ts", result.File)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"file":"sub/app.ts"`)
}

func TestInspectRel_OutsideRootKeepsAbsolutePath(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	abs := writeFixture(t, elsewhere, "loose.ts", "export const x = 1;\n")

	result, err := InspectRel(root, abs)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), result.File)
}

func TestInspect_EmptyArrays(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "empty.ts", "// nothing here\n")

	result, err := Inspect(path)
	require.NoError(t, err)

	assert.NotNil(t, result.Imports)
	assert.NotNil(t, result.Exports)
	assert.NotNil(t, result.Symbols)
	assert.Empty(t, result.Symbols)
}
