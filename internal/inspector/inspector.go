// Package inspector extracts a per-file outline — symbols, imports, and
// exports — using the grammar registry's declarative tree-sitter queries.
package inspector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/codescope/codescope/internal/lang"
)

var (
	// ErrUnsupportedLanguage indicates the file's extension maps to no
	// registered grammar. Distinct from a recognized file that simply
	// contains no symbols, which is not an error.
	ErrUnsupportedLanguage = errors.New("unsupported file extension")

	// ErrParseFailed indicates the grammar produced no syntax tree.
	ErrParseFailed = errors.New("failed to parse file")

	// ErrQueryCompile indicates a language's extraction queries failed
	// to compile against its grammar.
	ErrQueryCompile = errors.New("failed to compile language queries")
)

// Symbol is a named, positioned declaration. Lines are 0-indexed and the
// end line is inclusive, taken from the definition node's span.
type Symbol struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	LineEnd   int    `json:"line_end"`
	Signature string `json:"signature,omitempty"`
}

// FileSymbols is the full extraction result for one file. Imports and
// exports are deduplicated and lexicographically sorted; symbols are
// ordered by (line, name). Consumers rely on this ordering for stable
// diffs.
type FileSymbols struct {
	File    string   `json:"file"`
	Imports []string `json:"imports"`
	Exports []string `json:"exports"`
	Symbols []Symbol `json:"symbols"`
}

// Inspect parses a single file and extracts its symbol outline.
//
// The File field is the provided path normalized to forward slashes;
// callers wanting repo-relative output rewrite it afterwards.
func Inspect(path string) (*FileSymbols, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current dir: %w", err)
		}
		abs = filepath.Join(cwd, abs)
	}

	language := lang.ForFile(abs)
	if language == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, abs)
	}

	queries, err := language.Queries()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryCompile, language.Name, err)
	}

	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	parser := language.NewParser()
	defer parser.Close()

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, abs)
	}
	defer tree.Close()

	root := tree.RootNode()

	symbols := []Symbol{}
	for i, q := range queries.Symbols {
		spec := language.Symbols[i]
		symbols = append(symbols, runSymbolQuery(q, root, source, spec)...)
	}

	var exports []string
	for i, q := range queries.Exports {
		spec := language.Exports[i]
		exports = append(exports, runExportQuery(q, root, source, spec)...)
	}

	var imports []string
	for _, q := range queries.Imports {
		for _, raw := range runStringQuery(q, root, source, "value") {
			imports = append(imports, stripStringQuotes(raw))
		}
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].Line != symbols[j].Line {
			return symbols[i].Line < symbols[j].Line
		}
		return symbols[i].Name < symbols[j].Name
	})

	return &FileSymbols{
		File:    filepath.ToSlash(path),
		Imports: dedupSorted(imports),
		Exports: dedupSorted(exports),
		Symbols: symbols,
	}, nil
}

// InspectRel inspects a file resolved against repoRoot and rewrites the
// File field to the repo-relative POSIX path. Files outside the root
// keep their slash-normalized absolute path.
func InspectRel(repoRoot, path string) (*FileSymbols, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(repoRoot, abs)
	}

	result, err := Inspect(abs)
	if err != nil {
		return nil, err
	}

	if rel, relErr := filepath.Rel(repoRoot, abs); relErr == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
		result.File = filepath.ToSlash(rel)
	}
	return result, nil
}

// runSymbolQuery executes one pattern and converts its matches into
// symbols of the pattern's kind. @def spans the symbol; it defaults to
// the @name node when the pattern binds no @def.
func runSymbolQuery(q *sitter.Query, root *sitter.Node, source []byte, spec lang.SymbolQuery) []Symbol {
	var out []Symbol

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	matches := cursor.Matches(q, root, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var nameNode, defNode *sitter.Node
		for i := range m.Captures {
			c := &m.Captures[i]
			switch names[c.Index] {
			case "name":
				nameNode = &c.Node
			case "def":
				defNode = &c.Node
			}
		}
		if nameNode == nil {
			continue
		}
		if defNode == nil {
			defNode = nameNode
		}

		name := strings.TrimSpace(lang.NodeText(nameNode, source))
		if name == "" {
			continue
		}

		sym := Symbol{
			Name:    name,
			Kind:    spec.Kind,
			Line:    int(defNode.StartPosition().Row),
			LineEnd: int(defNode.EndPosition().Row),
		}
		if spec.Signature {
			sym.Signature = firstLineSignature(lang.NodeText(defNode, source))
		}
		out = append(out, sym)
	}
	return out
}

// runExportQuery collects @name captures, keeping a match only when its
// @vis capture (if the pattern binds one) starts with the required
// visibility prefix. Checking the prefix here keeps the patterns free of
// grammar-level predicates.
func runExportQuery(q *sitter.Query, root *sitter.Node, source []byte, spec lang.ExportQuery) []string {
	var out []string

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	matches := cursor.Matches(q, root, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		var name, vis string
		for i := range m.Captures {
			c := &m.Captures[i]
			switch names[c.Index] {
			case "name":
				name = strings.TrimSpace(lang.NodeText(&c.Node, source))
			case "vis":
				vis = strings.TrimSpace(lang.NodeText(&c.Node, source))
			}
		}
		if name == "" {
			continue
		}
		if spec.VisPrefix != "" && !strings.HasPrefix(vis, spec.VisPrefix) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// runStringQuery collects the trimmed text of every capture with the
// given name.
func runStringQuery(q *sitter.Query, root *sitter.Node, source []byte, capture string) []string {
	var out []string

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	matches := cursor.Matches(q, root, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for i := range m.Captures {
			c := &m.Captures[i]
			if names[c.Index] != capture {
				continue
			}
			text := strings.TrimSpace(lang.NodeText(&c.Node, source))
			if text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

// firstLineSignature condenses a definition's text into a one-line
// preview: truncate at the first opening brace or newline, collapse
// whitespace runs, trim the trailing brace, and cap at 240 characters.
// This is a readability heuristic, not a parse of the parameter list.
func firstLineSignature(defText string) string {
	s := defText
	if i := strings.IndexByte(s, '{'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}

	var b strings.Builder
	prevWS := false
	for _, ch := range s {
		isWS := ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
		if isWS {
			if !prevWS {
				b.WriteByte(' ')
			}
		} else {
			b.WriteRune(ch)
		}
		prevWS = isWS
		if b.Len() >= 240 {
			break
		}
	}

	out := strings.TrimSpace(b.String())
	out = strings.TrimSuffix(out, "{")
	return strings.TrimSpace(out)
}

// stripStringQuotes removes one matching pair of surrounding quote
// characters (single, double, or backtick).
func stripStringQuotes(s string) string {
	t := strings.TrimSpace(s)
	if len(t) >= 2 {
		first, last := t[0], t[len(t)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return t[1 : len(t)-1]
		}
	}
	return t
}

// dedupSorted returns the sorted, deduplicated form of v. A nil input
// yields an empty (non-nil) slice so JSON output is always an array.
func dedupSorted(v []string) []string {
	sort.Strings(v)
	out := make([]string, 0, len(v))
	for i, s := range v {
		if i > 0 && s == v[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
