// Package lang is the grammar registry: it maps file extensions to
// tree-sitter languages and the declarative queries used to extract
// symbols, imports, and exports from them.
//
// Adding a language means adding one file with an init() that registers
// a *Language whose queries are plain data; no extraction logic changes.
package lang

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SymbolQuery describes one structural pattern that yields symbols of a
// single kind. The pattern must bind a @name capture; a @def capture, if
// present, provides the node whose span becomes the symbol's line range
// (otherwise the name node is used).
type SymbolQuery struct {
	Kind    string
	Pattern string
	// Signature marks kinds whose definition text is condensed into a
	// one-line signature preview.
	Signature bool
}

// ExportQuery describes a pattern matching public-facing declarations.
// It binds @name and, for languages with visibility modifiers, an
// optional @vis capture whose text must begin with VisPrefix.
type ExportQuery struct {
	Pattern   string
	VisPrefix string
}

// ImportQuery describes a pattern whose @value capture is the literal
// string operand of an import/use construct. Surrounding quotes are
// stripped by the extractor.
type ImportQuery struct {
	Pattern string
}

// Language holds the tree-sitter configuration for one supported language.
type Language struct {
	Name       string
	Extensions []string
	Symbols    []SymbolQuery
	Exports    []ExportQuery
	Imports    []ImportQuery

	lang *sitter.Language

	compileOnce sync.Once
	compiled    *CompiledQueries
	compileErr  error
}

// CompiledQueries holds the compiled form of a Language's query set.
// Queries are compiled once per language and shared across calls.
type CompiledQueries struct {
	Symbols []*sitter.Query
	Exports []*sitter.Query
	Imports []*sitter.Query
}

// Sitter returns the tree-sitter language pointer.
func (l *Language) Sitter() *sitter.Language {
	return l.lang
}

// NewParser creates a fresh parser configured for this language.
// Parsers are not safe for concurrent use; callers own the returned
// parser and must Close it.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.lang)
	return p
}

// Queries compiles (once) and returns the language's query set. A
// compile failure is a defect in the registered patterns, not a
// per-file condition; the same error is returned on every call.
func (l *Language) Queries() (*CompiledQueries, error) {
	l.compileOnce.Do(func() {
		cq := &CompiledQueries{}
		for _, sq := range l.Symbols {
			q, err := compile(l.lang, sq.Pattern)
			if err != nil {
				l.compileErr = fmt.Errorf("%s symbol query (%s): %w", l.Name, sq.Kind, err)
				return
			}
			cq.Symbols = append(cq.Symbols, q)
		}
		for _, eq := range l.Exports {
			q, err := compile(l.lang, eq.Pattern)
			if err != nil {
				l.compileErr = fmt.Errorf("%s export query: %w", l.Name, err)
				return
			}
			cq.Exports = append(cq.Exports, q)
		}
		for _, iq := range l.Imports {
			q, err := compile(l.lang, iq.Pattern)
			if err != nil {
				l.compileErr = fmt.Errorf("%s import query: %w", l.Name, err)
				return
			}
			cq.Imports = append(cq.Imports, q)
		}
		l.compiled = cq
	})
	return l.compiled, l.compileErr
}

func compile(language *sitter.Language, pattern string) (*sitter.Query, error) {
	q, qerr := sitter.NewQuery(language, pattern)
	if qerr != nil {
		return nil, qerr
	}
	return q, nil
}

// Languages maps language names to their configuration. Populated by
// init() functions in the per-language files.
var Languages = map[string]*Language{}

var (
	extensionMap  map[string]*Language
	extensionOnce sync.Once
)

func byExtension() map[string]*Language {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]*Language)
		for _, l := range Languages {
			for _, ext := range l.Extensions {
				extensionMap[ext] = l
			}
		}
	})
	return extensionMap
}

// ForFile returns the language for a file path, or nil if the extension
// is not recognized. Matching is case-insensitive. Declaration files
// ending in ".d.ts" resolve to TypeScript even though filepath.Ext only
// sees ".ts"; the compound suffix carries no grammar difference.
func ForFile(path string) *Language {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".d.ts") {
		return Languages["typescript"]
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return nil
	}
	return byExtension()[ext]
}

// NodeText returns the source text of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
