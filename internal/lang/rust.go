package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

func init() {
	Languages["rust"] = &Language{
		Name:       "rust",
		Extensions: []string{".rs"},
		lang:       sitter.NewLanguage(rust.Language()),
		Symbols: []SymbolQuery{
			{Kind: "function", Pattern: `(function_item name: (identifier) @name) @def`, Signature: true},
			{Kind: "struct", Pattern: `(struct_item name: (type_identifier) @name) @def`},
			{Kind: "enum", Pattern: `(enum_item name: (type_identifier) @name) @def`},
			{Kind: "trait", Pattern: `(trait_item name: (type_identifier) @name) @def`},
		},
		Exports: []ExportQuery{
			{Pattern: `(function_item (visibility_modifier) @vis name: (identifier) @name)`, VisPrefix: "pub"},
			{Pattern: `(struct_item (visibility_modifier) @vis name: (type_identifier) @name)`, VisPrefix: "pub"},
			{Pattern: `(enum_item (visibility_modifier) @vis name: (type_identifier) @name)`, VisPrefix: "pub"},
			{Pattern: `(trait_item (visibility_modifier) @vis name: (type_identifier) @name)`, VisPrefix: "pub"},
		},
		Imports: []ImportQuery{
			// Raw use path text; crate-relative paths are never resolved
			// to files, but the edge list is still useful to callers.
			{Pattern: `(use_declaration argument: (_) @value)`},
		},
	}
}
