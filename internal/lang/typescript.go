package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// tsSymbols covers the TypeScript/TSX/JavaScript family; all three share
// one AST shape, so the query set is defined once.
var tsSymbols = []SymbolQuery{
	{Kind: "function", Pattern: `(function_declaration name: (identifier) @name) @def`, Signature: true},
	// const foo = () => {} outlines as a function; the signature preview
	// takes the first line of the whole declaration.
	{Kind: "function", Pattern: `(lexical_declaration (variable_declarator name: (identifier) @name value: (arrow_function))) @def`, Signature: true},
	{Kind: "class", Pattern: `(class_declaration name: (type_identifier) @name) @def`},
	{Kind: "method", Pattern: `(method_definition name: (property_identifier) @name) @def`, Signature: true},
}

var tsExports = []ExportQuery{
	{Pattern: `(export_statement declaration: (function_declaration name: (identifier) @name))`},
	{Pattern: `(export_statement declaration: (class_declaration name: (type_identifier) @name))`},
	{Pattern: `(export_statement declaration: (lexical_declaration (variable_declarator name: (identifier) @name)))`},
	{Pattern: `(export_statement (export_clause (export_specifier name: (identifier) @name)))`},
}

var tsImports = []ImportQuery{
	{Pattern: `(import_statement source: (string) @value)`},
}

func init() {
	Languages["typescript"] = &Language{
		Name:       "typescript",
		Extensions: []string{".ts", ".mts", ".cts"},
		lang:       sitter.NewLanguage(typescript.LanguageTypescript()),
		Symbols:    tsSymbols,
		Exports:    tsExports,
		Imports:    tsImports,
	}
	Languages["tsx"] = &Language{
		Name:       "tsx",
		Extensions: []string{".tsx"},
		lang:       sitter.NewLanguage(typescript.LanguageTSX()),
		Symbols:    tsSymbols,
		Exports:    tsExports,
		Imports:    tsImports,
	}
	// JavaScript parses cleanly under the TypeScript grammar.
	Languages["javascript"] = &Language{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		lang:       sitter.NewLanguage(typescript.LanguageTypescript()),
		Symbols:    tsSymbols,
		Exports:    tsExports,
		Imports:    tsImports,
	}
}
