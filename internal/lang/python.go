package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

func init() {
	// Python has no visibility modifiers and no string-operand imports,
	// so only the symbol outline is extracted.
	Languages["python"] = &Language{
		Name:       "python",
		Extensions: []string{".py"},
		lang:       sitter.NewLanguage(python.Language()),
		Symbols: []SymbolQuery{
			{Kind: "function", Pattern: `(function_definition name: (identifier) @name) @def`, Signature: true},
			{Kind: "class", Pattern: `(class_definition name: (identifier) @name) @def`},
		},
	}
}
