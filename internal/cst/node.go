// Package cst defines the read-only concrete syntax tree consumed by the
// lowering front-end. The tree is produced by an external parsing library
// (tree-sitter with a Solidity grammar); this package never mutates it.
package cst

// Node is a single node of the concrete syntax tree. Every surface token,
// including keywords and punctuation, appears as a leaf child. Implementations
// must be read-only: the lowering front-end holds Node references inside the
// AST it produces for diagnostics.
type Node interface {
	// Kind returns the grammar production tag, e.g. "contract_declaration".
	// Anonymous tokens report their literal text as the tag ("{", "is", ...).
	Kind() string

	// Text returns the literal source text the node spans.
	Text() string

	// Children returns the ordered child nodes, tokens included.
	Children() []Node

	// Position reports where the node starts in its source file.
	Position() Position
}

// Position is a 1-based line / 0-based column source location.
type Position struct {
	Line   int
	Column int
}

// FirstChild returns the first child of n, or nil for a leaf.
func FirstChild(n Node) Node {
	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
