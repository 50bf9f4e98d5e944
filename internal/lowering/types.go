package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// TypeLowerer is the default TypeResolver. Type references are recorded by
// their literal spelling; elaborating mappings, arrays and qualified names is
// the consuming analysis' concern.
type TypeLowerer struct{}

func (TypeLowerer) ResolveUserDefinedType(node cst.Node) (ast.TypeName, error) {
	text := node.Text()
	if text == "" {
		return ast.TypeName{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "user-defined type reference"}
	}
	return ast.NewTypeName(node, text), nil
}

func (TypeLowerer) ResolveType(node cst.Node) (ast.TypeName, error) {
	text := node.Text()
	if text == "" {
		return ast.TypeName{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "type reference"}
	}
	return ast.NewTypeName(node, text), nil
}
