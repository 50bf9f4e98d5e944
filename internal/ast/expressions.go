package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// Identifier is a name with a source location. Equality is by name only.
type Identifier struct {
	Core
	name string
}

// NewIdentifier builds an identifier from its CST token.
func NewIdentifier(node cst.Node, name string) Identifier {
	return Identifier{Core: NewCore(node), name: name}
}

func (i Identifier) Name() string { return i.name }

func (i Identifier) Equal(other Identifier) bool { return i.name == other.name }

func (i Identifier) String() string { return i.name }

// Expression is an opaque lowered expression. The declaration front-end never
// inspects expression structure; it records the literal source form for
// downstream resolvers.
type Expression struct {
	Core
	text string
}

// NewExpression builds an expression from its CST node and literal text.
func NewExpression(node cst.Node, text string) Expression {
	return Expression{Core: NewCore(node), text: text}
}

func (e Expression) Text() string { return e.text }

func (e Expression) Equal(other Expression) bool { return e.text == other.text }

// TypeName is a lowered type reference: elementary, user-defined, mapping or
// array. Like Expression it is text-backed at this layer; full resolution
// belongs to the type resolver of the consuming analysis.
type TypeName struct {
	Core
	text string
}

// NewTypeName builds a type reference from its CST node and literal text.
func NewTypeName(node cst.Node, text string) TypeName {
	return TypeName{Core: NewCore(node), text: text}
}

func (t TypeName) Text() string { return t.text }

func (t TypeName) Equal(other TypeName) bool { return t.text == other.text }

// FieldInitializer is one entry of a named ("struct") argument list:
// `{x: 1, y: 2}` yields two initializers in source order.
type FieldInitializer struct {
	Field Identifier
	Value Expression
}

// Body is the opaque handle a statement resolver produces for a function
// body. The declaration front-end stores it without ever looking inside.
type Body struct {
	Core
}

// NewBody wraps a function body node as an opaque handle.
func NewBody(node cst.Node) Body {
	return Body{Core: NewCore(node)}
}
