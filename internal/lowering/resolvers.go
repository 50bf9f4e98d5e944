package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// ExpressionResolver lowers expression-shaped nodes. The declaration
// front-end treats expressions as opaque.
type ExpressionResolver interface {
	ResolveIdentifier(node cst.Node) (ast.Identifier, error)
	ResolveExpression(node cst.Node) (ast.Expression, error)
	// ResolveStructArguments lowers a brace-delimited field-initializer
	// list, e.g. the argument of `is B({x: 1})`.
	ResolveStructArguments(node cst.Node) ([]ast.FieldInitializer, error)
}

// TypeResolver lowers type references.
type TypeResolver interface {
	ResolveUserDefinedType(node cst.Node) (ast.TypeName, error)
	ResolveType(node cst.Node) (ast.TypeName, error)
}

// VariableResolver lowers parameter- and variable-shaped declarations,
// including the indexed tag on event parameters.
type VariableResolver interface {
	ResolveParameter(node cst.Node) (ast.Parameter, error)
	ResolveEventParameter(node cst.Node) (ast.EventParameter, error)
	ResolveErrorParameter(node cst.Node) (ast.ErrorParameter, error)
	ResolveStructMember(node cst.Node) (ast.StructMember, error)
	ResolveStateVariable(node cst.Node) (*ast.StateVariable, error)
	ResolveConstant(node cst.Node) (*ast.Constant, error)
}

// StatementResolver lowers function bodies to opaque handles. The
// declaration front-end never inspects a body.
type StatementResolver interface {
	ResolveBody(node cst.Node) (ast.Body, error)
}
