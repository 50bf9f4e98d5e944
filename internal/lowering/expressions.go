package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// ExpressionLowerer is the default ExpressionResolver. Expressions stay
// text-backed at this layer; only identifiers and struct-argument lists get
// structure.
type ExpressionLowerer struct{}

func (ExpressionLowerer) ResolveIdentifier(node cst.Node) (ast.Identifier, error) {
	name := node.Text()
	if name == "" {
		return ast.Identifier{}, &MalformedDirectiveError{Directive: "identifier", Reason: "empty identifier token"}
	}
	return ast.NewIdentifier(node, name), nil
}

func (ExpressionLowerer) ResolveExpression(node cst.Node) (ast.Expression, error) {
	return ast.NewExpression(node, node.Text()), nil
}

// ResolveStructArguments lowers `{name: value, ...}`. Field names and value
// expressions alternate between the brace and comma tokens.
func (e ExpressionLowerer) ResolveStructArguments(node cst.Node) ([]ast.FieldInitializer, error) {
	var fields []ast.FieldInitializer
	var pending *ast.Identifier
	for _, child := range node.Children() {
		switch child.Kind() {
		case "{", "}", ",", ":", "comment":
			continue
		case "identifier":
			if pending == nil {
				name, err := e.ResolveIdentifier(child)
				if err != nil {
					return nil, err
				}
				pending = &name
				continue
			}
			// An identifier in value position is itself the value.
			fallthrough
		default:
			if pending == nil {
				return nil, &UnrecognizedNodeError{Tag: child.Kind(), Context: "struct arguments"}
			}
			value, err := e.ResolveExpression(child)
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.FieldInitializer{Field: *pending, Value: value})
			pending = nil
		}
	}
	if pending != nil {
		return nil, &UnrecognizedNodeError{Tag: "identifier", Context: "struct arguments missing value"}
	}
	return fields, nil
}
