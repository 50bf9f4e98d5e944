package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// VariableLowerer is the default VariableResolver.
type VariableLowerer struct {
	Expressions ExpressionResolver
	Types       TypeResolver
}

// NewVariableLowerer builds a VariableLowerer on the default expression and
// type resolvers.
func NewVariableLowerer() VariableLowerer {
	return VariableLowerer{Expressions: ExpressionLowerer{}, Types: TypeLowerer{}}
}

func (v VariableLowerer) ResolveParameter(node cst.Node) (ast.Parameter, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	location := ""
	for _, child := range node.Children() {
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return ast.Parameter{}, err
			}
			typeName = &resolved
		case "memory", "calldata", "storage":
			location = child.Kind()
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return ast.Parameter{}, err
			}
			name = &resolved
		case "comment":
		default:
			return ast.Parameter{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "parameter"}
		}
	}
	if typeName == nil {
		return ast.Parameter{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "parameter missing type"}
	}
	return ast.NewParameter(node, *typeName, name, location), nil
}

func (v VariableLowerer) ResolveEventParameter(node cst.Node) (ast.EventParameter, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	indexed := false
	for _, child := range node.Children() {
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return ast.EventParameter{}, err
			}
			typeName = &resolved
		case "indexed":
			indexed = true
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return ast.EventParameter{}, err
			}
			name = &resolved
		case "comment":
		default:
			return ast.EventParameter{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "event parameter"}
		}
	}
	if typeName == nil {
		return ast.EventParameter{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "event parameter missing type"}
	}
	return ast.NewEventParameter(node, *typeName, name, indexed), nil
}

func (v VariableLowerer) ResolveErrorParameter(node cst.Node) (ast.ErrorParameter, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	for _, child := range node.Children() {
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return ast.ErrorParameter{}, err
			}
			typeName = &resolved
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return ast.ErrorParameter{}, err
			}
			name = &resolved
		case "comment":
		default:
			return ast.ErrorParameter{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "error parameter"}
		}
	}
	if typeName == nil {
		return ast.ErrorParameter{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "error parameter missing type"}
	}
	return ast.NewErrorParameter(node, *typeName, name), nil
}

func (v VariableLowerer) ResolveStructMember(node cst.Node) (ast.StructMember, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	for _, child := range node.Children() {
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return ast.StructMember{}, err
			}
			typeName = &resolved
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return ast.StructMember{}, err
			}
			name = &resolved
		case ";", "comment":
		default:
			return ast.StructMember{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "struct member"}
		}
	}
	if typeName == nil || name == nil {
		return ast.StructMember{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "struct member missing type or name"}
	}
	return ast.NewStructMember(node, *typeName, *name), nil
}

func (v VariableLowerer) ResolveStateVariable(node cst.Node) (*ast.StateVariable, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	var value *ast.Expression
	visibility := ast.VisibilityUnspecified
	constant := false
	immutable := false
	expectValue := false
	for _, child := range node.Children() {
		if expectValue {
			resolved, err := v.Expressions.ResolveExpression(child)
			if err != nil {
				return nil, err
			}
			value = &resolved
			expectValue = false
			continue
		}
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return nil, err
			}
			typeName = &resolved
		case "visibility":
			parsed, ok := visibilityFromText(child.Text())
			if !ok {
				return nil, &UnrecognizedNodeError{Tag: child.Text(), Context: "state variable visibility"}
			}
			if visibility != ast.VisibilityUnspecified {
				return nil, &ast.InvariantViolationError{Entity: "state variable", Field: "visibility", Reason: "assigned more than once"}
			}
			visibility = parsed
		case "constant":
			constant = true
		case "immutable":
			immutable = true
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return nil, err
			}
			name = &resolved
		case "=":
			expectValue = true
		case ";", "comment":
		default:
			return nil, &UnrecognizedNodeError{Tag: child.Kind(), Context: "state variable declaration"}
		}
	}
	if typeName == nil || name == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "state variable missing type or name"}
	}
	variable := ast.NewStateVariable(node, *typeName, *name, visibility, constant, immutable, value)
	return &variable, nil
}

func (v VariableLowerer) ResolveConstant(node cst.Node) (*ast.Constant, error) {
	var typeName *ast.TypeName
	var name *ast.Identifier
	var value *ast.Expression
	expectValue := false
	for _, child := range node.Children() {
		if expectValue {
			resolved, err := v.Expressions.ResolveExpression(child)
			if err != nil {
				return nil, err
			}
			value = &resolved
			expectValue = false
			continue
		}
		switch child.Kind() {
		case "type_name":
			resolved, err := v.Types.ResolveType(child)
			if err != nil {
				return nil, err
			}
			typeName = &resolved
		case "constant":
		case "identifier":
			resolved, err := v.Expressions.ResolveIdentifier(child)
			if err != nil {
				return nil, err
			}
			name = &resolved
		case "=":
			expectValue = true
		case ";", "comment":
		default:
			return nil, &UnrecognizedNodeError{Tag: child.Kind(), Context: "constant declaration"}
		}
	}
	if typeName == nil || name == nil || value == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "constant missing type, name or value"}
	}
	constant := ast.NewConstant(node, *typeName, *name, *value)
	return &constant, nil
}

func visibilityFromText(text string) (ast.Visibility, bool) {
	switch text {
	case "external":
		return ast.VisibilityExternal, true
	case "public":
		return ast.VisibilityPublic, true
	case "internal":
		return ast.VisibilityInternal, true
	case "private":
		return ast.VisibilityPrivate, true
	}
	return ast.VisibilityUnspecified, false
}

func mutabilityFromText(text string) (ast.Mutability, bool) {
	switch text {
	case "pure":
		return ast.MutabilityPure, true
	case "view":
		return ast.MutabilityView, true
	case "payable":
		return ast.MutabilityPayable, true
	}
	return ast.MutabilityUnspecified, false
}
