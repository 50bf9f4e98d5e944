package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

func (l *Lowerer) lowerStructDeclaration(node cst.Node) (*ast.Struct, error) {
	var name *ast.Identifier
	var members []ast.StructMember
	table := dispatchTable{
		context: "struct declaration",
		handlers: map[string]handler{
			"identifier": func(n cst.Node) error {
				if name != nil {
					return &ast.InvariantViolationError{Entity: "struct " + name.Name(), Field: "name", Reason: "assigned more than once"}
				}
				id, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				name = &id
				return nil
			},
			"struct_member": func(n cst.Node) error {
				member, err := l.Variables.ResolveStructMember(n)
				if err != nil {
					return err
				}
				members = append(members, member)
				return nil
			},
		},
		ignore: ignoreSet("struct", "{", "}", ";"),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	if name == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "struct declaration missing name"}
	}
	return ast.NewStruct(node, *name, members), nil
}

func (l *Lowerer) lowerEnumDeclaration(node cst.Node) (*ast.Enum, error) {
	var name *ast.Identifier
	var values []ast.Identifier
	table := dispatchTable{
		context: "enum declaration",
		handlers: map[string]handler{
			"identifier": func(n cst.Node) error {
				if name != nil {
					return &ast.InvariantViolationError{Entity: "enum " + name.Name(), Field: "name", Reason: "assigned more than once"}
				}
				id, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				name = &id
				return nil
			},
			"enum_value": func(n cst.Node) error {
				value, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				values = append(values, value)
				return nil
			},
		},
		ignore: ignoreSet("enum", "{", "}", ","),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	if name == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "enum declaration missing name"}
	}
	return ast.NewEnum(node, *name, values), nil
}

func (l *Lowerer) lowerEventDefinition(node cst.Node) (*ast.Event, error) {
	var name *ast.Identifier
	var parameters []ast.EventParameter
	anonymous := false
	table := dispatchTable{
		context: "event definition",
		handlers: map[string]handler{
			"identifier": func(n cst.Node) error {
				if name != nil {
					return &ast.InvariantViolationError{Entity: "event " + name.Name(), Field: "name", Reason: "assigned more than once"}
				}
				id, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				name = &id
				return nil
			},
			"event_parameter": func(n cst.Node) error {
				p, err := l.Variables.ResolveEventParameter(n)
				if err != nil {
					return err
				}
				parameters = append(parameters, p)
				return nil
			},
			"anonymous": func(cst.Node) error {
				anonymous = true
				return nil
			},
		},
		ignore: ignoreSet("event", "(", ")", ",", ";"),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	if name == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "event definition missing name"}
	}
	return ast.NewEvent(node, *name, parameters, anonymous), nil
}

func (l *Lowerer) lowerErrorDeclaration(node cst.Node) (*ast.CustomError, error) {
	var name *ast.Identifier
	var parameters []ast.ErrorParameter
	table := dispatchTable{
		context: "error declaration",
		handlers: map[string]handler{
			"identifier": func(n cst.Node) error {
				if name != nil {
					return &ast.InvariantViolationError{Entity: "error " + name.Name(), Field: "name", Reason: "assigned more than once"}
				}
				id, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				name = &id
				return nil
			},
			"error_parameter": func(n cst.Node) error {
				p, err := l.Variables.ResolveErrorParameter(n)
				if err != nil {
					return err
				}
				parameters = append(parameters, p)
				return nil
			},
		},
		ignore: ignoreSet("error", "(", ")", ",", ";"),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	if name == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "error declaration missing name"}
	}
	return ast.NewCustomError(node, *name, parameters), nil
}

func (l *Lowerer) lowerTypeDefinition(node cst.Node) (*ast.TypeDefinition, error) {
	var name *ast.Identifier
	var underlying *ast.TypeName
	resolveUnderlying := func(n cst.Node) error {
		if underlying != nil {
			return &UnrecognizedNodeError{Tag: n.Kind(), Context: "user-defined type definition"}
		}
		t, err := l.Types.ResolveType(n)
		if err != nil {
			return err
		}
		underlying = &t
		return nil
	}
	table := dispatchTable{
		context: "user-defined type definition",
		handlers: map[string]handler{
			"identifier": func(n cst.Node) error {
				if name != nil {
					return &ast.InvariantViolationError{Entity: "type " + name.Name(), Field: "name", Reason: "assigned more than once"}
				}
				id, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				name = &id
				return nil
			},
			"primitive_type": resolveUnderlying,
			"type_name":      resolveUnderlying,
		},
		ignore: ignoreSet("type", "is", ";"),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	if name == nil || underlying == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "user-defined type definition missing name or type"}
	}
	return ast.NewTypeDefinition(node, *name, *underlying), nil
}
