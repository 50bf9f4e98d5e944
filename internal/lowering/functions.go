package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

func (l *Lowerer) lowerFunctionDefinition(node cst.Node) (*ast.Function, error) {
	built, err := l.lowerCallable(ast.CallableFunction, node)
	if err != nil {
		return nil, err
	}
	return built.(*ast.Function), nil
}

func (l *Lowerer) lowerModifierDefinition(node cst.Node) (*ast.Modifier, error) {
	built, err := l.lowerCallable(ast.CallableModifier, node)
	if err != nil {
		return nil, err
	}
	return built.(*ast.Modifier), nil
}

func (l *Lowerer) lowerConstructorDefinition(node cst.Node) (*ast.Constructor, error) {
	built, err := l.lowerCallable(ast.CallableConstructor, node)
	if err != nil {
		return nil, err
	}
	return built.(*ast.Constructor), nil
}

// lowerFallbackReceive selects the variant from the leading keyword: a
// definition starting with `receive` is a receive function, one starting with
// `fallback` is a fallback function. Neither has a name.
func (l *Lowerer) lowerFallbackReceive(node cst.Node) (ast.Callable, error) {
	first := cst.FirstChild(node)
	if first == nil {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "empty fallback or receive definition"}
	}
	switch first.Kind() {
	case "receive":
		return l.lowerCallable(ast.CallableReceive, node)
	case "fallback":
		return l.lowerCallable(ast.CallableFallback, node)
	}
	return nil, &UnrecognizedNodeError{Tag: first.Kind(), Context: "fallback or receive definition"}
}

// lowerCallable is the single traversal behind all five function-like
// declaration forms. The builder enforces the set-once fields; the dispatch
// table enforces the recognized tag set.
func (l *Lowerer) lowerCallable(kind ast.CallableKind, node cst.Node) (ast.Callable, error) {
	builder := ast.NewCallableBuilder(kind, node)
	context := kind.String() + " definition"

	handlers := map[string]handler{
		"identifier": func(n cst.Node) error {
			name, err := l.Expressions.ResolveIdentifier(n)
			if err != nil {
				return err
			}
			return builder.SetName(name)
		},
		"parameter": func(n cst.Node) error {
			p, err := l.Variables.ResolveParameter(n)
			if err != nil {
				return err
			}
			builder.AddParameter(p)
			return nil
		},
		"modifier_invocation": func(n cst.Node) error {
			invocation, err := l.lowerModifierInvocation(n)
			if err != nil {
				return err
			}
			builder.AddModifierInvocation(invocation)
			return nil
		},
		"visibility": func(n cst.Node) error {
			v, ok := visibilityFromText(n.Text())
			if !ok {
				return &UnrecognizedNodeError{Tag: n.Text(), Context: context + " visibility"}
			}
			return builder.SetVisibility(v)
		},
		"state_mutability": func(n cst.Node) error {
			m, ok := mutabilityFromText(n.Text())
			if !ok {
				return &UnrecognizedNodeError{Tag: n.Text(), Context: context + " mutability"}
			}
			return builder.SetMutability(m)
		},
		"virtual": func(cst.Node) error {
			builder.MarkVirtual()
			return nil
		},
		"override_specifier": func(n cst.Node) error {
			o, err := l.lowerOverrideSpecifier(n)
			if err != nil {
				return err
			}
			return builder.SetOverride(o)
		},
		"return_type_definition": func(n cst.Node) error {
			for _, kid := range n.Children() {
				switch kid.Kind() {
				case "returns", "(", ")", ",", "comment":
				case "parameter":
					p, err := l.Variables.ResolveParameter(kid)
					if err != nil {
						return err
					}
					builder.AddReturn(p)
				default:
					return &UnrecognizedNodeError{Tag: kid.Kind(), Context: "return type definition"}
				}
			}
			return nil
		},
		"function_body": func(n cst.Node) error {
			body, err := l.Statements.ResolveBody(n)
			if err != nil {
				return err
			}
			return builder.SetBody(body)
		},
	}

	if kind == ast.CallableConstructor {
		// Legacy grammar: the constructor's payable/internal/public appear
		// as bare keyword tokens rather than visibility/mutability nodes.
		handlers["payable"] = func(cst.Node) error {
			return builder.SetMutability(ast.MutabilityPayable)
		}
		handlers["internal"] = func(cst.Node) error {
			return builder.SetVisibility(ast.VisibilityInternal)
		}
		handlers["public"] = func(cst.Node) error {
			return builder.SetVisibility(ast.VisibilityPublic)
		}
	}

	table := dispatchTable{
		context:  context,
		handlers: handlers,
		ignore:   ignoreSet("function", "constructor", "modifier", "fallback", "receive", "(", ")", ",", ";"),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	return builder.Build()
}

// lowerModifierInvocation records the callee and its arguments in source
// order.
func (l *Lowerer) lowerModifierInvocation(node cst.Node) (ast.ModifierInvocation, error) {
	var callee *ast.Identifier
	var arguments []ast.Expression
	for _, child := range node.Children() {
		switch child.Kind() {
		case "(", ")", ",", "comment":
		case "identifier":
			if callee != nil {
				return ast.ModifierInvocation{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "modifier invocation"}
			}
			id, err := l.Expressions.ResolveIdentifier(child)
			if err != nil {
				return ast.ModifierInvocation{}, err
			}
			callee = &id
		case "call_argument":
			expr, err := l.Expressions.ResolveExpression(child)
			if err != nil {
				return ast.ModifierInvocation{}, err
			}
			arguments = append(arguments, expr)
		default:
			return ast.ModifierInvocation{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "modifier invocation"}
		}
	}
	if callee == nil {
		return ast.ModifierInvocation{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "modifier invocation missing callee"}
	}
	return ast.NewModifierInvocation(node, *callee, arguments), nil
}

// lowerOverrideSpecifier lowers `override` or `override(Base1, Base2)`; a
// bare override yields an empty base list.
func (l *Lowerer) lowerOverrideSpecifier(node cst.Node) (ast.OverrideSpecifier, error) {
	var bases []ast.TypeName
	for _, child := range node.Children() {
		switch child.Kind() {
		case "override", "(", ")", ",", "comment":
		case "user_defined_type":
			base, err := l.Types.ResolveUserDefinedType(child)
			if err != nil {
				return ast.OverrideSpecifier{}, err
			}
			bases = append(bases, base)
		default:
			return ast.OverrideSpecifier{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "override specifier"}
		}
	}
	return ast.NewOverrideSpecifier(node, bases), nil
}
