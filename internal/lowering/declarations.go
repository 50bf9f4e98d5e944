package lowering

import (
	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// Lowerer drives declaration lowering for one or more source units. The four
// resolver fields default to the in-package implementations; a consuming
// analysis may substitute its own.
//
// Lowering is a pure, synchronous traversal: a Lowerer holds no per-unit
// state, so one instance may lower distinct files from distinct goroutines.
type Lowerer struct {
	Expressions ExpressionResolver
	Types       TypeResolver
	Variables   VariableResolver
	Statements  StatementResolver
}

// New builds a Lowerer on the default resolvers.
func New() *Lowerer {
	return &Lowerer{
		Expressions: ExpressionLowerer{},
		Types:       TypeLowerer{},
		Variables:   NewVariableLowerer(),
		Statements:  StatementLowerer{},
	}
}

// LowerSourceUnit lowers one parsed file into its AST root. Any error aborts
// the whole unit; no partial AST is returned.
//
// The grammar's own "ERROR" recovery nodes are the single silently skipped
// tag: they mark regions the parser already reported as invalid, and
// tolerating them lets the rest of the file lower normally.
func (l *Lowerer) LowerSourceUnit(node cst.Node, fileName string) (*ast.SourceUnit, error) {
	if node.Kind() != "source_file" {
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "source unit"}
	}
	builder := ast.NewSourceUnitBuilder(node, fileName)

	table := dispatchTable{
		context: "source unit",
		handlers: map[string]handler{
			"pragma_directive": func(n cst.Node) error {
				pragma, err := l.lowerPragma(n)
				if err != nil {
					return err
				}
				builder.AddPragma(pragma)
				return nil
			},
			"import_directive": func(n cst.Node) error {
				imported, err := l.lowerImport(n)
				if err != nil {
					return err
				}
				builder.AddImport(imported)
				return nil
			},
			"contract_declaration":  l.contractLikeHandler(builder),
			"interface_declaration": l.contractLikeHandler(builder),
			"library_declaration":   l.contractLikeHandler(builder),
			"error_declaration": func(n cst.Node) error {
				customError, err := l.lowerErrorDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddCustomError(customError)
				return nil
			},
			"struct_declaration": func(n cst.Node) error {
				structDecl, err := l.lowerStructDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddStruct(structDecl)
				return nil
			},
			"enum_declaration": func(n cst.Node) error {
				enum, err := l.lowerEnumDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddEnum(enum)
				return nil
			},
			"function_definition": func(n cst.Node) error {
				function, err := l.lowerFunctionDefinition(n)
				if err != nil {
					return err
				}
				builder.AddFunction(function)
				return nil
			},
			"constant_variable_declaration": func(n cst.Node) error {
				constant, err := l.Variables.ResolveConstant(n)
				if err != nil {
					return err
				}
				builder.AddConstant(constant)
				return nil
			},
			"user_defined_type_definition": func(n cst.Node) error {
				typeDef, err := l.lowerTypeDefinition(n)
				if err != nil {
					return err
				}
				builder.AddTypeDefinition(typeDef)
				return nil
			},
		},
		ignore: ignoreSet(),
		skip:   map[string]bool{"ERROR": true},
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	return builder.Build()
}

func (l *Lowerer) contractLikeHandler(builder *ast.SourceUnitBuilder) handler {
	return func(n cst.Node) error {
		contract, err := l.lowerContractLike(n)
		if err != nil {
			return err
		}
		builder.AddContractLike(contract)
		return nil
	}
}

// lowerContractLike is the shared traversal behind contract, interface and
// library declarations.
func (l *Lowerer) lowerContractLike(node cst.Node) (ast.ContractLike, error) {
	var kind ast.ContractKind
	switch node.Kind() {
	case "contract_declaration":
		kind = ast.KindContract
	case "interface_declaration":
		kind = ast.KindInterface
	case "library_declaration":
		kind = ast.KindLibrary
	default:
		return nil, &UnrecognizedNodeError{Tag: node.Kind(), Context: "contract-like declaration"}
	}

	builder := ast.NewContractBuilder(kind, node)
	table := dispatchTable{
		context: kind.String() + " declaration",
		handlers: map[string]handler{
			"abstract": func(cst.Node) error {
				return builder.SetAbstract()
			},
			"identifier": func(n cst.Node) error {
				name, err := l.Expressions.ResolveIdentifier(n)
				if err != nil {
					return err
				}
				return builder.SetName(name)
			},
			"inheritance_specifier": func(n cst.Node) error {
				specifier, err := l.lowerInheritanceSpecifier(n)
				if err != nil {
					return err
				}
				builder.AddInheritanceSpecifier(specifier)
				return nil
			},
			"contract_body": func(n cst.Node) error {
				return l.lowerContractBody(builder, n)
			},
		},
		ignore: ignoreSet("contract", "interface", "library", "is", ","),
	}
	if err := table.apply(node); err != nil {
		return nil, err
	}
	return builder.Build()
}

// lowerInheritanceSpecifier resolves one `is` clause entry. The first child
// is the ancestor type; the rest, if present, is a parenthesized
// call-argument list. A call_argument with a single nested expression is a
// positional argument; a brace-delimited call_argument is the struct-argument
// set, and the grammar permits at most one of those per specifier.
func (l *Lowerer) lowerInheritanceSpecifier(node cst.Node) (ast.InheritanceSpecifier, error) {
	children := node.Children()
	if len(children) == 0 {
		return ast.InheritanceSpecifier{}, &UnrecognizedNodeError{Tag: node.Kind(), Context: "inheritance specifier missing ancestor"}
	}
	ancestor, err := l.Types.ResolveUserDefinedType(children[0])
	if err != nil {
		return ast.InheritanceSpecifier{}, err
	}

	positional := ast.PositionalArguments{}
	var named ast.NamedArguments
	sawArgumentList := false
	for _, child := range children[1:] {
		switch child.Kind() {
		case "(":
			sawArgumentList = true
		case ")", ",", "comment":
		case "call_argument":
			sawArgumentList = true
			kids := child.Children()
			if len(kids) == 1 {
				expr, resolveErr := l.Expressions.ResolveExpression(child)
				if resolveErr != nil {
					return ast.InheritanceSpecifier{}, resolveErr
				}
				positional = append(positional, expr)
				continue
			}
			if named != nil {
				return ast.InheritanceSpecifier{}, &ast.InvariantViolationError{
					Entity: "inheritance specifier " + ancestor.Text(),
					Field:  "arguments",
					Reason: "more than one struct-argument set",
				}
			}
			fields, resolveErr := l.Expressions.ResolveStructArguments(child)
			if resolveErr != nil {
				return ast.InheritanceSpecifier{}, resolveErr
			}
			named = ast.NamedArguments(fields)
		default:
			return ast.InheritanceSpecifier{}, &UnrecognizedNodeError{Tag: child.Kind(), Context: "inheritance specifier call arguments"}
		}
	}

	var arguments ast.InheritanceArguments
	switch {
	case named != nil && len(positional) > 0:
		return ast.InheritanceSpecifier{}, &ast.InvariantViolationError{
			Entity: "inheritance specifier " + ancestor.Text(),
			Field:  "arguments",
			Reason: "mixes positional and struct-argument forms",
		}
	case named != nil:
		arguments = named
	case sawArgumentList:
		arguments = positional
	}
	return ast.NewInheritanceSpecifier(node, ancestor, arguments), nil
}

// lowerContractBody dispatches the twelve member categories of a contract
// body. The constructor, fallback and receive slots are singletons enforced
// by the builder.
func (l *Lowerer) lowerContractBody(builder *ast.ContractBuilder, node cst.Node) error {
	table := dispatchTable{
		context: "contract body",
		handlers: map[string]handler{
			"function_definition": func(n cst.Node) error {
				function, err := l.lowerFunctionDefinition(n)
				if err != nil {
					return err
				}
				builder.AddFunction(function)
				return nil
			},
			"modifier_definition": func(n cst.Node) error {
				modifier, err := l.lowerModifierDefinition(n)
				if err != nil {
					return err
				}
				builder.AddModifier(modifier)
				return nil
			},
			"error_declaration": func(n cst.Node) error {
				customError, err := l.lowerErrorDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddCustomError(customError)
				return nil
			},
			"state_variable_declaration": func(n cst.Node) error {
				variable, err := l.Variables.ResolveStateVariable(n)
				if err != nil {
					return err
				}
				builder.AddStateVariable(variable)
				return nil
			},
			"struct_declaration": func(n cst.Node) error {
				structDecl, err := l.lowerStructDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddStruct(structDecl)
				return nil
			},
			"enum_declaration": func(n cst.Node) error {
				enum, err := l.lowerEnumDeclaration(n)
				if err != nil {
					return err
				}
				builder.AddEnum(enum)
				return nil
			},
			"event_definition": func(n cst.Node) error {
				event, err := l.lowerEventDefinition(n)
				if err != nil {
					return err
				}
				builder.AddEvent(event)
				return nil
			},
			"using_directive": func(n cst.Node) error {
				using, err := l.lowerUsing(n)
				if err != nil {
					return err
				}
				builder.AddUsingDirective(using)
				return nil
			},
			"constructor_definition": func(n cst.Node) error {
				constructor, err := l.lowerConstructorDefinition(n)
				if err != nil {
					return err
				}
				return builder.SetConstructor(constructor)
			},
			"fallback_receive_definition": func(n cst.Node) error {
				callable, err := l.lowerFallbackReceive(n)
				if err != nil {
					return err
				}
				switch f := callable.(type) {
				case *ast.FallbackFunction:
					return builder.SetFallbackFunction(f)
				case *ast.ReceiveFunction:
					return builder.SetReceiveFunction(f)
				}
				return &UnrecognizedNodeError{Tag: n.Kind(), Context: "contract body"}
			},
			"user_defined_type_definition": func(n cst.Node) error {
				typeDef, err := l.lowerTypeDefinition(n)
				if err != nil {
					return err
				}
				builder.AddTypeDefinition(typeDef)
				return nil
			},
		},
		ignore: ignoreSet("{", "}"),
	}
	return table.apply(node)
}
