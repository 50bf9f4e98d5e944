package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

func nodeAt(kind string, line int) *cst.Raw {
	n := cst.NewNode(kind)
	n.Pos = cst.Position{Line: line, Column: 1}
	return n
}

func ident(name string) ast.Identifier {
	return ast.NewIdentifier(cst.NewLeaf("identifier", name), name)
}

func typeName(text string) ast.TypeName {
	return ast.NewTypeName(cst.NewLeaf("type_name", text), text)
}

func buildFunction(t *testing.T, name string, line int, configure func(*ast.CallableBuilder)) *ast.Function {
	t.Helper()
	b := ast.NewCallableBuilder(ast.CallableFunction, nodeAt("function_definition", line))
	require.NoError(t, b.SetName(ident(name)))
	if configure != nil {
		configure(b)
	}
	built, err := b.Build()
	require.NoError(t, err)
	return built.(*ast.Function)
}

func buildConstructor(t *testing.T, line int) *ast.Constructor {
	t.Helper()
	b := ast.NewCallableBuilder(ast.CallableConstructor, nodeAt("constructor_definition", line))
	require.NoError(t, b.SetBody(ast.NewBody(cst.NewLeaf("function_body", "{}"))))
	built, err := b.Build()
	require.NoError(t, err)
	return built.(*ast.Constructor)
}

func buildVaultUnit(t *testing.T) *ast.SourceUnit {
	t.Helper()

	cb := ast.NewContractBuilder(ast.KindContract, nodeAt("contract_declaration", 5))
	require.NoError(t, cb.SetName(ident("Vault")))
	require.NoError(t, cb.SetAbstract())

	instantiated := nodeAt("inheritance_specifier", 5)
	cb.AddInheritanceSpecifier(ast.NewInheritanceSpecifier(instantiated, typeName("Base"), ast.PositionalArguments{}))
	plain := nodeAt("inheritance_specifier", 5)
	cb.AddInheritanceSpecifier(ast.NewInheritanceSpecifier(plain, typeName("IVault"), nil))

	require.NoError(t, cb.SetConstructor(buildConstructor(t, 8)))

	cb.AddFunction(buildFunction(t, "deposit", 12, func(b *ast.CallableBuilder) {
		require.NoError(t, b.SetVisibility(ast.VisibilityExternal))
		require.NoError(t, b.SetMutability(ast.MutabilityPayable))
		b.AddParameter(ast.NewParameter(cst.NewNode("parameter"), typeName("uint256"), nil, ""))
		b.AddReturn(ast.NewParameter(cst.NewNode("parameter"), typeName("bool"), nil, ""))
		require.NoError(t, b.SetBody(ast.NewBody(cst.NewLeaf("function_body", "{}"))))
	}))

	mb := ast.NewCallableBuilder(ast.CallableModifier, nodeAt("modifier_definition", 10))
	require.NoError(t, mb.SetName(ident("onlyOwner")))
	require.NoError(t, mb.SetBody(ast.NewBody(cst.NewLeaf("function_body", "{}"))))
	modifier, err := mb.Build()
	require.NoError(t, err)
	cb.AddModifier(modifier.(*ast.Modifier))

	value := ast.NewExpression(cst.NewLeaf("number_literal", "0"), "0")
	stateVar := ast.NewStateVariable(nodeAt("state_variable_declaration", 6),
		typeName("uint256"), ident("totalShares"), ast.VisibilityPrivate, false, false, &value)
	cb.AddStateVariable(&stateVar)

	cb.AddEvent(ast.NewEvent(nodeAt("event_definition", 7), ident("Deposit"),
		[]ast.EventParameter{ast.NewEventParameter(cst.NewNode("event_parameter"), typeName("address"), nil, true)}, false))

	cb.AddCustomError(ast.NewCustomError(nodeAt("error_declaration", 9), ident("Unauthorized"), nil))

	bound := typeName("address")
	cb.AddUsingDirective(ast.NewUsingDirective(nodeAt("using_directive", 11),
		[]ast.TypeName{typeName("SafeTransfer"), typeName("SafeCast")}, &bound, false))

	contract, err := cb.Build()
	require.NoError(t, err)

	ub := ast.NewSourceUnitBuilder(cst.NewNode("source_file"), "contracts/Vault.sol")
	ub.AddPragma(ast.NewPragma(nodeAt("pragma_directive", 1), ident("solidity"), "^0.8.19"))

	ub.AddImport(ast.NewImport(nodeAt("import_directive", 2), "./IVault.sol", nil,
		[]ast.Identifier{ident("IVault"), ident("Base")},
		map[string]ast.Identifier{"Base": ident("B")}))
	alias := ident("OZ")
	ub.AddImport(ast.NewImport(nodeAt("import_directive", 3), "@openzeppelin/token/ERC20.sol", &alias, nil, nil))

	ub.AddContractLike(contract)
	ub.AddFunction(buildFunction(t, "freeHelper", 30, nil))
	constant := ast.NewConstant(nodeAt("constant_variable_declaration", 4),
		typeName("uint256"), ident("MAX_FEE"), ast.NewExpression(cst.NewLeaf("number_literal", "500"), "500"))
	ub.AddConstant(&constant)

	unit, err := ub.Build()
	require.NoError(t, err)
	return unit
}

func TestBuildTablesFlattensUnit(t *testing.T) {
	unit := buildVaultUnit(t)
	tables := BuildTables([]*ast.SourceUnit{unit}, map[string]bool{})

	require.Len(t, tables.Files, 1)
	assert.Equal(t, FileRow{Path: "contracts/Vault.sol", IsThirdParty: false}, tables.Files[0])

	require.Len(t, tables.Pragmas, 1)
	assert.Equal(t, PragmaRow{Name: "solidity", Value: "^0.8.19", File: "contracts/Vault.sol", Line: 1}, tables.Pragmas[0])

	// Two symbol rows for the braced import, one symbol-less row for the
	// aliased whole-file import.
	require.Len(t, tables.Imports, 3)
	assert.Equal(t, ImportRow{Path: "./IVault.sol", Symbol: "IVault", File: "contracts/Vault.sol", Line: 2}, tables.Imports[0])
	assert.Equal(t, ImportRow{Path: "./IVault.sol", Symbol: "Base", Alias: "B", File: "contracts/Vault.sol", Line: 2}, tables.Imports[1])
	assert.Equal(t, ImportRow{Path: "@openzeppelin/token/ERC20.sol", Alias: "OZ", File: "contracts/Vault.sol", Line: 3}, tables.Imports[2])

	require.Len(t, tables.Contracts, 1)
	assert.Equal(t, ContractRow{Name: "Vault", Kind: "contract", IsAbstract: true, File: "contracts/Vault.sol", Line: 5}, tables.Contracts[0])

	require.Len(t, tables.Inheritance, 2)
	assert.True(t, tables.Inheritance[0].Instantiated)
	assert.Equal(t, "Base", tables.Inheritance[0].Ancestor)
	assert.False(t, tables.Inheritance[1].Instantiated)

	// The free function, the member function and the constructor row.
	require.Len(t, tables.Functions, 3)
	var kinds []string
	for _, fn := range tables.Functions {
		kinds = append(kinds, fn.Kind)
	}
	assert.ElementsMatch(t, []string{"function", "function", "constructor"}, kinds)

	for _, fn := range tables.Functions {
		switch {
		case fn.Kind == "constructor":
			assert.Equal(t, "", fn.Name)
			assert.Equal(t, "Vault", fn.Contract)
			assert.Equal(t, "public", fn.Visibility)
			assert.True(t, fn.HasBody)
		case fn.Name == "deposit":
			assert.Equal(t, "Vault", fn.Contract)
			assert.Equal(t, "external", fn.Visibility)
			assert.Equal(t, "payable", fn.Mutability)
			assert.Equal(t, 1, fn.ParamCount)
			assert.Equal(t, 1, fn.ReturnCount)
			assert.Equal(t, 12, fn.Line)
		case fn.Name == "freeHelper":
			assert.Equal(t, "", fn.Contract)
			assert.Equal(t, "", fn.Visibility)
			assert.Equal(t, "nonpayable", fn.Mutability)
			assert.False(t, fn.HasBody)
		}
	}

	require.Len(t, tables.Modifiers, 1)
	assert.Equal(t, "onlyOwner", tables.Modifiers[0].Name)
	assert.True(t, tables.Modifiers[0].HasBody)

	require.Len(t, tables.StateVariables, 1)
	assert.Equal(t, StateVariableRow{
		Name: "totalShares", Type: "uint256", Contract: "Vault",
		Visibility: "private", HasValue: true,
		File: "contracts/Vault.sol", Line: 6,
	}, tables.StateVariables[0])

	require.Len(t, tables.Constants, 1)
	assert.Equal(t, ConstantRow{Name: "MAX_FEE", Type: "uint256", Value: "500", File: "contracts/Vault.sol", Line: 4}, tables.Constants[0])

	require.Len(t, tables.Events, 1)
	assert.Equal(t, 1, tables.Events[0].ParamCount)

	require.Len(t, tables.Errors, 1)
	assert.Equal(t, "Unauthorized", tables.Errors[0].Name)

	// One row per attached library.
	require.Len(t, tables.UsingDirectives, 2)
	assert.Equal(t, "SafeTransfer", tables.UsingDirectives[0].Library)
	assert.Equal(t, "SafeCast", tables.UsingDirectives[1].Library)
	assert.Equal(t, "address", tables.UsingDirectives[0].BoundType)
}

func TestBuildTablesMarksThirdParty(t *testing.T) {
	unit := buildVaultUnit(t)
	tables := BuildTables([]*ast.SourceUnit{unit}, map[string]bool{"contracts/Vault.sol": true})
	require.Len(t, tables.Files, 1)
	assert.True(t, tables.Files[0].IsThirdParty)
}

func TestBuildTablesSortsFiles(t *testing.T) {
	newUnit := func(file string) *ast.SourceUnit {
		b := ast.NewSourceUnitBuilder(cst.NewNode("source_file"), file)
		unit, err := b.Build()
		require.NoError(t, err)
		return unit
	}
	tables := BuildTables([]*ast.SourceUnit{newUnit("b.sol"), newUnit("a.sol")}, nil)
	require.Len(t, tables.Files, 2)
	assert.Equal(t, "a.sol", tables.Files[0].Path)
	assert.Equal(t, "b.sol", tables.Files[1].Path)
}

func TestComputeDelta(t *testing.T) {
	prev := emptyTables()
	prev.Contracts = []ContractRow{
		{Name: "Vault", Kind: "contract", File: "a.sol", Line: 5},
		{Name: "Gone", Kind: "library", File: "a.sol", Line: 40},
	}

	next := emptyTables()
	next.Contracts = []ContractRow{
		{Name: "Vault", Kind: "contract", File: "a.sol", Line: 5},
		{Name: "Fresh", Kind: "interface", File: "a.sol", Line: 50},
	}

	delta := ComputeDelta(prev, next)
	require.Len(t, delta.Added.Contracts, 1)
	assert.Equal(t, "Fresh", delta.Added.Contracts[0].Name)
	require.Len(t, delta.Removed.Contracts, 1)
	assert.Equal(t, "Gone", delta.Removed.Contracts[0].Name)
	assert.Empty(t, delta.Added.Functions)
}

func TestDeltaDetectsFieldChange(t *testing.T) {
	prev := emptyTables()
	prev.Functions = []FunctionRow{{Name: "f", Kind: "function", Mutability: "view", File: "a.sol", Line: 3}}
	next := emptyTables()
	next.Functions = []FunctionRow{{Name: "f", Kind: "function", Mutability: "pure", File: "a.sol", Line: 3}}

	delta := ComputeDelta(prev, next)
	require.Len(t, delta.Added.Functions, 1)
	require.Len(t, delta.Removed.Functions, 1)
	assert.Equal(t, "pure", delta.Added.Functions[0].Mutability)
	assert.Equal(t, "view", delta.Removed.Functions[0].Mutability)
}

func TestFilterTablesByFiles(t *testing.T) {
	tables := emptyTables()
	tables.Files = []FileRow{{Path: "a.sol"}, {Path: "b.sol"}}
	tables.Contracts = []ContractRow{
		{Name: "A", Kind: "contract", File: "a.sol", Line: 1},
		{Name: "B", Kind: "contract", File: "b.sol", Line: 1},
	}

	filtered := FilterTablesByFiles(tables, map[string]bool{"b.sol": true})
	require.Len(t, filtered.Files, 1)
	assert.Equal(t, "b.sol", filtered.Files[0].Path)
	require.Len(t, filtered.Contracts, 1)
	assert.Equal(t, "B", filtered.Contracts[0].Name)

	empty := FilterTablesByFiles(tables, nil)
	assert.Empty(t, empty.Files)
	assert.Empty(t, empty.Contracts)
}

func TestFilterDeltaByFiles(t *testing.T) {
	delta := Delta{Added: emptyTables(), Removed: emptyTables()}
	delta.Added.Pragmas = []PragmaRow{
		{Name: "solidity", Value: "^0.8.0", File: "a.sol", Line: 1},
		{Name: "solidity", Value: "^0.8.0", File: "b.sol", Line: 1},
	}
	filtered := FilterDeltaByFiles(delta, map[string]bool{"a.sol": true})
	require.Len(t, filtered.Added.Pragmas, 1)
	assert.Equal(t, "a.sol", filtered.Added.Pragmas[0].File)
}

func TestMergeCombinesFragmentsAndSortsFiles(t *testing.T) {
	first := emptyTables()
	first.Files = []FileRow{{Path: "z.sol"}}
	first.Contracts = []ContractRow{{Name: "Z", Kind: "contract", File: "z.sol", Line: 1}}

	second := emptyTables()
	second.Files = []FileRow{{Path: "a.sol"}}
	second.Contracts = []ContractRow{{Name: "A", Kind: "contract", File: "a.sol", Line: 1}}

	merged := Merge([]Tables{first, second})
	require.Len(t, merged.Files, 2)
	assert.Equal(t, "a.sol", merged.Files[0].Path)
	assert.Equal(t, "z.sol", merged.Files[1].Path)
	// Non-file relations keep input order.
	require.Len(t, merged.Contracts, 2)
	assert.Equal(t, "Z", merged.Contracts[0].Name)

	empty := Merge(nil)
	assert.NotNil(t, empty.Files)
	assert.Empty(t, empty.Files)
}
