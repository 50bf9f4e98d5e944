package lowering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// Tree builders for the grammar shapes exercised below.

func pragmaSolidity(constraint string) cst.Node {
	token := cst.NewNode("solidity_pragma_token",
		cst.NewLeaf("solidity", "solidity"),
		cst.NewLeaf("solidity_version", constraint),
	)
	token.NodeText = "solidity " + constraint
	return cst.NewNode("pragma_directive",
		cst.NewToken("pragma"),
		token,
		cst.NewToken(";"),
	)
}

func pragmaAny(name, value string) cst.Node {
	return cst.NewNode("pragma_directive",
		cst.NewToken("pragma"),
		cst.NewNode("any_pragma_token",
			cst.NewLeaf("identifier", name),
			cst.NewLeaf("pragma_value", value),
		),
		cst.NewToken(";"),
	)
}

func sourceImport(path string) cst.Node {
	return cst.NewNode("import_directive",
		cst.NewToken("import"),
		cst.NewNode("source_import", cst.NewLeaf("string", `"`+path+`"`)),
		cst.NewToken(";"),
	)
}

func typeName(text string) cst.Node {
	return cst.NewLeaf("type_name", text)
}

func identifier(name string) cst.Node {
	return cst.NewLeaf("identifier", name)
}

func parameter(kids ...cst.Node) cst.Node {
	return cst.NewNode("parameter", kids...)
}

func functionBody() cst.Node {
	return cst.NewLeaf("function_body", "{ }")
}

func TestLowerSourceUnitBuckets(t *testing.T) {
	root := cst.NewNode("source_file",
		pragmaSolidity("0.8.19"),
		sourceImport("./lib/SafeTransfer.sol"),
		cst.NewNode("contract_declaration",
			cst.NewToken("contract"),
			identifier("Vault"),
			cst.NewNode("contract_body", cst.NewToken("{"), cst.NewToken("}")),
		),
		cst.NewNode("interface_declaration",
			cst.NewToken("interface"),
			identifier("IVault"),
			cst.NewNode("contract_body", cst.NewToken("{"), cst.NewToken("}")),
		),
		cst.NewNode("library_declaration",
			cst.NewToken("library"),
			identifier("VaultMath"),
			cst.NewNode("contract_body", cst.NewToken("{"), cst.NewToken("}")),
		),
		cst.NewNode("function_definition",
			cst.NewToken("function"),
			identifier("freeHelper"),
			cst.NewToken("("), cst.NewToken(")"),
			functionBody(),
		),
		cst.NewNode("constant_variable_declaration",
			typeName("uint256"),
			cst.NewToken("constant"),
			identifier("MAX_FEE"),
			cst.NewToken("="),
			cst.NewLeaf("number_literal", "500"),
			cst.NewToken(";"),
		),
		cst.NewNode("struct_declaration",
			cst.NewToken("struct"),
			identifier("Position"),
			cst.NewToken("{"),
			cst.NewNode("struct_member", typeName("uint256"), identifier("size"), cst.NewToken(";")),
			cst.NewToken("}"),
		),
		cst.NewNode("enum_declaration",
			cst.NewToken("enum"),
			identifier("Phase"),
			cst.NewToken("{"),
			cst.NewLeaf("enum_value", "Open"),
			cst.NewToken(","),
			cst.NewLeaf("enum_value", "Closed"),
			cst.NewToken("}"),
		),
		cst.NewNode("error_declaration",
			cst.NewToken("error"),
			identifier("Unauthorized"),
			cst.NewToken("("), cst.NewToken(")"), cst.NewToken(";"),
		),
		cst.NewNode("user_defined_type_definition",
			cst.NewToken("type"),
			identifier("Wad"),
			cst.NewToken("is"),
			cst.NewLeaf("primitive_type", "uint256"),
			cst.NewToken(";"),
		),
	)

	unit, err := New().LowerSourceUnit(root, "vault.sol")
	require.NoError(t, err)

	assert.Equal(t, "vault.sol", unit.FileName())
	assert.Len(t, unit.Pragmas(), 1)
	assert.Len(t, unit.Imports(), 1)
	assert.Len(t, unit.Contracts(), 1)
	assert.Len(t, unit.Interfaces(), 1)
	assert.Len(t, unit.Libraries(), 1)
	assert.Len(t, unit.ContractLikes(), 3)
	assert.Len(t, unit.Functions(), 1)
	assert.Len(t, unit.Constants(), 1)
	assert.Len(t, unit.Structs(), 1)
	assert.Len(t, unit.Enums(), 1)
	assert.Len(t, unit.CustomErrors(), 1)
	assert.Len(t, unit.TypeDefinitions(), 1)

	constant := unit.Constants()[0]
	assert.Equal(t, "MAX_FEE", constant.Name().Name())
	assert.Equal(t, "500", constant.Value().Text())

	typeDef := unit.TypeDefinitions()[0]
	assert.Equal(t, "Wad", typeDef.Name().Name())
	assert.Equal(t, "uint256", typeDef.Underlying().Text())
}

func TestLowerSourceUnitRejectsNonSourceFile(t *testing.T) {
	_, err := New().LowerSourceUnit(cst.NewNode("contract_declaration"), "x.sol")
	var unrec *UnrecognizedNodeError
	require.ErrorAs(t, err, &unrec)
	assert.Equal(t, "contract_declaration", unrec.Tag)
}

func TestLowerSourceUnitSkipsParserErrorNodes(t *testing.T) {
	root := cst.NewNode("source_file",
		cst.NewLeaf("ERROR", "garbage tokens"),
		pragmaSolidity("0.8.0"),
	)
	unit, err := New().LowerSourceUnit(root, "broken.sol")
	require.NoError(t, err)
	assert.Len(t, unit.Pragmas(), 1)
}

func TestUnknownTagFailsClosed(t *testing.T) {
	root := cst.NewNode("source_file",
		cst.NewNode("assembly_block"),
	)
	_, err := New().LowerSourceUnit(root, "x.sol")
	var unrec *UnrecognizedNodeError
	require.ErrorAs(t, err, &unrec)
	assert.Equal(t, "assembly_block", unrec.Tag)
	assert.Equal(t, "source unit", unrec.Context)
}

func TestErrorNodeInsideContractBodyFailsClosed(t *testing.T) {
	root := cst.NewNode("source_file",
		cst.NewNode("contract_declaration",
			cst.NewToken("contract"),
			identifier("C"),
			cst.NewNode("contract_body",
				cst.NewToken("{"),
				cst.NewLeaf("ERROR", "bad"),
				cst.NewToken("}"),
			),
		),
	)
	_, err := New().LowerSourceUnit(root, "x.sol")
	var unrec *UnrecognizedNodeError
	require.ErrorAs(t, err, &unrec)
	assert.Equal(t, "ERROR", unrec.Tag)
}

func TestLowerPragmaForms(t *testing.T) {
	l := New()

	pragma, err := l.lowerPragma(pragmaSolidity("^0.8.19"))
	require.NoError(t, err)
	assert.Equal(t, "solidity", pragma.Name().Name())
	assert.Equal(t, "^0.8.19", pragma.Value())

	// A multi-constraint range keeps the spacing between constraints even
	// though the grammar splits it into operator and version tokens.
	token := cst.NewNode("solidity_pragma_token",
		cst.NewLeaf("solidity", "solidity"),
		cst.NewLeaf("solidity_version_comparison_operator", ">="),
		cst.NewLeaf("solidity_version", "0.8.0"),
		cst.NewLeaf("solidity_version_comparison_operator", "<"),
		cst.NewLeaf("solidity_version", "0.9.0"),
	)
	token.NodeText = "solidity >=0.8.0 <0.9.0"
	pragma, err = l.lowerPragma(cst.NewNode("pragma_directive",
		cst.NewToken("pragma"),
		token,
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	assert.Equal(t, ">=0.8.0 <0.9.0", pragma.Value())

	pragma, err = l.lowerPragma(pragmaAny("abicoder", "v2"))
	require.NoError(t, err)
	assert.Equal(t, "abicoder", pragma.Name().Name())
	assert.Equal(t, "v2", pragma.Value())
}

func TestLowerImportForms(t *testing.T) {
	l := New()

	// import "./A.sol";
	imp, err := l.lowerImport(sourceImport("./A.sol"))
	require.NoError(t, err)
	assert.Equal(t, "./A.sol", imp.Path())
	assert.Nil(t, imp.Alias())
	assert.Empty(t, imp.Imported())

	// import "./A.sol" as A;
	imp, err = l.lowerImport(cst.NewNode("import_directive",
		cst.NewToken("import"),
		cst.NewNode("source_import",
			cst.NewLeaf("string", `"./A.sol"`),
			cst.NewToken("as"),
			identifier("A"),
		),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	require.NotNil(t, imp.Alias())
	assert.Equal(t, "A", imp.Alias().Name())

	// import * as Everything from "./A.sol";
	imp, err = l.lowerImport(cst.NewNode("import_directive",
		cst.NewToken("import"),
		cst.NewNode("single_import",
			cst.NewToken("*"),
			cst.NewToken("as"),
			identifier("Everything"),
		),
		cst.NewNode("from_clause",
			cst.NewToken("from"),
			cst.NewLeaf("string", `"./A.sol"`),
		),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	assert.Equal(t, "./A.sol", imp.Path())
	require.NotNil(t, imp.Alias())
	assert.Equal(t, "Everything", imp.Alias().Name())

	// import {A, B as C} from "./A.sol";
	imp, err = l.lowerImport(cst.NewNode("import_directive",
		cst.NewToken("import"),
		cst.NewNode("multiple_import",
			cst.NewToken("{"),
			cst.NewNode("import_declaration", identifier("A")),
			cst.NewToken(","),
			cst.NewNode("import_declaration", identifier("B"), cst.NewToken("as"), identifier("C")),
			cst.NewToken("}"),
		),
		cst.NewNode("from_clause",
			cst.NewToken("from"),
			cst.NewLeaf("string", `"./A.sol"`),
		),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	require.Len(t, imp.Imported(), 2)
	assert.Equal(t, "A", imp.Imported()[0].Name())
	assert.Equal(t, "B", imp.Imported()[1].Name())
	renamed, ok := imp.Renaming()["B"]
	require.True(t, ok)
	assert.Equal(t, "C", renamed.Name())
	_, ok = imp.Renaming()["A"]
	assert.False(t, ok)
}

func TestImportWithoutPathIsMalformed(t *testing.T) {
	_, err := New().lowerImport(cst.NewNode("import_directive",
		cst.NewToken("import"),
		cst.NewNode("single_import", identifier("A")),
		cst.NewToken(";"),
	))
	var malformed *MalformedDirectiveError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "import", malformed.Directive)
}

func inheritance(kids ...cst.Node) cst.Node {
	all := append([]cst.Node{cst.NewLeaf("user_defined_type", "Base")}, kids...)
	return cst.NewNode("inheritance_specifier", all...)
}

func TestInheritanceWithoutArguments(t *testing.T) {
	spec, err := New().lowerInheritanceSpecifier(inheritance())
	require.NoError(t, err)
	assert.Equal(t, "Base", spec.Ancestor().Text())
	assert.Nil(t, spec.Arguments())
}

func TestInheritanceWithEmptyArgumentList(t *testing.T) {
	spec, err := New().lowerInheritanceSpecifier(inheritance(
		cst.NewToken("("), cst.NewToken(")"),
	))
	require.NoError(t, err)
	require.NotNil(t, spec.Arguments())
	positional, ok := spec.Arguments().(ast.PositionalArguments)
	require.True(t, ok)
	assert.Empty(t, positional)
}

func TestInheritanceWithPositionalArguments(t *testing.T) {
	spec, err := New().lowerInheritanceSpecifier(inheritance(
		cst.NewToken("("),
		cst.NewNode("call_argument", cst.NewLeaf("number_literal", "7")),
		cst.NewToken(","),
		cst.NewNode("call_argument", cst.NewLeaf("string", `"name"`)),
		cst.NewToken(")"),
	))
	require.NoError(t, err)
	positional, ok := spec.Arguments().(ast.PositionalArguments)
	require.True(t, ok)
	require.Len(t, positional, 2)
	assert.Equal(t, "7", positional[0].Text())
}

func TestInheritanceWithNamedArguments(t *testing.T) {
	spec, err := New().lowerInheritanceSpecifier(inheritance(
		cst.NewToken("("),
		cst.NewNode("call_argument",
			cst.NewToken("{"),
			identifier("cap"),
			cst.NewToken(":"),
			cst.NewLeaf("number_literal", "100"),
			cst.NewToken("}"),
		),
		cst.NewToken(")"),
	))
	require.NoError(t, err)
	named, ok := spec.Arguments().(ast.NamedArguments)
	require.True(t, ok)
	require.Len(t, named, 1)
	assert.Equal(t, "cap", named[0].Field.Name())
	assert.Equal(t, "100", named[0].Value.Text())
}

func TestInheritanceMixedArgumentFormsRejected(t *testing.T) {
	_, err := New().lowerInheritanceSpecifier(inheritance(
		cst.NewToken("("),
		cst.NewNode("call_argument", cst.NewLeaf("number_literal", "1")),
		cst.NewToken(","),
		cst.NewNode("call_argument",
			cst.NewToken("{"),
			identifier("cap"),
			cst.NewToken(":"),
			cst.NewLeaf("number_literal", "2"),
			cst.NewToken("}"),
		),
		cst.NewToken(")"),
	))
	var violation *ast.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "arguments", violation.Field)
}

func TestLowerFunctionFull(t *testing.T) {
	fn, err := New().lowerFunctionDefinition(cst.NewNode("function_definition",
		cst.NewToken("function"),
		identifier("withdraw"),
		cst.NewToken("("),
		parameter(typeName("uint256"), identifier("amount")),
		cst.NewToken(","),
		parameter(typeName("address"), cst.NewLeaf("memory", "memory"), identifier("to")),
		cst.NewToken(")"),
		cst.NewLeaf("visibility", "external"),
		cst.NewLeaf("state_mutability", "payable"),
		cst.NewLeaf("virtual", "virtual"),
		cst.NewNode("override_specifier",
			cst.NewToken("override"),
			cst.NewToken("("),
			cst.NewLeaf("user_defined_type", "Base"),
			cst.NewToken(")"),
		),
		cst.NewNode("modifier_invocation",
			identifier("nonReentrant"),
		),
		cst.NewNode("return_type_definition",
			cst.NewToken("returns"),
			cst.NewToken("("),
			parameter(typeName("bool")),
			cst.NewToken(")"),
		),
		functionBody(),
	))
	require.NoError(t, err)

	assert.Equal(t, "withdraw", fn.Name().Name())
	assert.Equal(t, ast.VisibilityExternal, fn.Visibility())
	assert.Equal(t, ast.MutabilityPayable, fn.Mutability())
	assert.True(t, fn.IsVirtual())
	require.NotNil(t, fn.Override())
	require.Len(t, fn.Override().Overrides(), 1)
	assert.Equal(t, "Base", fn.Override().Overrides()[0].Text())
	require.Len(t, fn.Parameters(), 2)
	assert.Equal(t, "amount", fn.Parameters()[0].Name().Name())
	assert.Equal(t, "memory", fn.Parameters()[1].Location())
	require.Len(t, fn.ModifierInvocations(), 1)
	assert.Equal(t, "nonReentrant", fn.ModifierInvocations()[0].Callee().Name())
	require.Len(t, fn.Returns(), 1)
	assert.Nil(t, fn.Returns()[0].Name())
	assert.NotNil(t, fn.Body())
}

func TestFunctionDefaultsToNonpayable(t *testing.T) {
	fn, err := New().lowerFunctionDefinition(cst.NewNode("function_definition",
		cst.NewToken("function"),
		identifier("poke"),
		cst.NewToken("("), cst.NewToken(")"),
		functionBody(),
	))
	require.NoError(t, err)
	assert.Equal(t, ast.MutabilityNonpayable, fn.Mutability())
	assert.Equal(t, ast.VisibilityUnspecified, fn.Visibility())
}

func TestDuplicateVisibilityRejected(t *testing.T) {
	_, err := New().lowerFunctionDefinition(cst.NewNode("function_definition",
		cst.NewToken("function"),
		identifier("poke"),
		cst.NewToken("("), cst.NewToken(")"),
		cst.NewLeaf("visibility", "public"),
		cst.NewLeaf("visibility", "external"),
		functionBody(),
	))
	var violation *ast.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "visibility", violation.Field)
}

func TestConstructorBareKeywordsAndDefaults(t *testing.T) {
	l := New()

	ctor, err := l.lowerConstructorDefinition(cst.NewNode("constructor_definition",
		cst.NewToken("constructor"),
		cst.NewToken("("), cst.NewToken(")"),
		cst.NewToken("payable"),
		functionBody(),
	))
	require.NoError(t, err)
	assert.Equal(t, ast.MutabilityPayable, ctor.Mutability())
	assert.Equal(t, ast.VisibilityPublic, ctor.Visibility())

	ctor, err = l.lowerConstructorDefinition(cst.NewNode("constructor_definition",
		cst.NewToken("constructor"),
		cst.NewToken("("), cst.NewToken(")"),
		cst.NewToken("internal"),
		functionBody(),
	))
	require.NoError(t, err)
	assert.Equal(t, ast.VisibilityInternal, ctor.Visibility())
}

func TestFallbackReceiveSelection(t *testing.T) {
	l := New()

	callable, err := l.lowerFallbackReceive(cst.NewNode("fallback_receive_definition",
		cst.NewToken("receive"),
		cst.NewToken("("), cst.NewToken(")"),
		cst.NewLeaf("visibility", "external"),
		cst.NewLeaf("state_mutability", "payable"),
		functionBody(),
	))
	require.NoError(t, err)
	receive, ok := callable.(*ast.ReceiveFunction)
	require.True(t, ok)
	assert.Equal(t, ast.CallableReceive, receive.CallableKind())

	callable, err = l.lowerFallbackReceive(cst.NewNode("fallback_receive_definition",
		cst.NewToken("fallback"),
		cst.NewToken("("), cst.NewToken(")"),
		functionBody(),
	))
	require.NoError(t, err)
	fallback, ok := callable.(*ast.FallbackFunction)
	require.True(t, ok)
	assert.Equal(t, ast.VisibilityExternal, fallback.Visibility())
}

func TestDuplicateConstructorRejected(t *testing.T) {
	ctor := cst.NewNode("constructor_definition",
		cst.NewToken("constructor"),
		cst.NewToken("("), cst.NewToken(")"),
		functionBody(),
	)
	root := cst.NewNode("source_file",
		cst.NewNode("contract_declaration",
			cst.NewToken("contract"),
			identifier("C"),
			cst.NewNode("contract_body",
				cst.NewToken("{"), ctor, ctor, cst.NewToken("}"),
			),
		),
	)
	_, err := New().LowerSourceUnit(root, "c.sol")
	var violation *ast.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "constructor", violation.Field)
}

func TestLowerContractMembers(t *testing.T) {
	root := cst.NewNode("source_file",
		cst.NewNode("contract_declaration",
			cst.NewLeaf("abstract", "abstract"),
			cst.NewToken("contract"),
			identifier("Vault"),
			cst.NewToken("is"),
			inheritance(),
			cst.NewNode("contract_body",
				cst.NewToken("{"),
				cst.NewNode("using_directive",
					cst.NewToken("using"),
					cst.NewLeaf("user_defined_type", "SafeTransfer"),
					cst.NewToken("for"),
					typeName("address"),
					cst.NewToken(";"),
				),
				cst.NewNode("state_variable_declaration",
					typeName("uint256"),
					cst.NewLeaf("visibility", "private"),
					identifier("totalShares"),
					cst.NewToken("="),
					cst.NewLeaf("number_literal", "0"),
					cst.NewToken(";"),
				),
				cst.NewNode("event_definition",
					cst.NewToken("event"),
					identifier("Deposit"),
					cst.NewToken("("),
					cst.NewNode("event_parameter",
						typeName("address"),
						cst.NewLeaf("indexed", "indexed"),
						identifier("sender"),
					),
					cst.NewToken(")"),
					cst.NewToken(";"),
				),
				cst.NewNode("modifier_definition",
					cst.NewToken("modifier"),
					identifier("onlyOwner"),
					functionBody(),
				),
				cst.NewNode("error_declaration",
					cst.NewToken("error"),
					identifier("InsufficientShares"),
					cst.NewToken("("),
					cst.NewNode("error_parameter", typeName("uint256"), identifier("wanted")),
					cst.NewToken(")"),
					cst.NewToken(";"),
				),
				cst.NewToken("}"),
			),
		),
	)

	unit, err := New().LowerSourceUnit(root, "vault.sol")
	require.NoError(t, err)
	require.Len(t, unit.Contracts(), 1)
	contract := unit.Contracts()[0]

	assert.True(t, contract.IsAbstract())
	assert.Equal(t, "Vault", contract.Name().Name())
	require.Len(t, contract.InheritanceSpecifiers(), 1)

	require.Len(t, contract.UsingDirectives(), 1)
	using := contract.UsingDirectives()[0]
	require.Len(t, using.Libraries(), 1)
	assert.Equal(t, "SafeTransfer", using.Libraries()[0].Text())
	require.NotNil(t, using.BoundType())
	assert.Equal(t, "address", using.BoundType().Text())
	assert.False(t, using.IsWildcard())

	require.Len(t, contract.StateVariables(), 1)
	variable := contract.StateVariables()[0]
	assert.Equal(t, "totalShares", variable.Name().Name())
	assert.Equal(t, ast.VisibilityPrivate, variable.Visibility())
	require.NotNil(t, variable.Value())
	assert.Equal(t, "0", variable.Value().Text())

	require.Len(t, contract.Events(), 1)
	event := contract.Events()[0]
	assert.False(t, event.IsAnonymous())
	require.Len(t, event.Parameters(), 1)
	assert.True(t, event.Parameters()[0].IsIndexed())

	require.Len(t, contract.Modifiers(), 1)
	modifier := contract.Modifiers()[0]
	assert.Equal(t, "onlyOwner", modifier.Name().Name())
	assert.Equal(t, ast.VisibilityInternal, modifier.Visibility())

	require.Len(t, contract.CustomErrors(), 1)
	customError := contract.CustomErrors()[0]
	require.Len(t, customError.Parameters(), 1)
	require.NotNil(t, customError.Parameters()[0].Name())
	assert.Equal(t, "wanted", customError.Parameters()[0].Name().Name())
}

func TestAbstractInterfaceRejected(t *testing.T) {
	root := cst.NewNode("source_file",
		cst.NewNode("interface_declaration",
			cst.NewLeaf("abstract", "abstract"),
			cst.NewToken("interface"),
			identifier("IVault"),
			cst.NewNode("contract_body", cst.NewToken("{"), cst.NewToken("}")),
		),
	)
	_, err := New().LowerSourceUnit(root, "x.sol")
	var violation *ast.InvariantViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "abstract", violation.Field)
}

func TestUsingDirectiveWildcard(t *testing.T) {
	using, err := New().lowerUsing(cst.NewNode("using_directive",
		cst.NewToken("using"),
		cst.NewLeaf("user_defined_type", "SafeMath"),
		cst.NewToken("for"),
		cst.NewToken("*"),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	assert.True(t, using.IsWildcard())
	assert.Nil(t, using.BoundType())
}

func TestUsingDirectiveUnsupportedForms(t *testing.T) {
	l := New()

	_, err := l.lowerUsing(cst.NewNode("using_directive",
		cst.NewToken("using"),
		cst.NewToken("{"),
	))
	var unsupported *UnsupportedConstructError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "library function list", unsupported.Construct)

	_, err = l.lowerUsing(cst.NewNode("using_directive",
		cst.NewToken("using"),
		cst.NewLeaf("user_defined_type", "SafeMath"),
		cst.NewToken("for"),
		cst.NewToken("*"),
		cst.NewToken("global"),
	))
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "global binding", unsupported.Construct)
}

func TestStructEqualityIsStructural(t *testing.T) {
	member := func(typ, name string) cst.Node {
		return cst.NewNode("struct_member", typeName(typ), identifier(name), cst.NewToken(";"))
	}
	build := func(members ...cst.Node) *ast.Struct {
		kids := append([]cst.Node{
			cst.NewToken("struct"),
			identifier("Point"),
			cst.NewToken("{"),
		}, members...)
		kids = append(kids, cst.NewToken("}"))
		s, err := New().lowerStructDeclaration(cst.NewNode("struct_declaration", kids...))
		require.NoError(t, err)
		return s
	}

	a := build(member("uint256", "x"), member("uint256", "y"))
	b := build(member("uint256", "x"), member("uint256", "y"))
	reordered := build(member("uint256", "y"), member("uint256", "x"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered))
}

func TestLowerAnonymousEvent(t *testing.T) {
	event, err := New().lowerEventDefinition(cst.NewNode("event_definition",
		cst.NewToken("event"),
		identifier("Trace"),
		cst.NewToken("("), cst.NewToken(")"),
		cst.NewLeaf("anonymous", "anonymous"),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	assert.True(t, event.IsAnonymous())
	assert.Empty(t, event.Parameters())
}

func TestModifierInvocationArguments(t *testing.T) {
	invocation, err := New().lowerModifierInvocation(cst.NewNode("modifier_invocation",
		identifier("costs"),
		cst.NewToken("("),
		cst.NewNode("call_argument", cst.NewLeaf("number_literal", "1")),
		cst.NewToken(","),
		cst.NewNode("call_argument", cst.NewLeaf("number_literal", "2")),
		cst.NewToken(")"),
	))
	require.NoError(t, err)
	assert.Equal(t, "costs", invocation.Callee().Name())
	require.Len(t, invocation.Arguments(), 2)
	assert.Equal(t, "2", invocation.Arguments()[1].Text())
}

func TestVariableLowererStateVariableAndConstant(t *testing.T) {
	v := NewVariableLowerer()

	variable, err := v.ResolveStateVariable(cst.NewNode("state_variable_declaration",
		typeName("uint256"),
		cst.NewLeaf("visibility", "private"),
		identifier("totalShares"),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	require.NotNil(t, variable)
	assert.Equal(t, "totalShares", variable.Name().Name())
	assert.Equal(t, ast.VisibilityPrivate, variable.Visibility())
	assert.Nil(t, variable.Value())

	constant, err := v.ResolveConstant(cst.NewNode("constant_variable_declaration",
		typeName("uint256"),
		cst.NewToken("constant"),
		identifier("WAD"),
		cst.NewToken("="),
		cst.NewLeaf("number_literal", "1000000000000000000"),
		cst.NewToken(";"),
	))
	require.NoError(t, err)
	require.NotNil(t, constant)
	assert.Equal(t, "WAD", constant.Name().Name())
	assert.Equal(t, "1000000000000000000", constant.Value().Text())
}

func TestResolverInjection(t *testing.T) {
	l := New()
	l.Statements = failingStatements{}

	root := cst.NewNode("source_file",
		cst.NewNode("function_definition",
			cst.NewToken("function"),
			identifier("f"),
			cst.NewToken("("), cst.NewToken(")"),
			functionBody(),
		),
	)
	_, err := l.LowerSourceUnit(root, "x.sol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStubStatements))
}

var errStubStatements = errors.New("stub statements resolver")

type failingStatements struct{}

func (failingStatements) ResolveBody(cst.Node) (ast.Body, error) {
	return ast.Body{}, errStubStatements
}
