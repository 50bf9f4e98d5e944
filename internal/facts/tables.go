package facts

import (
	"sort"

	"github.com/giovannarevitoroz/regast/internal/ast"
)

// Tables is the relational fact model for downstream rule engines.
// Each slice is a relation (table) with flat rows.
type Tables struct {
	Files           []FileRow           `json:"files"`
	Pragmas         []PragmaRow         `json:"pragmas"`
	Imports         []ImportRow         `json:"imports"`
	Contracts       []ContractRow       `json:"contracts"`
	Inheritance     []InheritanceRow    `json:"inheritance"`
	Functions       []FunctionRow       `json:"functions"`
	Modifiers       []ModifierRow       `json:"modifiers"`
	StateVariables  []StateVariableRow  `json:"state_variables"`
	Constants       []ConstantRow       `json:"constants"`
	Structs         []StructRow         `json:"structs"`
	Enums           []EnumRow           `json:"enums"`
	Events          []EventRow          `json:"events"`
	Errors          []ErrorRow          `json:"errors"`
	UsingDirectives []UsingDirectiveRow `json:"using_directives"`
	TypeDefinitions []TypeDefinitionRow `json:"type_definitions"`
}

type FileRow struct {
	Path         string `json:"path"`
	IsThirdParty bool   `json:"is_third_party"`
}

type PragmaRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	File  string `json:"file"`
	Line  int    `json:"line"`
}

type ImportRow struct {
	Path   string `json:"path"`
	Symbol string `json:"symbol"`
	Alias  string `json:"alias"`
	File   string `json:"file"`
	Line   int    `json:"line"`
}

type ContractRow struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	IsAbstract bool   `json:"is_abstract"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type InheritanceRow struct {
	Contract     string `json:"contract"`
	Ancestor     string `json:"ancestor"`
	Instantiated bool   `json:"instantiated"`
	File         string `json:"file"`
	Line         int    `json:"line"`
}

type FunctionRow struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Contract    string `json:"contract"`
	Visibility  string `json:"visibility"`
	Mutability  string `json:"mutability"`
	IsVirtual   bool   `json:"is_virtual"`
	IsOverride  bool   `json:"is_override"`
	HasBody     bool   `json:"has_body"`
	ParamCount  int    `json:"param_count"`
	ReturnCount int    `json:"return_count"`
	File        string `json:"file"`
	Line        int    `json:"line"`
}

type ModifierRow struct {
	Name       string `json:"name"`
	Contract   string `json:"contract"`
	IsVirtual  bool   `json:"is_virtual"`
	IsOverride bool   `json:"is_override"`
	HasBody    bool   `json:"has_body"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type StateVariableRow struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Contract    string `json:"contract"`
	Visibility  string `json:"visibility"`
	IsConstant  bool   `json:"is_constant"`
	IsImmutable bool   `json:"is_immutable"`
	HasValue    bool   `json:"has_value"`
	File        string `json:"file"`
	Line        int    `json:"line"`
}

type ConstantRow struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	File  string `json:"file"`
	Line  int    `json:"line"`
}

type StructRow struct {
	Name        string `json:"name"`
	Contract    string `json:"contract"`
	MemberCount int    `json:"member_count"`
	File        string `json:"file"`
	Line        int    `json:"line"`
}

type EnumRow struct {
	Name       string `json:"name"`
	Contract   string `json:"contract"`
	ValueCount int    `json:"value_count"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type EventRow struct {
	Name        string `json:"name"`
	Contract    string `json:"contract"`
	IsAnonymous bool   `json:"is_anonymous"`
	ParamCount  int    `json:"param_count"`
	File        string `json:"file"`
	Line        int    `json:"line"`
}

type ErrorRow struct {
	Name       string `json:"name"`
	Contract   string `json:"contract"`
	ParamCount int    `json:"param_count"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type UsingDirectiveRow struct {
	Library    string `json:"library"`
	BoundType  string `json:"bound_type"`
	IsWildcard bool   `json:"is_wildcard"`
	Contract   string `json:"contract"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

type TypeDefinitionRow struct {
	Name       string `json:"name"`
	Underlying string `json:"underlying"`
	Contract   string `json:"contract"`
	File       string `json:"file"`
	Line       int    `json:"line"`
}

// BuildTables flattens lowered source units into the relational model.
// Free-standing declarations carry an empty contract column.
func BuildTables(units []*ast.SourceUnit, thirdParty map[string]bool) Tables {
	tables := emptyTables()

	seenFiles := make(map[string]bool)
	for _, unit := range units {
		file := unit.FileName()
		if !seenFiles[file] {
			seenFiles[file] = true
			tables.Files = append(tables.Files, FileRow{
				Path:         file,
				IsThirdParty: thirdParty[file],
			})
		}

		for _, p := range unit.Pragmas() {
			tables.Pragmas = append(tables.Pragmas, PragmaRow{
				Name:  p.Name().Name(),
				Value: p.Value(),
				File:  file,
				Line:  p.Position().Line,
			})
		}

		for _, imp := range unit.Imports() {
			tables.Imports = append(tables.Imports, importRows(imp, file)...)
		}

		for _, fn := range unit.Functions() {
			tables.Functions = append(tables.Functions, functionRow(fn, "", file))
		}
		for _, c := range unit.Constants() {
			tables.Constants = append(tables.Constants, ConstantRow{
				Name:  c.Name().Name(),
				Type:  c.TypeName().Text(),
				Value: c.Value().Text(),
				File:  file,
				Line:  c.Position().Line,
			})
		}
		for _, s := range unit.Structs() {
			tables.Structs = append(tables.Structs, structRow(s, "", file))
		}
		for _, e := range unit.Enums() {
			tables.Enums = append(tables.Enums, enumRow(e, "", file))
		}
		for _, e := range unit.CustomErrors() {
			tables.Errors = append(tables.Errors, errorRow(e, "", file))
		}
		for _, td := range unit.TypeDefinitions() {
			tables.TypeDefinitions = append(tables.TypeDefinitions, typeDefinitionRow(td, "", file))
		}

		for _, contract := range unit.ContractLikes() {
			appendContract(&tables, contract, file)
		}
	}

	sort.Slice(tables.Files, func(i, j int) bool { return tables.Files[i].Path < tables.Files[j].Path })

	return tables
}

func appendContract(tables *Tables, contract ast.ContractLike, file string) {
	name := contract.Name().Name()
	abstract := false
	if c, ok := contract.(*ast.Contract); ok {
		abstract = c.IsAbstract()
	}
	tables.Contracts = append(tables.Contracts, ContractRow{
		Name:       name,
		Kind:       contract.ContractKind().String(),
		IsAbstract: abstract,
		File:       file,
		Line:       contract.Position().Line,
	})

	for _, spec := range contract.InheritanceSpecifiers() {
		tables.Inheritance = append(tables.Inheritance, InheritanceRow{
			Contract:     name,
			Ancestor:     spec.Ancestor().Text(),
			Instantiated: spec.Arguments() != nil,
			File:         file,
			Line:         spec.Position().Line,
		})
	}

	for _, fn := range contract.Functions() {
		tables.Functions = append(tables.Functions, functionRow(fn, name, file))
	}
	if ctor := contract.Constructor(); ctor != nil {
		tables.Functions = append(tables.Functions, callableRow(ctor, name, file))
	}
	if fb := contract.FallbackFunction(); fb != nil {
		tables.Functions = append(tables.Functions, callableRow(fb, name, file))
	}
	if rcv := contract.ReceiveFunction(); rcv != nil {
		tables.Functions = append(tables.Functions, callableRow(rcv, name, file))
	}

	for _, m := range contract.Modifiers() {
		tables.Modifiers = append(tables.Modifiers, ModifierRow{
			Name:       m.Name().Name(),
			Contract:   name,
			IsVirtual:  m.IsVirtual(),
			IsOverride: m.Override() != nil,
			HasBody:    m.Body() != nil,
			File:       file,
			Line:       m.Position().Line,
		})
	}

	for _, v := range contract.StateVariables() {
		tables.StateVariables = append(tables.StateVariables, StateVariableRow{
			Name:        v.Name().Name(),
			Type:        v.TypeName().Text(),
			Contract:    name,
			Visibility:  v.Visibility().String(),
			IsConstant:  v.IsConstant(),
			IsImmutable: v.IsImmutable(),
			HasValue:    v.Value() != nil,
			File:        file,
			Line:        v.Position().Line,
		})
	}

	for _, s := range contract.Structs() {
		tables.Structs = append(tables.Structs, structRow(s, name, file))
	}
	for _, e := range contract.Enums() {
		tables.Enums = append(tables.Enums, enumRow(e, name, file))
	}
	for _, ev := range contract.Events() {
		tables.Events = append(tables.Events, EventRow{
			Name:        ev.Name().Name(),
			Contract:    name,
			IsAnonymous: ev.IsAnonymous(),
			ParamCount:  len(ev.Parameters()),
			File:        file,
			Line:        ev.Position().Line,
		})
	}
	for _, e := range contract.CustomErrors() {
		tables.Errors = append(tables.Errors, errorRow(e, name, file))
	}
	for _, u := range contract.UsingDirectives() {
		tables.UsingDirectives = append(tables.UsingDirectives, usingRows(u, name, file)...)
	}
	for _, td := range contract.TypeDefinitions() {
		tables.TypeDefinitions = append(tables.TypeDefinitions, typeDefinitionRow(td, name, file))
	}
}

func functionRow(fn *ast.Function, contract, file string) FunctionRow {
	row := callableRow(fn, contract, file)
	row.Name = fn.Name().Name()
	return row
}

func callableRow(c ast.Callable, contract, file string) FunctionRow {
	return FunctionRow{
		Name:        "",
		Kind:        c.CallableKind().String(),
		Contract:    contract,
		Visibility:  c.Visibility().String(),
		Mutability:  c.Mutability().String(),
		IsVirtual:   c.IsVirtual(),
		IsOverride:  c.Override() != nil,
		HasBody:     c.Body() != nil,
		ParamCount:  len(c.Parameters()),
		ReturnCount: len(c.Returns()),
		File:        file,
		Line:        c.Position().Line,
	}
}

func structRow(s *ast.Struct, contract, file string) StructRow {
	return StructRow{
		Name:        s.Name().Name(),
		Contract:    contract,
		MemberCount: len(s.Members()),
		File:        file,
		Line:        s.Position().Line,
	}
}

func enumRow(e *ast.Enum, contract, file string) EnumRow {
	return EnumRow{
		Name:       e.Name().Name(),
		Contract:   contract,
		ValueCount: len(e.Values()),
		File:       file,
		Line:       e.Position().Line,
	}
}

func errorRow(e *ast.CustomError, contract, file string) ErrorRow {
	return ErrorRow{
		Name:       e.Name().Name(),
		Contract:   contract,
		ParamCount: len(e.Parameters()),
		File:       file,
		Line:       e.Position().Line,
	}
}

func typeDefinitionRow(td *ast.TypeDefinition, contract, file string) TypeDefinitionRow {
	return TypeDefinitionRow{
		Name:       td.Name().Name(),
		Underlying: td.Underlying().Text(),
		Contract:   contract,
		File:       file,
		Line:       td.Position().Line,
	}
}

// importRows emits one row per imported symbol, or a single symbol-less row
// for whole-file imports.
func importRows(imp *ast.Import, file string) []ImportRow {
	line := imp.Position().Line
	if len(imp.Imported()) == 0 {
		alias := ""
		if imp.Alias() != nil {
			alias = imp.Alias().Name()
		}
		return []ImportRow{{Path: imp.Path(), Alias: alias, File: file, Line: line}}
	}
	rows := make([]ImportRow, 0, len(imp.Imported()))
	renaming := imp.Renaming()
	for _, symbol := range imp.Imported() {
		alias := ""
		if renamed, ok := renaming[symbol.Name()]; ok {
			alias = renamed.Name()
		}
		rows = append(rows, ImportRow{
			Path:   imp.Path(),
			Symbol: symbol.Name(),
			Alias:  alias,
			File:   file,
			Line:   line,
		})
	}
	return rows
}

// usingRows emits one row per attached library.
func usingRows(u *ast.UsingDirective, contract, file string) []UsingDirectiveRow {
	boundType := ""
	if u.BoundType() != nil {
		boundType = u.BoundType().Text()
	}
	rows := make([]UsingDirectiveRow, 0, len(u.Libraries()))
	for _, library := range u.Libraries() {
		rows = append(rows, UsingDirectiveRow{
			Library:    library.Text(),
			BoundType:  boundType,
			IsWildcard: u.IsWildcard(),
			Contract:   contract,
			File:       file,
			Line:       u.Position().Line,
		})
	}
	return rows
}
