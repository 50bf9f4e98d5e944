package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// SourceUnit is the file-level AST root. All member sequences preserve
// source order and are append-only during construction; a built unit is
// immutable.
type SourceUnit struct {
	Core
	fileName        string
	pragmas         []*Pragma
	imports         []*Import
	contracts       []*Contract
	interfaces      []*Interface
	libraries       []*Library
	customErrors    []*CustomError
	structs         []*Struct
	enums           []*Enum
	functions       []*Function
	constants       []*Constant
	typeDefinitions []*TypeDefinition
}

func (u *SourceUnit) FileName() string { return u.fileName }

func (u *SourceUnit) Pragmas() []*Pragma { return cloneSlice(u.pragmas) }

func (u *SourceUnit) Imports() []*Import { return cloneSlice(u.imports) }

func (u *SourceUnit) Contracts() []*Contract { return cloneSlice(u.contracts) }

func (u *SourceUnit) Interfaces() []*Interface { return cloneSlice(u.interfaces) }

func (u *SourceUnit) Libraries() []*Library { return cloneSlice(u.libraries) }

func (u *SourceUnit) CustomErrors() []*CustomError { return cloneSlice(u.customErrors) }

func (u *SourceUnit) Structs() []*Struct { return cloneSlice(u.structs) }

func (u *SourceUnit) Enums() []*Enum { return cloneSlice(u.enums) }

func (u *SourceUnit) Functions() []*Function { return cloneSlice(u.functions) }

func (u *SourceUnit) Constants() []*Constant { return cloneSlice(u.constants) }

func (u *SourceUnit) TypeDefinitions() []*TypeDefinition { return cloneSlice(u.typeDefinitions) }

// ContractLikes returns contracts, interfaces and libraries as one sequence,
// grouped by kind.
func (u *SourceUnit) ContractLikes() []ContractLike {
	out := make([]ContractLike, 0, len(u.contracts)+len(u.interfaces)+len(u.libraries))
	for _, c := range u.contracts {
		out = append(out, c)
	}
	for _, i := range u.interfaces {
		out = append(out, i)
	}
	for _, l := range u.libraries {
		out = append(out, l)
	}
	return out
}

// SourceUnitBuilder accumulates one file's declarations in source order and
// is finalized exactly once.
type SourceUnitBuilder struct {
	result   SourceUnit
	consumed bool
}

// NewSourceUnitBuilder starts a builder for the named file.
func NewSourceUnitBuilder(node cst.Node, fileName string) *SourceUnitBuilder {
	return &SourceUnitBuilder{result: SourceUnit{Core: NewCore(node), fileName: fileName}}
}

// AddPragma appends a pragma directive.
func (b *SourceUnitBuilder) AddPragma(p *Pragma) {
	b.result.pragmas = append(b.result.pragmas, p)
}

// AddImport appends an import directive.
func (b *SourceUnitBuilder) AddImport(i *Import) {
	b.result.imports = append(b.result.imports, i)
}

// AddContractLike appends a lowered contract, interface or library to its
// bucket.
func (b *SourceUnitBuilder) AddContractLike(c ContractLike) {
	switch decl := c.(type) {
	case *Contract:
		b.result.contracts = append(b.result.contracts, decl)
	case *Interface:
		b.result.interfaces = append(b.result.interfaces, decl)
	case *Library:
		b.result.libraries = append(b.result.libraries, decl)
	}
}

// AddCustomError appends a file-level custom error.
func (b *SourceUnitBuilder) AddCustomError(e *CustomError) {
	b.result.customErrors = append(b.result.customErrors, e)
}

// AddStruct appends a file-level struct.
func (b *SourceUnitBuilder) AddStruct(s *Struct) {
	b.result.structs = append(b.result.structs, s)
}

// AddEnum appends a file-level enum.
func (b *SourceUnitBuilder) AddEnum(e *Enum) {
	b.result.enums = append(b.result.enums, e)
}

// AddFunction appends a file-level (free) function.
func (b *SourceUnitBuilder) AddFunction(f *Function) {
	b.result.functions = append(b.result.functions, f)
}

// AddConstant appends a file-level constant.
func (b *SourceUnitBuilder) AddConstant(c *Constant) {
	b.result.constants = append(b.result.constants, c)
}

// AddTypeDefinition appends a file-level user-defined value type.
func (b *SourceUnitBuilder) AddTypeDefinition(t *TypeDefinition) {
	b.result.typeDefinitions = append(b.result.typeDefinitions, t)
}

// Build finalizes the source unit and consumes the builder.
func (b *SourceUnitBuilder) Build() (*SourceUnit, error) {
	if b.consumed {
		return nil, builderConsumed("source unit " + b.result.fileName)
	}
	b.consumed = true
	unit := b.result
	return &unit, nil
}
