package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// Pragma is a pragma directive. For the version pragma the value is the
// concatenated trailing token text ("^0.8.0"); for the generic form it is a
// single token's literal text ("v2").
type Pragma struct {
	Core
	name  Identifier
	value string
}

// NewPragma builds a pragma directive.
func NewPragma(node cst.Node, name Identifier, value string) *Pragma {
	return &Pragma{Core: NewCore(node), name: name, value: value}
}

func (p *Pragma) Name() Identifier { return p.name }

func (p *Pragma) Value() string { return p.value }

// Import is an import directive in any of its grammar forms. Alias is the
// whole-module alias (`import "a.sol" as A` or `import * as A from "a.sol"`)
// and is nil otherwise. Imported lists the individually imported names of the
// `{X, Y}` form; Renaming maps an imported name to its alias and only holds
// entries that declared one.
type Import struct {
	Core
	path     string
	alias    *Identifier
	imported []Identifier
	renaming map[string]Identifier
}

// NewImport builds an import directive.
func NewImport(node cst.Node, path string, alias *Identifier, imported []Identifier, renaming map[string]Identifier) *Import {
	copied := make(map[string]Identifier, len(renaming))
	for k, v := range renaming {
		copied[k] = v
	}
	return &Import{Core: NewCore(node), path: path, alias: alias, imported: cloneSlice(imported), renaming: copied}
}

func (i *Import) Path() string { return i.path }

// Alias returns the whole-module alias, or nil.
func (i *Import) Alias() *Identifier { return i.alias }

func (i *Import) Imported() []Identifier { return cloneSlice(i.imported) }

func (i *Import) Renaming() map[string]Identifier {
	out := make(map[string]Identifier, len(i.renaming))
	for k, v := range i.renaming {
		out[k] = v
	}
	return out
}

// UsingDirective binds a library's functions to a type, or to all types when
// the directive used the `*` wildcard.
type UsingDirective struct {
	Core
	libraries []TypeName
	boundType *TypeName
	wildcard  bool
}

// NewUsingDirective builds a `using L for T` directive. boundType is nil
// exactly when wildcard is true.
func NewUsingDirective(node cst.Node, libraries []TypeName, boundType *TypeName, wildcard bool) *UsingDirective {
	return &UsingDirective{Core: NewCore(node), libraries: cloneSlice(libraries), boundType: boundType, wildcard: wildcard}
}

func (u *UsingDirective) Libraries() []TypeName { return cloneSlice(u.libraries) }

// BoundType returns the type the libraries are bound to, or nil for the
// wildcard form.
func (u *UsingDirective) BoundType() *TypeName { return u.boundType }

func (u *UsingDirective) IsWildcard() bool { return u.wildcard }
