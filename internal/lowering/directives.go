package lowering

import (
	"fmt"
	"strings"

	"github.com/giovannarevitoroz/regast/internal/ast"
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// lowerPragma handles both pragma forms. `pragma solidity ^0.8.0;` carries a
// version-constraint token sequence; the value is the source span after the
// solidity keyword, so spacing between constraints survives
// (`>=0.8.0 <0.9.0`). `pragma abicoder v2;` carries an identifier and a
// single value token.
func (l *Lowerer) lowerPragma(node cst.Node) (*ast.Pragma, error) {
	var name *ast.Identifier
	value := ""
	for _, child := range node.Children() {
		switch child.Kind() {
		case "pragma", ";", "comment":
		case "solidity_pragma_token":
			kids := child.Children()
			if len(kids) == 0 || kids[0].Kind() != "solidity" {
				return nil, &MalformedDirectiveError{Directive: "pragma", Reason: "version pragma without solidity keyword"}
			}
			id := ast.NewIdentifier(kids[0], "solidity")
			name = &id
			value = strings.TrimSpace(strings.TrimPrefix(child.Text(), kids[0].Text()))
		case "any_pragma_token":
			for _, kid := range child.Children() {
				switch kid.Kind() {
				case "identifier":
					id, err := l.Expressions.ResolveIdentifier(kid)
					if err != nil {
						return nil, err
					}
					name = &id
				case "pragma_value":
					value = kid.Text()
				case "comment":
				default:
					return nil, &MalformedDirectiveError{Directive: "pragma", Reason: fmt.Sprintf("unexpected token %q", kid.Kind())}
				}
			}
		default:
			return nil, &MalformedDirectiveError{Directive: "pragma", Reason: fmt.Sprintf("unexpected child %q", child.Kind())}
		}
	}
	if name == nil {
		return nil, &MalformedDirectiveError{Directive: "pragma", Reason: "missing pragma name"}
	}
	return ast.NewPragma(node, *name, value), nil
}

// lowerImport handles the three import forms: a plain source import with an
// optional whole-module alias, `* as A from "..."`, and the braced symbol
// list with optional per-symbol renames.
func (l *Lowerer) lowerImport(node cst.Node) (*ast.Import, error) {
	var path *string
	var alias *ast.Identifier
	var imported []ast.Identifier
	renaming := make(map[string]ast.Identifier)

	for _, child := range node.Children() {
		switch child.Kind() {
		case "import", ";", "comment":
		case "source_import":
			for _, kid := range child.Children() {
				switch kid.Kind() {
				case "string":
					p := unquote(kid.Text())
					path = &p
				case "identifier":
					id, err := l.Expressions.ResolveIdentifier(kid)
					if err != nil {
						return nil, err
					}
					alias = &id
				case "as", "comment":
				default:
					return nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected token %q in source import", kid.Kind())}
				}
			}
		case "single_import":
			wildcard := false
			var names []ast.Identifier
			for _, kid := range child.Children() {
				switch kid.Kind() {
				case "*":
					wildcard = true
				case "identifier":
					id, err := l.Expressions.ResolveIdentifier(kid)
					if err != nil {
						return nil, err
					}
					names = append(names, id)
				case "as", "comment":
				default:
					return nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected token %q in import clause", kid.Kind())}
				}
			}
			switch {
			case wildcard && len(names) == 1:
				alias = &names[0]
			case !wildcard && len(names) >= 1:
				imported = append(imported, names[0])
				if len(names) == 2 {
					renaming[names[0].Name()] = names[1]
				} else if len(names) > 2 {
					return nil, &MalformedDirectiveError{Directive: "import", Reason: "too many identifiers in import clause"}
				}
			default:
				return nil, &MalformedDirectiveError{Directive: "import", Reason: "empty import clause"}
			}
		case "multiple_import":
			for _, kid := range child.Children() {
				switch kid.Kind() {
				case "{", "}", ",", "comment":
				case "import_declaration":
					name, rename, err := l.lowerImportDeclaration(kid)
					if err != nil {
						return nil, err
					}
					imported = append(imported, name)
					if rename != nil {
						renaming[name.Name()] = *rename
					}
				default:
					return nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected token %q in import list", kid.Kind())}
				}
			}
		case "from_clause":
			for _, kid := range child.Children() {
				switch kid.Kind() {
				case "string":
					p := unquote(kid.Text())
					path = &p
				case "from", "comment":
				default:
					return nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected token %q in from clause", kid.Kind())}
				}
			}
		default:
			return nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected child %q", child.Kind())}
		}
	}

	if path == nil {
		return nil, &MalformedDirectiveError{Directive: "import", Reason: "missing source path"}
	}
	return ast.NewImport(node, *path, alias, imported, renaming), nil
}

func (l *Lowerer) lowerImportDeclaration(node cst.Node) (ast.Identifier, *ast.Identifier, error) {
	var names []ast.Identifier
	for _, kid := range node.Children() {
		switch kid.Kind() {
		case "identifier":
			id, err := l.Expressions.ResolveIdentifier(kid)
			if err != nil {
				return ast.Identifier{}, nil, err
			}
			names = append(names, id)
		case "as", "comment":
		default:
			return ast.Identifier{}, nil, &MalformedDirectiveError{Directive: "import", Reason: fmt.Sprintf("unexpected token %q in imported symbol", kid.Kind())}
		}
	}
	switch len(names) {
	case 1:
		return names[0], nil, nil
	case 2:
		return names[0], &names[1], nil
	}
	return ast.Identifier{}, nil, &MalformedDirectiveError{Directive: "import", Reason: "imported symbol without a name"}
}

// lowerUsing handles `using L for T;` and `using L for *;`. The newer forms
// (braced function lists, user-defined operators, `global`) are recognized
// and rejected explicitly rather than lowered to something lossy.
func (l *Lowerer) lowerUsing(node cst.Node) (*ast.UsingDirective, error) {
	var libraries []ast.TypeName
	var bound *ast.TypeName
	wildcard := false
	sawFor := false

	for _, child := range node.Children() {
		switch child.Kind() {
		case "using", ";", "comment":
		case "for":
			sawFor = true
		case "{":
			return nil, &UnsupportedConstructError{Construct: "library function list", Context: "using directive"}
		case "global":
			return nil, &UnsupportedConstructError{Construct: "global binding", Context: "using directive"}
		case "*", "any_source_type":
			if !sawFor {
				return nil, &MalformedDirectiveError{Directive: "using", Reason: "wildcard before for keyword"}
			}
			wildcard = true
		default:
			if !sawFor {
				library, err := l.Types.ResolveUserDefinedType(child)
				if err != nil {
					return nil, err
				}
				libraries = append(libraries, library)
				continue
			}
			if wildcard || bound != nil {
				return nil, &MalformedDirectiveError{Directive: "using", Reason: "more than one bound type"}
			}
			target, err := l.Types.ResolveType(child)
			if err != nil {
				return nil, err
			}
			bound = &target
		}
	}

	if len(libraries) == 0 {
		return nil, &MalformedDirectiveError{Directive: "using", Reason: "missing library reference"}
	}
	if !sawFor || (bound == nil && !wildcard) {
		return nil, &MalformedDirectiveError{Directive: "using", Reason: "missing for clause"}
	}
	return ast.NewUsingDirective(node, libraries, bound, wildcard), nil
}

// unquote strips the surrounding quotes of a string literal token.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
