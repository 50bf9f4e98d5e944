package facts

import "sort"

// Merge combines per-file table fragments into one snapshot. Row order
// follows the input order except for Files, which is sorted by path the same
// way BuildTables sorts it.
func Merge(parts []Tables) Tables {
	out := emptyTables()
	for _, part := range parts {
		out.Files = append(out.Files, part.Files...)
		out.Pragmas = append(out.Pragmas, part.Pragmas...)
		out.Imports = append(out.Imports, part.Imports...)
		out.Contracts = append(out.Contracts, part.Contracts...)
		out.Inheritance = append(out.Inheritance, part.Inheritance...)
		out.Functions = append(out.Functions, part.Functions...)
		out.Modifiers = append(out.Modifiers, part.Modifiers...)
		out.StateVariables = append(out.StateVariables, part.StateVariables...)
		out.Constants = append(out.Constants, part.Constants...)
		out.Structs = append(out.Structs, part.Structs...)
		out.Enums = append(out.Enums, part.Enums...)
		out.Events = append(out.Events, part.Events...)
		out.Errors = append(out.Errors, part.Errors...)
		out.UsingDirectives = append(out.UsingDirectives, part.UsingDirectives...)
		out.TypeDefinitions = append(out.TypeDefinitions, part.TypeDefinitions...)
	}
	sort.Slice(out.Files, func(i, j int) bool { return out.Files[i].Path < out.Files[j].Path })
	return out
}
