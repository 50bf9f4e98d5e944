package facts

import "strconv"

// Delta captures added and removed fact rows between two snapshots.
type Delta struct {
	Added   Tables `json:"added"`
	Removed Tables `json:"removed"`
}

// ComputeDelta computes row-level additions and removals between two snapshots.
func ComputeDelta(prev, next Tables) Delta {
	return Delta{
		Added:   diffTables(prev, next),
		Removed: diffTables(next, prev),
	}
}

func diffTables(from, to Tables) Tables {
	out := emptyTables()

	out.Files = diffRows(from.Files, to.Files, fileKey)
	out.Pragmas = diffRows(from.Pragmas, to.Pragmas, pragmaKey)
	out.Imports = diffRows(from.Imports, to.Imports, importKey)
	out.Contracts = diffRows(from.Contracts, to.Contracts, contractKey)
	out.Inheritance = diffRows(from.Inheritance, to.Inheritance, inheritanceKey)
	out.Functions = diffRows(from.Functions, to.Functions, functionKey)
	out.Modifiers = diffRows(from.Modifiers, to.Modifiers, modifierKey)
	out.StateVariables = diffRows(from.StateVariables, to.StateVariables, stateVariableKey)
	out.Constants = diffRows(from.Constants, to.Constants, constantKey)
	out.Structs = diffRows(from.Structs, to.Structs, structKey)
	out.Enums = diffRows(from.Enums, to.Enums, enumKey)
	out.Events = diffRows(from.Events, to.Events, eventKey)
	out.Errors = diffRows(from.Errors, to.Errors, errorKey)
	out.UsingDirectives = diffRows(from.UsingDirectives, to.UsingDirectives, usingDirectiveKey)
	out.TypeDefinitions = diffRows(from.TypeDefinitions, to.TypeDefinitions, typeDefinitionKey)

	return out
}

func emptyTables() Tables {
	return Tables{
		Files:           []FileRow{},
		Pragmas:         []PragmaRow{},
		Imports:         []ImportRow{},
		Contracts:       []ContractRow{},
		Inheritance:     []InheritanceRow{},
		Functions:       []FunctionRow{},
		Modifiers:       []ModifierRow{},
		StateVariables:  []StateVariableRow{},
		Constants:       []ConstantRow{},
		Structs:         []StructRow{},
		Enums:           []EnumRow{},
		Events:          []EventRow{},
		Errors:          []ErrorRow{},
		UsingDirectives: []UsingDirectiveRow{},
		TypeDefinitions: []TypeDefinitionRow{},
	}
}

func fileKey(r FileRow) string {
	return r.Path + "|" + boolKey(r.IsThirdParty)
}

func pragmaKey(r PragmaRow) string {
	return r.Name + "|" + r.Value + "|" + r.File + "|" + intKey(r.Line)
}

func importKey(r ImportRow) string {
	return r.Path + "|" + r.Symbol + "|" + r.Alias + "|" + r.File + "|" + intKey(r.Line)
}

func contractKey(r ContractRow) string {
	return r.Name + "|" + r.Kind + "|" + boolKey(r.IsAbstract) + "|" + r.File + "|" + intKey(r.Line)
}

func inheritanceKey(r InheritanceRow) string {
	return r.Contract + "|" + r.Ancestor + "|" + boolKey(r.Instantiated) + "|" + r.File + "|" + intKey(r.Line)
}

func functionKey(r FunctionRow) string {
	return r.Name + "|" + r.Kind + "|" + r.Contract + "|" + r.Visibility + "|" + r.Mutability + "|" +
		boolKey(r.IsVirtual) + "|" + boolKey(r.IsOverride) + "|" + boolKey(r.HasBody) + "|" +
		intKey(r.ParamCount) + "|" + intKey(r.ReturnCount) + "|" + r.File + "|" + intKey(r.Line)
}

func modifierKey(r ModifierRow) string {
	return r.Name + "|" + r.Contract + "|" + boolKey(r.IsVirtual) + "|" + boolKey(r.IsOverride) + "|" +
		boolKey(r.HasBody) + "|" + r.File + "|" + intKey(r.Line)
}

func stateVariableKey(r StateVariableRow) string {
	return r.Name + "|" + r.Type + "|" + r.Contract + "|" + r.Visibility + "|" + boolKey(r.IsConstant) + "|" +
		boolKey(r.IsImmutable) + "|" + boolKey(r.HasValue) + "|" + r.File + "|" + intKey(r.Line)
}

func constantKey(r ConstantRow) string {
	return r.Name + "|" + r.Type + "|" + r.Value + "|" + r.File + "|" + intKey(r.Line)
}

func structKey(r StructRow) string {
	return r.Name + "|" + r.Contract + "|" + intKey(r.MemberCount) + "|" + r.File + "|" + intKey(r.Line)
}

func enumKey(r EnumRow) string {
	return r.Name + "|" + r.Contract + "|" + intKey(r.ValueCount) + "|" + r.File + "|" + intKey(r.Line)
}

func eventKey(r EventRow) string {
	return r.Name + "|" + r.Contract + "|" + boolKey(r.IsAnonymous) + "|" + intKey(r.ParamCount) + "|" + r.File + "|" + intKey(r.Line)
}

func errorKey(r ErrorRow) string {
	return r.Name + "|" + r.Contract + "|" + intKey(r.ParamCount) + "|" + r.File + "|" + intKey(r.Line)
}

func usingDirectiveKey(r UsingDirectiveRow) string {
	return r.Library + "|" + r.BoundType + "|" + boolKey(r.IsWildcard) + "|" + r.Contract + "|" + r.File + "|" + intKey(r.Line)
}

func typeDefinitionKey(r TypeDefinitionRow) string {
	return r.Name + "|" + r.Underlying + "|" + r.Contract + "|" + r.File + "|" + intKey(r.Line)
}

func diffRows[T any](from, to []T, key func(T) string) []T {
	fromSet := make(map[string]T, len(from))
	for _, row := range from {
		fromSet[key(row)] = row
	}
	var diff []T
	for _, row := range to {
		rowKey := key(row)
		if _, ok := fromSet[rowKey]; !ok {
			diff = append(diff, row)
		}
	}
	if diff == nil {
		diff = []T{}
	}
	return diff
}

func boolKey(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func intKey(v int) string {
	return strconv.Itoa(v)
}
