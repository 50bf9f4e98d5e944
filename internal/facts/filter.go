package facts

// FilterTablesByFiles returns a new Tables object containing only rows whose
// file or path is present in the provided file set.
func FilterTablesByFiles(tables Tables, files map[string]bool) Tables {
	if len(files) == 0 {
		return emptyTables()
	}
	out := emptyTables()

	for _, row := range tables.Files {
		if files[row.Path] {
			out.Files = append(out.Files, row)
		}
	}
	for _, row := range tables.Pragmas {
		if files[row.File] {
			out.Pragmas = append(out.Pragmas, row)
		}
	}
	for _, row := range tables.Imports {
		if files[row.File] {
			out.Imports = append(out.Imports, row)
		}
	}
	for _, row := range tables.Contracts {
		if files[row.File] {
			out.Contracts = append(out.Contracts, row)
		}
	}
	for _, row := range tables.Inheritance {
		if files[row.File] {
			out.Inheritance = append(out.Inheritance, row)
		}
	}
	for _, row := range tables.Functions {
		if files[row.File] {
			out.Functions = append(out.Functions, row)
		}
	}
	for _, row := range tables.Modifiers {
		if files[row.File] {
			out.Modifiers = append(out.Modifiers, row)
		}
	}
	for _, row := range tables.StateVariables {
		if files[row.File] {
			out.StateVariables = append(out.StateVariables, row)
		}
	}
	for _, row := range tables.Constants {
		if files[row.File] {
			out.Constants = append(out.Constants, row)
		}
	}
	for _, row := range tables.Structs {
		if files[row.File] {
			out.Structs = append(out.Structs, row)
		}
	}
	for _, row := range tables.Enums {
		if files[row.File] {
			out.Enums = append(out.Enums, row)
		}
	}
	for _, row := range tables.Events {
		if files[row.File] {
			out.Events = append(out.Events, row)
		}
	}
	for _, row := range tables.Errors {
		if files[row.File] {
			out.Errors = append(out.Errors, row)
		}
	}
	for _, row := range tables.UsingDirectives {
		if files[row.File] {
			out.UsingDirectives = append(out.UsingDirectives, row)
		}
	}
	for _, row := range tables.TypeDefinitions {
		if files[row.File] {
			out.TypeDefinitions = append(out.TypeDefinitions, row)
		}
	}

	return out
}

// FilterDeltaByFiles returns a new Delta containing only rows for the specified files.
func FilterDeltaByFiles(delta Delta, files map[string]bool) Delta {
	if len(files) == 0 {
		return Delta{
			Added:   emptyTables(),
			Removed: emptyTables(),
		}
	}
	return Delta{
		Added:   FilterTablesByFiles(delta.Added, files),
		Removed: FilterTablesByFiles(delta.Removed, files),
	}
}
