// Package validator enforces the schema contract on the relational fact
// tables before they leave the front-end. A field rename or type drift in the
// fact model would otherwise surface downstream as rules that silently never
// fire; the CUE schema turns that into an immediate, named error instead.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed facts_schema.cue
var factsSchemaFS embed.FS

// FactsValidator validates relational fact tables against the embedded CUE
// schema. All tables are closed structs: an unknown field fails validation.
type FactsValidator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewFactsValidator compiles the embedded schema.
func NewFactsValidator() (*FactsValidator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := factsSchemaFS.ReadFile("facts_schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading facts schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling facts schema: %w", schema.Err())
	}

	return &FactsValidator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks that the fact tables conform to the facts schema.
func (v *FactsValidator) Validate(data interface{}) error {
	return v.validate(data, "#FactTables")
}

// ValidateDelta checks an added/removed snapshot pair.
func (v *FactsValidator) ValidateDelta(data interface{}) error {
	return v.validate(data, "#FactDelta")
}

// ValidateJSON validates JSON bytes directly against the fact tables schema.
func (v *FactsValidator) ValidateJSON(jsonBytes []byte) error {
	return v.validateJSON(jsonBytes, "#FactTables")
}

func (v *FactsValidator) validate(data interface{}, path string) error {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling facts to JSON: %w", err)
	}
	return v.validateJSON(jsonBytes, path)
}

func (v *FactsValidator) validateJSON(jsonBytes []byte, path string) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling facts as CUE: %w", dataValue.Err())
	}

	def := v.schema.LookupPath(cue.ParsePath(path))
	if def.Err() != nil {
		return fmt.Errorf("looking up %s definition: %w", path, def.Err())
	}

	unified := def.Unify(dataValue)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("facts schema validation failed: %w", err)
	}

	return nil
}

// ValidationErrors returns every individual validation error rather than the
// first, which keeps schema drift fixable in one pass.
func (v *FactsValidator) ValidationErrors(data interface{}) []string {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return []string{fmt.Sprintf("compile error: %v", dataValue.Err())}
	}

	def := v.schema.LookupPath(cue.ParsePath("#FactTables"))
	if def.Err() != nil {
		return []string{fmt.Sprintf("schema lookup error: %v", def.Err())}
	}

	unified := def.Unify(dataValue)
	err = unified.Validate()
	if err == nil {
		return nil
	}

	var errs []string
	for _, e := range errors.Errors(err) {
		errs = append(errs, e.Error())
	}
	return errs
}
