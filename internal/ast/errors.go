package ast

import "fmt"

// InvariantViolationError reports a structural invariant broken while
// building an entity: a singleton slot assigned twice, a set-once field
// reassigned, or a flag applied in a context where it is not valid. Builders
// return it instead of overwriting state, so a malformed declaration aborts
// lowering rather than producing a silently wrong entity.
type InvariantViolationError struct {
	Entity string // the construct under construction, e.g. "contract Vault"
	Field  string // the slot or flag involved, e.g. "constructor"
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("structural invariant violated in %s: %s %s", e.Entity, e.Field, e.Reason)
}

func duplicateField(entity, field string) error {
	return &InvariantViolationError{Entity: entity, Field: field, Reason: "assigned more than once"}
}

func invalidFlag(entity, field, reason string) error {
	return &InvariantViolationError{Entity: entity, Field: field, Reason: reason}
}

func builderConsumed(entity string) error {
	return &InvariantViolationError{Entity: entity, Field: "builder", Reason: "finalized more than once"}
}
