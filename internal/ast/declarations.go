package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// Struct is a struct definition. Member order is layout order.
type Struct struct {
	Core
	name    Identifier
	members []StructMember
}

// NewStruct builds a struct definition.
func NewStruct(node cst.Node, name Identifier, members []StructMember) *Struct {
	return &Struct{Core: NewCore(node), name: name, members: cloneSlice(members)}
}

func (s *Struct) Name() Identifier { return s.name }

func (s *Struct) Members() []StructMember { return cloneSlice(s.members) }

// Equal is structural: same name and the same members in the same order.
func (s *Struct) Equal(other *Struct) bool {
	if other == nil || !s.name.Equal(other.name) || len(s.members) != len(other.members) {
		return false
	}
	for i := range s.members {
		if !s.members[i].Equal(other.members[i]) {
			return false
		}
	}
	return true
}

// Enum is an enum definition; values are ordered as declared.
type Enum struct {
	Core
	name   Identifier
	values []Identifier
}

// NewEnum builds an enum definition.
func NewEnum(node cst.Node, name Identifier, values []Identifier) *Enum {
	return &Enum{Core: NewCore(node), name: name, values: cloneSlice(values)}
}

func (e *Enum) Name() Identifier { return e.name }

func (e *Enum) Values() []Identifier { return cloneSlice(e.values) }

// Event is an event definition. Parameter order determines the external
// encoding and matches declaration order exactly.
type Event struct {
	Core
	name       Identifier
	parameters []EventParameter
	anonymous  bool
}

// NewEvent builds an event definition.
func NewEvent(node cst.Node, name Identifier, parameters []EventParameter, anonymous bool) *Event {
	return &Event{Core: NewCore(node), name: name, parameters: cloneSlice(parameters), anonymous: anonymous}
}

func (e *Event) Name() Identifier { return e.name }

func (e *Event) Parameters() []EventParameter { return cloneSlice(e.parameters) }

func (e *Event) IsAnonymous() bool { return e.anonymous }

// CustomError is a custom error definition. Parameter order determines the
// external encoding.
type CustomError struct {
	Core
	name       Identifier
	parameters []ErrorParameter
}

// NewCustomError builds a custom error definition.
func NewCustomError(node cst.Node, name Identifier, parameters []ErrorParameter) *CustomError {
	return &CustomError{Core: NewCore(node), name: name, parameters: cloneSlice(parameters)}
}

func (e *CustomError) Name() Identifier { return e.name }

func (e *CustomError) Parameters() []ErrorParameter { return cloneSlice(e.parameters) }

// TypeDefinition is a user-defined value type: `type Price is uint128;`.
type TypeDefinition struct {
	Core
	name       Identifier
	underlying TypeName
}

// NewTypeDefinition builds a user-defined value type definition.
func NewTypeDefinition(node cst.Node, name Identifier, underlying TypeName) *TypeDefinition {
	return &TypeDefinition{Core: NewCore(node), name: name, underlying: underlying}
}

func (t *TypeDefinition) Name() Identifier { return t.name }

func (t *TypeDefinition) Underlying() TypeName { return t.underlying }
