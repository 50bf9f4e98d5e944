package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// Parameter is a function, modifier or return parameter. The name is
// optional: `function f(uint256) ...` declares an unnamed parameter.
type Parameter struct {
	Core
	typeName TypeName
	name     *Identifier
	location string // "memory", "calldata", "storage" or ""
}

// NewParameter builds a parameter. name may be nil, location may be empty.
func NewParameter(node cst.Node, typeName TypeName, name *Identifier, location string) Parameter {
	return Parameter{Core: NewCore(node), typeName: typeName, name: name, location: location}
}

func (p Parameter) TypeName() TypeName { return p.typeName }

// Name returns the parameter name, or nil for an unnamed parameter.
func (p Parameter) Name() *Identifier { return p.name }

// Location returns the data location keyword, or "" when none was given.
func (p Parameter) Location() string { return p.location }

// EventParameter is an event parameter; unlike plain parameters each one
// carries its own indexed tag.
type EventParameter struct {
	Core
	typeName TypeName
	name     *Identifier
	indexed  bool
}

// NewEventParameter builds an event parameter. name may be nil.
func NewEventParameter(node cst.Node, typeName TypeName, name *Identifier, indexed bool) EventParameter {
	return EventParameter{Core: NewCore(node), typeName: typeName, name: name, indexed: indexed}
}

func (p EventParameter) TypeName() TypeName { return p.typeName }

func (p EventParameter) Name() *Identifier { return p.name }

func (p EventParameter) IsIndexed() bool { return p.indexed }

// ErrorParameter is a custom error parameter.
type ErrorParameter struct {
	Core
	typeName TypeName
	name     *Identifier
}

// NewErrorParameter builds an error parameter. name may be nil.
func NewErrorParameter(node cst.Node, typeName TypeName, name *Identifier) ErrorParameter {
	return ErrorParameter{Core: NewCore(node), typeName: typeName, name: name}
}

func (p ErrorParameter) TypeName() TypeName { return p.typeName }

func (p ErrorParameter) Name() *Identifier { return p.name }

// StructMember is one field of a struct declaration. Member order is layout
// order and is semantically significant.
type StructMember struct {
	Core
	typeName TypeName
	name     Identifier
}

// NewStructMember builds a struct member.
func NewStructMember(node cst.Node, typeName TypeName, name Identifier) StructMember {
	return StructMember{Core: NewCore(node), typeName: typeName, name: name}
}

func (m StructMember) TypeName() TypeName { return m.typeName }

func (m StructMember) Name() Identifier { return m.name }

// Equal compares name and type structurally.
func (m StructMember) Equal(other StructMember) bool {
	return m.name.Equal(other.name) && m.typeName.Equal(other.typeName)
}

// StateVariable is a contract-level variable declaration.
type StateVariable struct {
	Core
	typeName   TypeName
	name       Identifier
	visibility Visibility
	constant   bool
	immutable  bool
	value      *Expression
}

// NewStateVariable builds a state variable. value may be nil when the
// declaration has no initializer.
func NewStateVariable(node cst.Node, typeName TypeName, name Identifier, visibility Visibility, constant, immutable bool, value *Expression) StateVariable {
	return StateVariable{
		Core:       NewCore(node),
		typeName:   typeName,
		name:       name,
		visibility: visibility,
		constant:   constant,
		immutable:  immutable,
		value:      value,
	}
}

func (v StateVariable) TypeName() TypeName { return v.typeName }

func (v StateVariable) Name() Identifier { return v.name }

func (v StateVariable) Visibility() Visibility { return v.visibility }

func (v StateVariable) IsConstant() bool { return v.constant }

func (v StateVariable) IsImmutable() bool { return v.immutable }

// Value returns the initializer expression, or nil.
func (v StateVariable) Value() *Expression { return v.value }

// Constant is a file-level constant declaration, which always has an
// initializer.
type Constant struct {
	Core
	typeName TypeName
	name     Identifier
	value    Expression
}

// NewConstant builds a file-level constant.
func NewConstant(node cst.Node, typeName TypeName, name Identifier, value Expression) Constant {
	return Constant{Core: NewCore(node), typeName: typeName, name: name, value: value}
}

func (c Constant) TypeName() TypeName { return c.typeName }

func (c Constant) Name() Identifier { return c.name }

func (c Constant) Value() Expression { return c.value }
