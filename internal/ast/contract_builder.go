package ast

import (
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// ContractBuilder accumulates one contract, interface or library during its
// traversal. The name is set exactly once, the abstract flag is valid only on
// the contract variant, and the constructor/fallback/receive slots are
// singletons; violating any of these returns an InvariantViolationError
// instead of overwriting.
type ContractBuilder struct {
	result   contractCore
	abstract bool
	named    bool
	consumed bool
}

// NewContractBuilder starts a builder for the given contract-like kind.
func NewContractBuilder(kind ContractKind, node cst.Node) *ContractBuilder {
	return &ContractBuilder{result: contractCore{Core: NewCore(node), kind: kind}}
}

func (b *ContractBuilder) entity() string {
	if b.named {
		return b.result.kind.String() + " " + b.result.name.Name()
	}
	return b.result.kind.String()
}

// SetName records the declaration name; a second name token is an invariant
// violation.
func (b *ContractBuilder) SetName(name Identifier) error {
	if b.named {
		return duplicateField(b.entity(), "name")
	}
	b.result.name = name
	b.named = true
	return nil
}

// SetAbstract records the abstract modifier. Interfaces and libraries cannot
// be abstract; the grammar token is rejected there rather than ignored.
func (b *ContractBuilder) SetAbstract() error {
	if b.result.kind != KindContract {
		return invalidFlag(b.entity(), "abstract", "only valid on a contract declaration")
	}
	b.abstract = true
	return nil
}

// AddInheritanceSpecifier appends an `is` clause entry in source order.
func (b *ContractBuilder) AddInheritanceSpecifier(s InheritanceSpecifier) {
	b.result.inheritance = append(b.result.inheritance, s)
}

// AddFunction appends a member function in source order.
func (b *ContractBuilder) AddFunction(f *Function) {
	b.result.functions = append(b.result.functions, f)
}

// AddModifier appends a modifier definition in source order.
func (b *ContractBuilder) AddModifier(m *Modifier) {
	b.result.modifiers = append(b.result.modifiers, m)
}

// AddCustomError appends a custom error definition in source order.
func (b *ContractBuilder) AddCustomError(e *CustomError) {
	b.result.customErrors = append(b.result.customErrors, e)
}

// AddStateVariable appends a state variable in source order.
func (b *ContractBuilder) AddStateVariable(v *StateVariable) {
	b.result.stateVariables = append(b.result.stateVariables, v)
}

// AddStruct appends a struct definition in source order.
func (b *ContractBuilder) AddStruct(s *Struct) {
	b.result.structs = append(b.result.structs, s)
}

// AddEnum appends an enum definition in source order.
func (b *ContractBuilder) AddEnum(e *Enum) {
	b.result.enums = append(b.result.enums, e)
}

// AddEvent appends an event definition in source order.
func (b *ContractBuilder) AddEvent(e *Event) {
	b.result.events = append(b.result.events, e)
}

// AddUsingDirective appends a using directive in source order.
func (b *ContractBuilder) AddUsingDirective(u *UsingDirective) {
	b.result.usingDirectives = append(b.result.usingDirectives, u)
}

// AddTypeDefinition appends a user-defined value type in source order.
func (b *ContractBuilder) AddTypeDefinition(t *TypeDefinition) {
	b.result.typeDefinitions = append(b.result.typeDefinitions, t)
}

// SetConstructor fills the constructor slot, which must be empty.
func (b *ContractBuilder) SetConstructor(c *Constructor) error {
	if b.result.constructor != nil {
		return duplicateField(b.entity(), "constructor")
	}
	b.result.constructor = c
	return nil
}

// SetFallbackFunction fills the fallback slot, which must be empty.
func (b *ContractBuilder) SetFallbackFunction(f *FallbackFunction) error {
	if b.result.fallback != nil {
		return duplicateField(b.entity(), "fallback function")
	}
	b.result.fallback = f
	return nil
}

// SetReceiveFunction fills the receive slot, which must be empty.
func (b *ContractBuilder) SetReceiveFunction(r *ReceiveFunction) error {
	if b.result.receive != nil {
		return duplicateField(b.entity(), "receive function")
	}
	b.result.receive = r
	return nil
}

// Build finalizes the declaration and consumes the builder.
func (b *ContractBuilder) Build() (ContractLike, error) {
	if b.consumed {
		return nil, builderConsumed(b.entity())
	}
	b.consumed = true

	if !b.named {
		return nil, invalidFlag(b.entity(), "name", "missing on declaration")
	}

	switch b.result.kind {
	case KindContract:
		return &Contract{contractCore: b.result, abstract: b.abstract}, nil
	case KindInterface:
		return &Interface{contractCore: b.result}, nil
	case KindLibrary:
		return &Library{contractCore: b.result}, nil
	}
	return nil, invalidFlag(b.entity(), "kind", "unknown contract kind")
}
