package ast

import (
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// Visibility of a callable or state variable.
type Visibility int

const (
	VisibilityUnspecified Visibility = iota
	VisibilityExternal
	VisibilityPublic
	VisibilityInternal
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityExternal:
		return "external"
	case VisibilityPublic:
		return "public"
	case VisibilityInternal:
		return "internal"
	case VisibilityPrivate:
		return "private"
	default:
		return ""
	}
}

// Mutability of a callable.
type Mutability int

const (
	MutabilityUnspecified Mutability = iota
	MutabilityPure
	MutabilityView
	MutabilityPayable
	MutabilityNonpayable
)

func (m Mutability) String() string {
	switch m {
	case MutabilityPure:
		return "pure"
	case MutabilityView:
		return "view"
	case MutabilityPayable:
		return "payable"
	case MutabilityNonpayable:
		return "nonpayable"
	default:
		return ""
	}
}

// CallableKind distinguishes the five function-like declaration forms.
type CallableKind int

const (
	CallableFunction CallableKind = iota
	CallableConstructor
	CallableModifier
	CallableFallback
	CallableReceive
)

func (k CallableKind) String() string {
	switch k {
	case CallableFunction:
		return "function"
	case CallableConstructor:
		return "constructor"
	case CallableModifier:
		return "modifier"
	case CallableFallback:
		return "fallback"
	case CallableReceive:
		return "receive"
	default:
		return "callable"
	}
}

// ModifierInvocation records one modifier applied to a callable: the callee
// and its argument list, in source order.
type ModifierInvocation struct {
	Core
	callee    Identifier
	arguments []Expression
}

// NewModifierInvocation builds a modifier invocation record.
func NewModifierInvocation(node cst.Node, callee Identifier, arguments []Expression) ModifierInvocation {
	return ModifierInvocation{Core: NewCore(node), callee: callee, arguments: cloneSlice(arguments)}
}

func (m ModifierInvocation) Callee() Identifier { return m.callee }

func (m ModifierInvocation) Arguments() []Expression { return cloneSlice(m.arguments) }

// OverrideSpecifier is an `override` clause. An empty Overrides list is a
// bare, unqualified `override`.
type OverrideSpecifier struct {
	Core
	overrides []TypeName
}

// NewOverrideSpecifier builds an override clause.
func NewOverrideSpecifier(node cst.Node, overrides []TypeName) OverrideSpecifier {
	return OverrideSpecifier{Core: NewCore(node), overrides: cloneSlice(overrides)}
}

func (o OverrideSpecifier) Overrides() []TypeName { return cloneSlice(o.overrides) }

// callable is the field subset shared by all five variants.
type callable struct {
	Core
	kind        CallableKind
	parameters  []Parameter
	invocations []ModifierInvocation
	visibility  Visibility
	mutability  Mutability
	virtual     bool
	override    *OverrideSpecifier
	returns     []Parameter
	body        *Body
}

func (c *callable) CallableKind() CallableKind { return c.kind }

func (c *callable) Parameters() []Parameter { return cloneSlice(c.parameters) }

func (c *callable) ModifierInvocations() []ModifierInvocation { return cloneSlice(c.invocations) }

func (c *callable) Visibility() Visibility { return c.visibility }

func (c *callable) Mutability() Mutability { return c.mutability }

func (c *callable) IsVirtual() bool { return c.virtual }

// Override returns the override clause, or nil when the callable has none.
func (c *callable) Override() *OverrideSpecifier { return c.override }

func (c *callable) Returns() []Parameter { return cloneSlice(c.returns) }

// Body returns the opaque body handle, or nil for a bodyless declaration.
func (c *callable) Body() *Body { return c.body }

// Callable is the common read surface of the five function-like entities.
// Use a type switch on the concrete type (or CallableKind) for the
// variant-specific fields.
type Callable interface {
	Syntax() cst.Node
	Position() cst.Position
	CallableKind() CallableKind
	Parameters() []Parameter
	ModifierInvocations() []ModifierInvocation
	Visibility() Visibility
	Mutability() Mutability
	IsVirtual() bool
	Override() *OverrideSpecifier
	Returns() []Parameter
	Body() *Body
}

// Function is a named function, at file level or inside a contract.
type Function struct {
	callable
	name Identifier
}

func (f *Function) Name() Identifier { return f.name }

// Constructor is a contract constructor; it has no name.
type Constructor struct {
	callable
}

// Modifier is a named function modifier definition.
type Modifier struct {
	callable
	name Identifier
}

func (m *Modifier) Name() Identifier { return m.name }

// FallbackFunction handles calls matching no function selector.
type FallbackFunction struct {
	callable
}

// ReceiveFunction handles plain value transfers.
type ReceiveFunction struct {
	callable
}
