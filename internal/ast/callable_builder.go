package ast

import (
	"github.com/giovannarevitoroz/regast/internal/cst"
)

// CallableBuilder accumulates the fields of one function-like declaration
// during its traversal and is finalized exactly once. Set-once fields return
// an InvariantViolationError on reassignment; the virtual flag is idempotent.
type CallableBuilder struct {
	result   callable
	name     *Identifier
	consumed bool
}

// NewCallableBuilder starts a builder for the given variant.
func NewCallableBuilder(kind CallableKind, node cst.Node) *CallableBuilder {
	return &CallableBuilder{result: callable{Core: NewCore(node), kind: kind}}
}

func (b *CallableBuilder) entity() string {
	kind := b.result.kind.String()
	if b.name != nil {
		return kind + " " + b.name.Name()
	}
	return kind
}

// SetName records the declaration name. Only Function and Modifier carry a
// name; for the other variants the call is an invariant violation, as is a
// second name on the same declaration.
func (b *CallableBuilder) SetName(name Identifier) error {
	if b.result.kind != CallableFunction && b.result.kind != CallableModifier {
		return invalidFlag(b.entity(), "name", "not permitted on this declaration form")
	}
	if b.name != nil {
		return duplicateField(b.entity(), "name")
	}
	b.name = &name
	return nil
}

// AddParameter appends a parameter in source order.
func (b *CallableBuilder) AddParameter(p Parameter) {
	b.result.parameters = append(b.result.parameters, p)
}

// AddModifierInvocation appends a modifier invocation in source order.
func (b *CallableBuilder) AddModifierInvocation(m ModifierInvocation) {
	b.result.invocations = append(b.result.invocations, m)
}

// SetVisibility records the visibility keyword; assignable at most once.
func (b *CallableBuilder) SetVisibility(v Visibility) error {
	if b.result.visibility != VisibilityUnspecified {
		return duplicateField(b.entity(), "visibility")
	}
	b.result.visibility = v
	return nil
}

// SetMutability records the state-mutability keyword; assignable at most once.
func (b *CallableBuilder) SetMutability(m Mutability) error {
	if b.result.mutability != MutabilityUnspecified {
		return duplicateField(b.entity(), "mutability")
	}
	b.result.mutability = m
	return nil
}

// MarkVirtual sets the virtual flag. Repeated occurrences are not an error.
func (b *CallableBuilder) MarkVirtual() {
	b.result.virtual = true
}

// SetOverride records the override clause; assignable at most once.
func (b *CallableBuilder) SetOverride(o OverrideSpecifier) error {
	if b.result.override != nil {
		return duplicateField(b.entity(), "override")
	}
	b.result.override = &o
	return nil
}

// AddReturn appends a return parameter in source order.
func (b *CallableBuilder) AddReturn(p Parameter) {
	b.result.returns = append(b.result.returns, p)
}

// SetBody records the opaque body handle; assignable at most once.
func (b *CallableBuilder) SetBody(body Body) error {
	if b.result.body != nil {
		return duplicateField(b.entity(), "body")
	}
	b.result.body = &body
	return nil
}

// Build finalizes the declaration, applying kind-dependent defaults for
// absent visibility and mutability, and consumes the builder.
func (b *CallableBuilder) Build() (Callable, error) {
	if b.consumed {
		return nil, builderConsumed(b.entity())
	}
	b.consumed = true

	if b.result.mutability == MutabilityUnspecified {
		b.result.mutability = MutabilityNonpayable
	}
	if b.result.visibility == VisibilityUnspecified {
		switch b.result.kind {
		case CallableConstructor:
			b.result.visibility = VisibilityPublic
		case CallableFallback, CallableReceive:
			// The language fixes these to external.
			b.result.visibility = VisibilityExternal
		case CallableModifier:
			b.result.visibility = VisibilityInternal
		}
	}

	switch b.result.kind {
	case CallableFunction:
		if b.name == nil {
			return nil, invalidFlag(b.entity(), "name", "missing on function definition")
		}
		return &Function{callable: b.result, name: *b.name}, nil
	case CallableModifier:
		if b.name == nil {
			return nil, invalidFlag(b.entity(), "name", "missing on modifier definition")
		}
		return &Modifier{callable: b.result, name: *b.name}, nil
	case CallableConstructor:
		return &Constructor{callable: b.result}, nil
	case CallableFallback:
		return &FallbackFunction{callable: b.result}, nil
	case CallableReceive:
		return &ReceiveFunction{callable: b.result}, nil
	}
	return nil, invalidFlag(b.entity(), "kind", "unknown callable kind")
}
