package ast

import "github.com/giovannarevitoroz/regast/internal/cst"

// ContractKind distinguishes the three contract-like declaration forms.
type ContractKind int

const (
	KindContract ContractKind = iota
	KindInterface
	KindLibrary
)

func (k ContractKind) String() string {
	switch k {
	case KindContract:
		return "contract"
	case KindInterface:
		return "interface"
	case KindLibrary:
		return "library"
	default:
		return "contract-like"
	}
}

// InheritanceArguments is the argument list of one inheritance specifier.
// The two forms are mutually exclusive by construction: a specifier carries
// positional arguments or named arguments, never both. A nil
// InheritanceArguments on the specifier means the base was named without a
// call at all, which is how interfaces are inherited.
type InheritanceArguments interface {
	isInheritanceArguments()
}

// PositionalArguments is an ordered positional argument list. It may be
// empty, meaning the base constructor is called with no arguments: `is B()`.
type PositionalArguments []Expression

func (PositionalArguments) isInheritanceArguments() {}

// NamedArguments is the struct-argument form: `is B({x: 1})`.
type NamedArguments []FieldInitializer

func (NamedArguments) isInheritanceArguments() {}

// InheritanceSpecifier is one entry of an `is` clause: the ancestor type and
// its optional constructor arguments.
type InheritanceSpecifier struct {
	Core
	ancestor  TypeName
	arguments InheritanceArguments
}

// NewInheritanceSpecifier builds an inheritance specifier. arguments may be
// nil for bases inherited without instantiation.
func NewInheritanceSpecifier(node cst.Node, ancestor TypeName, arguments InheritanceArguments) InheritanceSpecifier {
	return InheritanceSpecifier{Core: NewCore(node), ancestor: ancestor, arguments: arguments}
}

func (s InheritanceSpecifier) Ancestor() TypeName { return s.ancestor }

// Arguments returns the argument list, or nil when the base is named without
// a constructor call.
func (s InheritanceSpecifier) Arguments() InheritanceArguments { return s.arguments }

// contractCore is the member set shared by Contract, Interface and Library.
type contractCore struct {
	Core
	kind            ContractKind
	name            Identifier
	inheritance     []InheritanceSpecifier
	functions       []*Function
	modifiers       []*Modifier
	customErrors    []*CustomError
	stateVariables  []*StateVariable
	structs         []*Struct
	enums           []*Enum
	events          []*Event
	usingDirectives []*UsingDirective
	typeDefinitions []*TypeDefinition
	constructor     *Constructor
	fallback        *FallbackFunction
	receive         *ReceiveFunction
}

func (c *contractCore) ContractKind() ContractKind { return c.kind }

func (c *contractCore) Name() Identifier { return c.name }

func (c *contractCore) InheritanceSpecifiers() []InheritanceSpecifier { return cloneSlice(c.inheritance) }

func (c *contractCore) Functions() []*Function { return cloneSlice(c.functions) }

func (c *contractCore) Modifiers() []*Modifier { return cloneSlice(c.modifiers) }

func (c *contractCore) CustomErrors() []*CustomError { return cloneSlice(c.customErrors) }

func (c *contractCore) StateVariables() []*StateVariable { return cloneSlice(c.stateVariables) }

func (c *contractCore) Structs() []*Struct { return cloneSlice(c.structs) }

func (c *contractCore) Enums() []*Enum { return cloneSlice(c.enums) }

func (c *contractCore) Events() []*Event { return cloneSlice(c.events) }

func (c *contractCore) UsingDirectives() []*UsingDirective { return cloneSlice(c.usingDirectives) }

func (c *contractCore) TypeDefinitions() []*TypeDefinition { return cloneSlice(c.typeDefinitions) }

// Constructor returns the contract's constructor, or nil. At most one exists.
func (c *contractCore) Constructor() *Constructor { return c.constructor }

// FallbackFunction returns the fallback function, or nil. At most one exists.
func (c *contractCore) FallbackFunction() *FallbackFunction { return c.fallback }

// ReceiveFunction returns the receive function, or nil. At most one exists;
// fallback and receive are independent singletons.
func (c *contractCore) ReceiveFunction() *ReceiveFunction { return c.receive }

// ContractLike is the common read surface of Contract, Interface and
// Library.
type ContractLike interface {
	Syntax() cst.Node
	Position() cst.Position
	ContractKind() ContractKind
	Name() Identifier
	InheritanceSpecifiers() []InheritanceSpecifier
	Functions() []*Function
	Modifiers() []*Modifier
	CustomErrors() []*CustomError
	StateVariables() []*StateVariable
	Structs() []*Struct
	Enums() []*Enum
	Events() []*Event
	UsingDirectives() []*UsingDirective
	TypeDefinitions() []*TypeDefinition
	Constructor() *Constructor
	FallbackFunction() *FallbackFunction
	ReceiveFunction() *ReceiveFunction
}

// Contract is a (possibly abstract) contract declaration. Only this variant
// carries the abstract flag.
type Contract struct {
	contractCore
	abstract bool
}

func (c *Contract) IsAbstract() bool { return c.abstract }

// Interface is an interface declaration.
type Interface struct {
	contractCore
}

// Library is a library declaration.
type Library struct {
	contractCore
}
