// Package describe defines the description tree: an immutable, structurally
// comparable model of the declarations that generated code re-declares.
//
// Nodes are plain values. Sequence fields use the immutable package so that
// two trees built from the same source compare equal and hash equal, which
// makes a tree usable as a cache key. Updates such as WithMembers return new
// values and never modify the receiver.
//
// The variant set is closed: Node carries an unexported method, so only the
// types in this package implement it. Consumers dispatch with a type switch.
package describe

import (
	"github.com/cespare/xxhash/v2"

	"github.com/jward/partialgen/internal/immutable"
	"github.com/jward/partialgen/internal/sum"
)

// Node is any description tree node.
type Node interface {
	encode(e *encoder)
}

// Member is a node that can appear in a container's member list.
type Member interface {
	Node
	// IsTargetNode reports whether this is the declaration the tree was built
	// for.
	IsTargetNode() bool
	// DeclaredModifiers returns the member's modifier list. Namespaces and
	// modules always return the empty list.
	DeclaredModifiers() ModifierList
	Equal(other Member) bool
	HashTo(d *xxhash.Digest)
}

// TypeKind classifies a TypeIdentifier.
type TypeKind int

const (
	// KindError marks a type that could not be read from source.
	KindError TypeKind = iota
	// KindIdentifier is a named type reference.
	KindIdentifier
	// KindPredefined is a built-in keyword type such as int or string.
	KindPredefined
)

func (k TypeKind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindPredefined:
		return "predefined"
	default:
		return "error"
	}
}

// MissingType is the text rendered for the error sentinel.
const MissingType = "MISSING"

// Using is a using directive, kept as its trimmed source text.
type Using struct {
	Text string
}

// TypeIdentifier names the type of a parameter, property, indexer or method
// return.
type TypeIdentifier struct {
	Identifier string
	Kind       TypeKind
}

// ErrorType returns the sentinel used when a type is missing.
func ErrorType() TypeIdentifier {
	return TypeIdentifier{Identifier: MissingType, Kind: KindError}
}

// ModifierList holds modifier keywords in source order.
type ModifierList struct {
	Modifiers immutable.Array[immutable.String]
}

// Modifiers builds a ModifierList from keywords.
func Modifiers(mods ...string) ModifierList {
	return ModifierList{Modifiers: immutable.Strings(mods...)}
}

// Has reports whether mod is present.
func (l ModifierList) Has(mod string) bool {
	for _, m := range l.Modifiers.All() {
		if string(m) == mod {
			return true
		}
	}
	return false
}

// TypeParameterList is the raw text of a type parameter clause, such as
// "<T, U>". Constraints and variance are not modelled.
type TypeParameterList struct {
	Parameters sum.Option[string]
}

// TypeParameters wraps raw clause text. Empty text yields an empty list.
func TypeParameters(text string) TypeParameterList {
	if text == "" {
		return TypeParameterList{}
	}
	return TypeParameterList{Parameters: sum.Some(text)}
}

// Parameter is one entry of a parameter list.
type Parameter struct {
	Modifiers  ModifierList
	Type       sum.Option[TypeIdentifier]
	Identifier string
}

// ParameterList is a parenthesized parameter list.
type ParameterList struct {
	Parameters immutable.Array[Parameter]
}

// BracketedParameterList is an indexer's square-bracket parameter list.
type BracketedParameterList struct {
	Parameters immutable.Array[Parameter]
}

// Accessor is a property or indexer accessor keyword: get, set or init.
type Accessor struct {
	Keyword string
}

// AccessorList holds accessors in source order.
type AccessorList struct {
	Accessors immutable.Array[Accessor]
}

// GetterOnly is the accessor list assumed when a declaration has none, as
// with expression-bodied properties.
func GetterOnly() AccessorList {
	return AccessorList{Accessors: immutable.NewArray(Accessor{Keyword: "get"})}
}

// Module is the root of a tree: one source file.
type Module struct {
	Usings   immutable.Array[Using]
	Members  immutable.Array[Member]
	IsTarget bool
}

// Namespace is a block or file-scoped namespace. It has no modifier field;
// DeclaredModifiers always returns the empty list.
type Namespace struct {
	Name         string
	IsFileScoped bool
	Usings       immutable.Array[Using]
	Members      immutable.Array[Member]
	IsTarget     bool
}

// NamedType is a class, struct, interface or record declaration.
type NamedType struct {
	Modifiers      ModifierList
	Keyword        string
	Identifier     string
	TypeParameters TypeParameterList
	Arity          int
	Members        immutable.Array[Member]
	IsTarget       bool
}

// Method is a method declaration. Bodies are never described.
type Method struct {
	Modifiers      ModifierList
	ReturnType     sum.Option[TypeIdentifier]
	Identifier     string
	TypeParameters TypeParameterList
	Arity          int
	Parameters     ParameterList
	IsTarget       bool
}

// BaseProperty is the shape shared by properties and indexers.
type BaseProperty struct {
	Modifiers ModifierList
	Type      sum.Option[TypeIdentifier]
	Accessors AccessorList
	IsTarget  bool
}

// Property is a named property declaration.
type Property struct {
	BaseProperty
	Identifier string
}

// Indexer is a this[...] declaration.
type Indexer struct {
	BaseProperty
	Parameters BracketedParameterList
}

func (Module) DeclaredModifiers() ModifierList    { return ModifierList{} }
func (Namespace) DeclaredModifiers() ModifierList { return ModifierList{} }
func (t NamedType) DeclaredModifiers() ModifierList {
	return t.Modifiers
}
func (m Method) DeclaredModifiers() ModifierList       { return m.Modifiers }
func (p BaseProperty) DeclaredModifiers() ModifierList { return p.Modifiers }

func (m Module) IsTargetNode() bool       { return m.IsTarget }
func (n Namespace) IsTargetNode() bool    { return n.IsTarget }
func (t NamedType) IsTargetNode() bool    { return t.IsTarget }
func (m Method) IsTargetNode() bool       { return m.IsTarget }
func (p BaseProperty) IsTargetNode() bool { return p.IsTarget }

// WithMembers returns a copy of m with its members replaced.
func (m Module) WithMembers(members ...Member) Module {
	m.Members = immutable.NewArray(members...)
	return m
}

// WithMembers returns a copy of n with its members replaced.
func (n Namespace) WithMembers(members ...Member) Namespace {
	n.Members = immutable.NewArray(members...)
	return n
}

// WithMembers returns a copy of t with its members replaced.
func (t NamedType) WithMembers(members ...Member) NamedType {
	t.Members = immutable.NewArray(members...)
	return t
}

// WithMembers replaces the members of a container node. It reports false for
// nodes that cannot hold members.
func WithMembers(container Member, members ...Member) (Member, bool) {
	switch c := container.(type) {
	case Module:
		return c.WithMembers(members...), true
	case Namespace:
		return c.WithMembers(members...), true
	case NamedType:
		return c.WithMembers(members...), true
	default:
		return container, false
	}
}

// MarkTarget returns a copy of m flagged as the target node.
func MarkTarget(m Member) Member {
	switch v := m.(type) {
	case Module:
		v.IsTarget = true
		return v
	case Namespace:
		v.IsTarget = true
		return v
	case NamedType:
		v.IsTarget = true
		return v
	case Method:
		v.IsTarget = true
		return v
	case Property:
		v.IsTarget = true
		return v
	case Indexer:
		v.IsTarget = true
		return v
	}
	return m
}

// Members returns the member list of a container node, or an empty array.
func Members(n Node) immutable.Array[Member] {
	switch c := n.(type) {
	case Module:
		return c.Members
	case Namespace:
		return c.Members
	case NamedType:
		return c.Members
	}
	return immutable.Array[Member]{}
}

// KindName returns a short lowercase name for the node's variant.
func KindName(n Node) string {
	switch n.(type) {
	case Using:
		return "using"
	case TypeIdentifier:
		return "type_identifier"
	case ModifierList:
		return "modifier_list"
	case TypeParameterList:
		return "type_parameter_list"
	case Parameter:
		return "parameter"
	case ParameterList:
		return "parameter_list"
	case BracketedParameterList:
		return "bracketed_parameter_list"
	case Accessor:
		return "accessor"
	case AccessorList:
		return "accessor_list"
	case Module:
		return "module"
	case Namespace:
		return "namespace"
	case NamedType:
		return "type"
	case Method:
		return "method"
	case Property:
		return "property"
	case Indexer:
		return "indexer"
	}
	return "unknown"
}
