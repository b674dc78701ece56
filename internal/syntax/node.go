// Package syntax defines the host syntax tree seen by the converter.
//
// The converter never touches a parser directly. It reads declarations
// through Node, which an adapter (see package csharp) implements on top of a
// concrete parse tree. Tests implement Node with plain structs.
package syntax

// Kind is the declaration kind of a Node.
type Kind int

const (
	KindOther Kind = iota
	KindCompilationUnit
	KindNamespace
	KindFileScopedNamespace
	KindClass
	KindStruct
	KindInterface
	KindRecord
	KindMethod
	KindProperty
	KindIndexer
)

var kindNames = map[Kind]string{
	KindOther:               "other",
	KindCompilationUnit:     "compilation_unit",
	KindNamespace:           "namespace",
	KindFileScopedNamespace: "file_scoped_namespace",
	KindClass:               "class",
	KindStruct:              "struct",
	KindInterface:           "interface",
	KindRecord:              "record",
	KindMethod:              "method",
	KindProperty:            "property",
	KindIndexer:             "indexer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "other"
}

// IsType reports whether k declares a named type.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindRecord:
		return true
	}
	return false
}

// IsTypeMember reports whether k is a method, property or indexer.
func (k Kind) IsTypeMember() bool {
	switch k {
	case KindMethod, KindProperty, KindIndexer:
		return true
	}
	return false
}

// IsNamespace reports whether k is a block or file-scoped namespace.
func (k Kind) IsNamespace() bool {
	return k == KindNamespace || k == KindFileScopedNamespace
}

// TypeRefKind classifies a TypeRef.
type TypeRefKind int

const (
	// TypeMissing means the declaration has no readable type.
	TypeMissing TypeRefKind = iota
	TypeNamed
	TypePredefined
)

// TypeRef is a type as written in source.
type TypeRef struct {
	Text string
	Kind TypeRefKind
}

// Param is one parameter of a method or indexer.
type Param struct {
	Modifiers  []string
	Type       TypeRef
	Identifier string
}

// Node is a declaration-level view of a parse tree node. Methods that do not
// apply to the node's kind return zero values.
type Node interface {
	Kind() Kind
	// Modifiers returns modifier keywords in source order.
	Modifiers() []string
	// Keyword returns the declaration keyword of a type, such as "class" or
	// "record struct".
	Keyword() string
	// Identifier returns the declared name. For namespaces it is the full
	// dotted name.
	Identifier() string
	// TypeParameters returns the raw type parameter clause, or "".
	TypeParameters() string
	// Arity returns the number of type parameters.
	Arity() int
	// Type returns the property or indexer type, or a method's return type.
	Type() TypeRef
	Parameters() []Param
	// Accessors returns accessor keywords. ok is false when the declaration
	// has no accessor list at all.
	Accessors() (keywords []string, ok bool)
	// Members returns nested declarations in source order.
	Members() []Node
	// Usings returns the using directives owned by a compilation unit or
	// namespace, as trimmed source text.
	Usings() []string
	// Parent returns the enclosing declaration, or nil at the root.
	Parent() Node
	// Attributes returns attribute names as written, such as "Generate" or
	// "Foo.GenerateAttribute".
	Attributes() []string
	// Text returns the node's full source text.
	Text() string
}

// HasModifier reports whether n carries mod.
func HasModifier(n Node, mod string) bool {
	for _, m := range n.Modifiers() {
		if m == mod {
			return true
		}
	}
	return false
}

// IsPartial reports whether n carries the partial modifier.
func IsPartial(n Node) bool { return HasModifier(n, "partial") }

// Descendants returns every declaration below n in pre-order.
func Descendants(n Node) []Node {
	var out []Node
	for _, m := range n.Members() {
		out = append(out, m)
		out = append(out, Descendants(m)...)
	}
	return out
}
