// Package syntaxtest provides an in-memory syntax.Node for tests.
package syntaxtest

import (
	"strings"

	"github.com/jward/partialgen/internal/syntax"
)

// Node is a hand-built syntax.Node. Build a tree with struct literals and
// call Link on the root before use.
type Node struct {
	K        syntax.Kind
	Mods     []string
	Kw       string
	Name     string
	TParams  string
	Ty       syntax.TypeRef
	Params   []syntax.Param
	Access   []string
	NoAccess bool
	Children []*Node
	Use      []string
	Attrs    []string
	Src      string

	parent *Node
}

var _ syntax.Node = (*Node)(nil)

// Link sets parent pointers below root and returns root.
func Link(root *Node) *Node {
	for _, c := range root.Children {
		c.parent = root
		Link(c)
	}
	return root
}

// Find returns the first node in pre-order with the given identifier.
func Find(root *Node, name string) *Node {
	if root.Name == name {
		return root
	}
	for _, c := range root.Children {
		if n := Find(c, name); n != nil {
			return n
		}
	}
	return nil
}

func (n *Node) Kind() syntax.Kind      { return n.K }
func (n *Node) Modifiers() []string    { return n.Mods }
func (n *Node) Keyword() string        { return n.Kw }
func (n *Node) Identifier() string     { return n.Name }
func (n *Node) TypeParameters() string { return n.TParams }
func (n *Node) Type() syntax.TypeRef   { return n.Ty }
func (n *Node) Parameters() []syntax.Param {
	return n.Params
}
func (n *Node) Usings() []string     { return n.Use }
func (n *Node) Attributes() []string { return n.Attrs }
func (n *Node) Text() string         { return n.Src }

func (n *Node) Arity() int {
	if n.TParams == "" {
		return 0
	}
	return strings.Count(n.TParams, ",") + 1
}

func (n *Node) Accessors() ([]string, bool) {
	if n.NoAccess || n.Access == nil {
		return nil, false
	}
	return n.Access, true
}

func (n *Node) Members() []syntax.Node {
	out := make([]syntax.Node, len(n.Children))
	for i, c := range n.Children {
		out[i] = c
	}
	return out
}

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Named returns a named type reference.
func Named(text string) syntax.TypeRef {
	return syntax.TypeRef{Text: text, Kind: syntax.TypeNamed}
}

// Predefined returns a keyword type reference.
func Predefined(text string) syntax.TypeRef {
	return syntax.TypeRef{Text: text, Kind: syntax.TypePredefined}
}

// MyClass builds the tree for:
//
//	public partial class MyClass<T,U>
//	{
//	    public partial int Main<T>(T value, string str) { ... }
//	    public partial int Value => 1;
//	    public partial int this[int index] => 2;
//	    public partial struct Test<A,B>
//	    {
//	        public partial class Innermost { }
//	    }
//	}
//
// in the global namespace. The returned root is the compilation unit.
func MyClass() *Node {
	partial := []string{"public", "partial"}
	return Link(&Node{
		K: syntax.KindCompilationUnit,
		Children: []*Node{{
			K: syntax.KindClass, Mods: partial, Kw: "class", Name: "MyClass", TParams: "<T,U>",
			Children: []*Node{
				{
					K: syntax.KindMethod, Mods: partial, Name: "Main", TParams: "<T>",
					Ty: Predefined("int"),
					Params: []syntax.Param{
						{Type: Named("T"), Identifier: "value"},
						{Type: Predefined("string"), Identifier: "str"},
					},
				},
				{K: syntax.KindProperty, Mods: partial, Name: "Value", Ty: Predefined("int")},
				{
					K: syntax.KindIndexer, Mods: partial, Ty: Predefined("int"),
					Params: []syntax.Param{{Type: Predefined("int"), Identifier: "index"}},
				},
				{
					K: syntax.KindStruct, Mods: partial, Kw: "struct", Name: "Test", TParams: "<A,B>",
					Children: []*Node{
						{K: syntax.KindClass, Mods: partial, Kw: "class", Name: "Innermost"},
					},
				},
			},
		}},
	})
}
