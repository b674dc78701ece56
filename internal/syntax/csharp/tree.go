package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/partialgen/internal/syntax"
)

func isDeclaration(n *sitter.Node) bool {
	t := n.Type()
	if t == "using_directive" || t == "extern_alias_directive" {
		return false
	}
	return strings.HasSuffix(t, "_declaration")
}

// body returns the node whose children are this declaration's members.
func (n *Node) body() *sitter.Node {
	if n.bodiless != nil {
		return nil
	}
	switch n.Kind() {
	case syntax.KindCompilationUnit, syntax.KindFileScopedNamespace:
		return n.n
	case syntax.KindNamespace:
		return field(n.n, []string{"body"}, "declaration_list")
	}
	if n.Kind().IsType() {
		return field(n.n, []string{"body"}, "declaration_list")
	}
	return nil
}

// followingSiblings returns the siblings after a file-scoped namespace
// declaration. Older grammar revisions leave the declarations that follow
// `namespace X;` as siblings in the compilation unit rather than children.
func (n *Node) followingSiblings() []*sitter.Node {
	parent := n.n.Parent()
	if parent == nil {
		return nil
	}
	var out []*sitter.Node
	after := false
	for _, c := range namedChildren(parent) {
		if after {
			out = append(out, c)
			continue
		}
		if c.Equal(n.n) {
			after = true
		}
	}
	return out
}

// fileScopedNamespace returns the file-scoped namespace declared among the
// children of a compilation unit, if any, along with its index.
func fileScopedNamespace(unit *sitter.Node) (*sitter.Node, int) {
	for i, c := range namedChildren(unit) {
		if c.Type() == "file_scoped_namespace_declaration" {
			return c, i
		}
	}
	return nil, -1
}

// ownChildren returns the named children that belong to this node, taking
// sibling-style file-scoped namespaces into account.
func (n *Node) ownChildren() []*sitter.Node {
	b := n.body()
	if b == nil {
		return nil
	}
	all := namedChildren(b)
	switch n.Kind() {
	case syntax.KindCompilationUnit:
		if _, idx := fileScopedNamespace(b); idx >= 0 {
			return all[:idx+1]
		}
	case syntax.KindFileScopedNamespace:
		return append(all, n.followingSiblings()...)
	}
	return all
}

func (n *Node) members() []*Node {
	var out []*Node
	for _, c := range n.ownChildren() {
		if isDeclaration(c) {
			out = append(out, n.f.wrap(c))
		} else if c.Type() == "ERROR" {
			if m := n.f.wrap(c); m.bodiless != nil {
				out = append(out, m)
			}
		}
	}
	return out
}

func (n *Node) Members() []syntax.Node {
	ms := n.members()
	out := make([]syntax.Node, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func (n *Node) Usings() []string {
	switch n.Kind() {
	case syntax.KindCompilationUnit, syntax.KindNamespace, syntax.KindFileScopedNamespace:
	default:
		return nil
	}
	var out []string
	for _, c := range n.ownChildren() {
		if c.Type() == "using_directive" {
			out = append(out, strings.TrimSpace(n.f.text(c)))
		}
	}
	return out
}

// Parent returns the enclosing namespace, type or compilation unit. A
// declaration that follows a file-scoped namespace as a sibling reports that
// namespace as its parent.
func (n *Node) Parent() syntax.Node {
	for p := n.n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == "compilation_unit" {
			if ns, idx := fileScopedNamespace(p); ns != nil && n.indexIn(p) > idx {
				return n.f.wrap(ns)
			}
			return n.f.wrap(p)
		}
		if _, ok := declKinds[p.Type()]; ok {
			return n.f.wrap(p)
		}
	}
	return nil
}

// indexIn returns the index of the ancestor-or-self of n that is a direct
// child of parent.
func (n *Node) indexIn(parent *sitter.Node) int {
	cur := n.n
	for cur != nil && cur.Parent() != nil && !cur.Parent().Equal(parent) {
		cur = cur.Parent()
	}
	if cur == nil {
		return -1
	}
	for i, c := range namedChildren(parent) {
		if c.Equal(cur) {
			return i
		}
	}
	return -1
}

// Find returns the first declaration with the given identifier.
func (f *File) Find(identifier string) (*Node, bool) {
	for _, d := range f.Declarations() {
		if d.Identifier() == identifier {
			return d, true
		}
	}
	return nil, false
}
