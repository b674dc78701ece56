// Package csharp adapts tree-sitter C# parse trees to syntax.Node.
//
// Only declaration structure is read: namespaces, usings, type declarations
// and their methods, properties and indexers. Bodies are never inspected.
// The adapter tolerates differences between grammar revisions by looking up
// children by field name first and by node type second.
package csharp

import (
	"context"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// Extension is the file extension handled by this package.
const Extension = ".cs"

// Parser wraps a tree-sitter parser configured for C#. A Parser is not safe
// for concurrent use; give each worker its own.
type Parser struct {
	p *sitter.Parser
}

// NewParser creates a C# parser. Call Close when done.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &Parser{p: p}
}

// Close releases the underlying parser.
func (p *Parser) Close() {
	p.p.Close()
}

// Parse parses src into a File. The File keeps a reference to src.
func (p *Parser) Parse(ctx context.Context, src []byte) (*File, error) {
	tree, err := p.p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "csharp: parse")
	}
	return &File{tree: tree, src: src}, nil
}

// Parse parses src with a throwaway parser.
func Parse(ctx context.Context, src []byte) (*File, error) {
	p := NewParser()
	defer p.Close()
	return p.Parse(ctx, src)
}

// File is a parsed C# source file.
type File struct {
	tree *sitter.Tree
	src  []byte
}

// Close releases the parse tree.
func (f *File) Close() {
	f.tree.Close()
}

// Root returns the compilation unit.
func (f *File) Root() *Node {
	return f.wrap(f.tree.RootNode())
}

// HasErrors reports whether tree-sitter recovered from syntax errors.
func (f *File) HasErrors() bool {
	return f.tree.RootNode().HasError()
}

// Declarations returns every recognised declaration in pre-order.
func (f *File) Declarations() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, m := range n.members() {
			out = append(out, m)
			walk(m)
		}
	}
	walk(f.Root())
	return out
}

func (f *File) wrap(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{n: n, f: f, bodiless: recoverBodiless(n, f.src)}
}

func (f *File) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.src)
}
