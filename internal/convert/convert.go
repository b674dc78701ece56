// Package convert builds description trees from syntax trees.
//
// Conversion starts at a target declaration, which must be a partial type,
// method, property or indexer. Anything else yields no result. Depending on
// the Configuration the target's members and nested types are converted too,
// and the target is wrapped in shells of its enclosing types and namespaces
// under a Module holding the file's usings.
package convert

import (
	"context"

	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/immutable"
	"github.com/jward/partialgen/internal/sum"
	"github.com/jward/partialgen/internal/syntax"
)

// Converter turns syntax nodes into description trees. It is safe for
// concurrent use; each Convert call keeps its own state.
type Converter struct {
	names *syntax.NameCache
}

// Option configures a Converter.
type Option func(*Converter)

// WithNameCache shares an attribute-name cache between converters.
func WithNameCache(c *syntax.NameCache) Option {
	return func(cv *Converter) {
		cv.names = c
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.names == nil {
		c.names = syntax.NewNameCache()
	}
	return c
}

// Names returns the converter's attribute-name cache.
func (c *Converter) Names() *syntax.NameCache { return c.names }

// Convert converts target under cfg. It returns None with a nil error when
// target is not an eligible partial declaration, and None with ctx.Err()
// when ctx is cancelled part-way. A partial tree is never returned.
func (c *Converter) Convert(ctx context.Context, target syntax.Node, cfg Configuration) (sum.Option[describe.Module], error) {
	none := sum.None[describe.Module]()
	w := &walker{ctx: ctx, cfg: cfg}

	desc, ok, err := w.member(target)
	if err != nil {
		return none, err
	}
	if !ok {
		return none, nil
	}
	desc = describe.MarkTarget(desc)

	if !cfg.IncludeContext {
		return sum.Some(describe.Module{}.WithMembers(desc)), nil
	}
	mod, err := w.wrapInContext(target, desc)
	if err != nil {
		return none, err
	}
	return sum.Some(mod), nil
}

// Convert converts target with a throwaway Converter.
func Convert(ctx context.Context, target syntax.Node, cfg Configuration) (sum.Option[describe.Module], error) {
	return New().Convert(ctx, target, cfg)
}

// Eligible reports whether n can be a conversion target.
func Eligible(n syntax.Node) bool {
	k := n.Kind()
	return (k.IsType() || k.IsTypeMember()) && syntax.IsPartial(n)
}

// Targets returns the eligible partial type declarations below root in
// pre-order. When attribute is non-empty only types carrying that attribute
// are returned.
func (c *Converter) Targets(root syntax.Node, attribute string) []syntax.Node {
	var out []syntax.Node
	for _, n := range syntax.Descendants(root) {
		if !n.Kind().IsType() || !Eligible(n) {
			continue
		}
		if attribute != "" && !c.names.HasAttribute(n, attribute) {
			continue
		}
		out = append(out, n)
	}
	return out
}

type walker struct {
	ctx context.Context
	cfg Configuration
}

func (w *walker) member(n syntax.Node) (describe.Member, bool, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, false, err
	}
	if !Eligible(n) {
		return nil, false, nil
	}
	switch n.Kind() {
	case syntax.KindMethod:
		return w.method(n), true, nil
	case syntax.KindProperty:
		return describe.Property{BaseProperty: w.baseProperty(n), Identifier: n.Identifier()}, true, nil
	case syntax.KindIndexer:
		return describe.Indexer{
			BaseProperty: w.baseProperty(n),
			Parameters:   describe.BracketedParameterList{Parameters: parameters(n)},
		}, true, nil
	}

	members, err := w.typeMembers(n)
	if err != nil {
		return nil, false, err
	}
	return typeShell(n).WithMembers(members...), true, nil
}

func (w *walker) typeMembers(n syntax.Node) ([]describe.Member, error) {
	if !w.cfg.IncludeTypeMembers && !w.cfg.IncludeNestedTypes {
		return nil, nil
	}
	var out []describe.Member
	for _, child := range n.Members() {
		k := child.Kind()
		if k.IsTypeMember() && !w.cfg.IncludeTypeMembers {
			continue
		}
		if k.IsType() && !w.cfg.IncludeNestedTypes {
			continue
		}
		m, ok, err := w.member(child)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (w *walker) method(n syntax.Node) describe.Method {
	return describe.Method{
		Modifiers:      describe.Modifiers(n.Modifiers()...),
		ReturnType:     typeIdentifier(n.Type()),
		Identifier:     n.Identifier(),
		TypeParameters: describe.TypeParameters(n.TypeParameters()),
		Arity:          n.Arity(),
		Parameters:     describe.ParameterList{Parameters: parameters(n)},
	}
}

func (w *walker) baseProperty(n syntax.Node) describe.BaseProperty {
	accessors := describe.GetterOnly()
	if kws, ok := n.Accessors(); ok {
		list := make([]describe.Accessor, len(kws))
		for i, kw := range kws {
			list[i] = describe.Accessor{Keyword: kw}
		}
		accessors = describe.AccessorList{Accessors: immutable.NewArray(list...)}
	}
	return describe.BaseProperty{
		Modifiers: describe.Modifiers(n.Modifiers()...),
		Type:      typeIdentifier(n.Type()),
		Accessors: accessors,
	}
}

// wrapInContext rebuilds the chain from the file module down to target,
// reusing each ancestor's shell.
func (w *walker) wrapInContext(target syntax.Node, desc describe.Member) (describe.Module, error) {
	var shells []describe.Member
	module := describe.Module{}
	for p := target.Parent(); p != nil; p = p.Parent() {
		if err := w.ctx.Err(); err != nil {
			return describe.Module{}, err
		}
		switch k := p.Kind(); {
		case k.IsType():
			shells = append(shells, typeShell(p))
		case k.IsNamespace():
			shells = append(shells, namespaceShell(p))
		case k == syntax.KindCompilationUnit:
			module.Usings = usings(p)
		}
	}

	current := desc
	for _, shell := range shells {
		current, _ = describe.WithMembers(shell, current)
	}
	return module.WithMembers(current), nil
}

func typeShell(n syntax.Node) describe.NamedType {
	return describe.NamedType{
		Modifiers:      describe.Modifiers(n.Modifiers()...),
		Keyword:        n.Keyword(),
		Identifier:     n.Identifier(),
		TypeParameters: describe.TypeParameters(n.TypeParameters()),
		Arity:          n.Arity(),
	}
}

func namespaceShell(n syntax.Node) describe.Namespace {
	return describe.Namespace{
		Name:         n.Identifier(),
		IsFileScoped: n.Kind() == syntax.KindFileScopedNamespace,
		Usings:       usings(n),
	}
}

func usings(n syntax.Node) immutable.Array[describe.Using] {
	texts := n.Usings()
	out := make([]describe.Using, len(texts))
	for i, t := range texts {
		out[i] = describe.Using{Text: t}
	}
	return immutable.NewArray(out...)
}

func parameters(n syntax.Node) immutable.Array[describe.Parameter] {
	params := n.Parameters()
	out := make([]describe.Parameter, len(params))
	for i, p := range params {
		out[i] = describe.Parameter{
			Modifiers:  describe.Modifiers(p.Modifiers...),
			Type:       typeIdentifier(p.Type),
			Identifier: p.Identifier,
		}
	}
	return immutable.NewArray(out...)
}

func typeIdentifier(t syntax.TypeRef) sum.Option[describe.TypeIdentifier] {
	switch t.Kind {
	case syntax.TypePredefined:
		return sum.Some(describe.TypeIdentifier{Identifier: t.Text, Kind: describe.KindPredefined})
	case syntax.TypeNamed:
		return sum.Some(describe.TypeIdentifier{Identifier: t.Text, Kind: describe.KindIdentifier})
	}
	return sum.None[describe.TypeIdentifier]()
}
