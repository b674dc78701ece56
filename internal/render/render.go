// Package render writes description trees as C# source.
//
// The output re-declares each described declaration with an empty body:
// types keep their members' signatures, methods get "{ }" and properties
// keep their accessor list. Hooks let callers fill in type and method
// bodies. Output is a pure function of the tree, the hooks and the emitter
// configuration.
package render

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/emit"
	"github.com/jward/partialgen/internal/immutable"
)

// TypeBodyFunc writes extra content into a type body. It runs after the
// opening brace and before the type's described members.
type TypeBodyFunc func(e *emit.Emitter, t describe.NamedType) error

// MethodBodyFunc writes a method body, replacing the default " { }". It runs
// right after the parameter list and must end the line.
type MethodBodyFunc func(e *emit.Emitter, m describe.Method) error

// Hooks are optional body writers.
type Hooks struct {
	TypeBody   TypeBodyFunc
	MethodBody MethodBodyFunc
}

// Renderer writes description nodes to an Emitter. Use one Renderer per
// output unit.
type Renderer struct {
	e          *emit.Emitter
	fileMarker bool
	hooks      Hooks
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEmitter renders into e instead of a fresh default Emitter.
func WithEmitter(e *emit.Emitter) Option {
	return func(r *Renderer) {
		r.e = e
	}
}

// WithEmitterOptions renders into a fresh Emitter built with opts.
func WithEmitterOptions(opts ...emit.Option) Option {
	return func(r *Renderer) {
		r.e = emit.New(opts...)
	}
}

// WithFileMarker controls the "#nullable enable" header written before a
// Module. Enabled by default.
func WithFileMarker(enabled bool) Option {
	return func(r *Renderer) {
		r.fileMarker = enabled
	}
}

// WithHooks sets both body hooks.
func WithHooks(h Hooks) Option {
	return func(r *Renderer) {
		r.hooks = h
	}
}

// WithTypeBody sets the type body hook.
func WithTypeBody(fn TypeBodyFunc) Option {
	return func(r *Renderer) {
		r.hooks.TypeBody = fn
	}
}

// WithMethodBody sets the method body hook.
func WithMethodBody(fn MethodBodyFunc) Option {
	return func(r *Renderer) {
		r.hooks.MethodBody = fn
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{fileMarker: true}
	for _, opt := range opts {
		opt(r)
	}
	if r.e == nil {
		r.e = emit.New()
	}
	return r
}

// Emitter returns the emitter being written to.
func (r *Renderer) Emitter() *emit.Emitter { return r.e }

// String returns everything rendered so far.
func (r *Renderer) String() string { return r.e.String() }

// ToString renders n with a fresh Renderer.
func ToString(n describe.Node, opts ...Option) (string, error) {
	r := New(opts...)
	if err := r.Render(n); err != nil {
		return "", err
	}
	return r.String(), nil
}

// Render writes n. Errors come only from hooks.
func (r *Renderer) Render(n describe.Node) error {
	switch v := n.(type) {
	case describe.Module:
		return r.module(v)
	case describe.Namespace:
		return r.namespace(v)
	case describe.NamedType:
		return r.namedType(v)
	case describe.Method:
		return r.method(v)
	case describe.Property:
		r.property(v)
	case describe.Indexer:
		r.indexer(v)
	case describe.Using:
		r.e.Line(v.Text)
	case describe.TypeIdentifier:
		r.typeIdentifier(v)
	case describe.ModifierList:
		r.modifiers(v)
	case describe.TypeParameterList:
		r.typeParameters(v)
	case describe.Parameter:
		r.parameter(v)
	case describe.ParameterList:
		r.parameterList("(", v.Parameters, ")")
	case describe.BracketedParameterList:
		r.parameterList("[", v.Parameters, "]")
	case describe.Accessor:
		r.accessor(v)
	case describe.AccessorList:
		r.accessorList(v)
	default:
		return errors.AssertionFailedf("render: unhandled node %T", n)
	}
	return nil
}

func (r *Renderer) usings(us immutable.Array[describe.Using]) {
	for _, u := range us.All() {
		r.e.Line(u.Text)
	}
	if !us.IsEmpty() {
		r.e.NewLine()
	}
}

func (r *Renderer) members(ms immutable.Array[describe.Member]) error {
	for _, m := range ms.All() {
		if err := r.Render(m); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) module(m describe.Module) error {
	if r.fileMarker {
		r.e.FileMarker()
	}
	r.usings(m.Usings)
	last := m.Members.Len() - 1
	for i, member := range m.Members.All() {
		if err := r.Render(member); err != nil {
			return err
		}
		if i < last {
			r.e.NewLine()
		}
	}
	return nil
}

func (r *Renderer) namespace(n describe.Namespace) error {
	r.e.Append("namespace ").Append(n.Name)
	if n.IsFileScoped {
		r.e.LineLine(";")
	} else {
		r.e.NewLine().OpenBrace()
	}
	r.usings(n.Usings)
	if err := r.members(n.Members); err != nil {
		return err
	}
	if !n.IsFileScoped {
		r.e.CloseBrace()
	}
	return nil
}

func (r *Renderer) namedType(t describe.NamedType) error {
	r.modifiers(t.Modifiers)
	r.e.Append(t.Keyword).Append(" ").Append(t.Identifier)
	r.typeParameters(t.TypeParameters)
	r.e.NewLine().OpenBrace()

	if r.hooks.TypeBody != nil {
		if err := r.hooks.TypeBody(r.e, t); err != nil {
			return errors.Wrapf(err, "render: type body of %s", t.Identifier)
		}
	}
	if err := r.members(t.Members); err != nil {
		return err
	}
	r.e.CloseBrace()
	return nil
}

func (r *Renderer) method(m describe.Method) error {
	r.modifiers(m.Modifiers)
	r.typeIdentifier(m.ReturnType.OrDefault(describe.ErrorType()))
	r.e.Append(m.Identifier)
	r.typeParameters(m.TypeParameters)
	r.parameterList("(", m.Parameters.Parameters, ")")

	if r.hooks.MethodBody != nil {
		if err := r.hooks.MethodBody(r.e, m); err != nil {
			return errors.Wrapf(err, "render: method body of %s", m.Identifier)
		}
		return nil
	}
	r.e.Append(" { }").NewLine()
	return nil
}

func (r *Renderer) property(p describe.Property) {
	r.modifiers(p.Modifiers)
	r.typeIdentifier(p.Type.OrDefault(describe.ErrorType()))
	r.e.Append(p.Identifier).Append(" ")
	r.accessorList(p.Accessors)
	r.e.NewLine()
}

func (r *Renderer) indexer(x describe.Indexer) {
	r.modifiers(x.Modifiers)
	r.typeIdentifier(x.Type.OrDefault(describe.ErrorType()))
	r.e.Append("this")
	r.parameterList("[", x.Parameters.Parameters, "]")
	r.e.Append(" ")
	r.accessorList(x.Accessors)
	r.e.NewLine()
}

// typeIdentifier writes the type followed by a space.
func (r *Renderer) typeIdentifier(t describe.TypeIdentifier) {
	r.e.Append(t.Identifier).Append(" ")
}

// modifiers writes each modifier followed by a space.
func (r *Renderer) modifiers(l describe.ModifierList) {
	for _, m := range l.Modifiers.All() {
		r.e.Append(string(m)).Append(" ")
	}
}

func (r *Renderer) typeParameters(l describe.TypeParameterList) {
	if text, ok := l.Parameters.Get(); ok {
		r.e.Append(text)
	}
}

func (r *Renderer) parameter(p describe.Parameter) {
	r.modifiers(p.Modifiers)
	if t, ok := p.Type.Get(); ok {
		r.typeIdentifier(t)
	}
	r.e.Append(p.Identifier)
}

func (r *Renderer) parameterList(open string, ps immutable.Array[describe.Parameter], closing string) {
	r.e.Append(open)
	last := ps.Len() - 1
	for i, p := range ps.All() {
		r.parameter(p)
		if i < last {
			r.e.Append(", ")
		}
	}
	r.e.Append(closing)
}

func (r *Renderer) accessor(a describe.Accessor) {
	r.e.Append(a.Keyword).Append(";")
}

// accessorList writes "{ get; set; }" as a single append, so a lone brace
// never reaches an auto-indenting emitter.
func (r *Renderer) accessorList(l describe.AccessorList) {
	var b strings.Builder
	b.WriteString("{ ")
	for _, a := range l.Accessors.All() {
		b.WriteString(a.Keyword)
		b.WriteString("; ")
	}
	b.WriteString("}")
	r.e.Append(b.String())
}
