package describe

import (
	"github.com/jward/partialgen/internal/sum"
)

// Equal reports whether a and b are the same variant with structurally equal
// content. Sequence order is significant.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Using:
		y, ok := b.(Using)
		return ok && x.Equal(y)
	case TypeIdentifier:
		y, ok := b.(TypeIdentifier)
		return ok && x.Equal(y)
	case ModifierList:
		y, ok := b.(ModifierList)
		return ok && x.Equal(y)
	case TypeParameterList:
		y, ok := b.(TypeParameterList)
		return ok && x.Equal(y)
	case Parameter:
		y, ok := b.(Parameter)
		return ok && x.Equal(y)
	case ParameterList:
		y, ok := b.(ParameterList)
		return ok && x.Equal(y)
	case BracketedParameterList:
		y, ok := b.(BracketedParameterList)
		return ok && x.Equal(y)
	case Accessor:
		y, ok := b.(Accessor)
		return ok && x.Equal(y)
	case AccessorList:
		y, ok := b.(AccessorList)
		return ok && x.Equal(y)
	case Member:
		y, ok := b.(Member)
		return ok && x.Equal(y)
	}
	return false
}

func (u Using) Equal(o Using) bool { return u.Text == o.Text }

func (t TypeIdentifier) Equal(o TypeIdentifier) bool {
	return t.Kind == o.Kind && t.Identifier == o.Identifier
}

func (l ModifierList) Equal(o ModifierList) bool { return l.Modifiers.Equal(o.Modifiers) }

func (l TypeParameterList) Equal(o TypeParameterList) bool {
	return sum.OptionEqual(l.Parameters, o.Parameters, func(a, b string) bool { return a == b })
}

func typeEqual(a, b sum.Option[TypeIdentifier]) bool {
	return sum.OptionEqual(a, b, TypeIdentifier.Equal)
}

func (p Parameter) Equal(o Parameter) bool {
	return p.Identifier == o.Identifier &&
		p.Modifiers.Equal(o.Modifiers) &&
		typeEqual(p.Type, o.Type)
}

func (l ParameterList) Equal(o ParameterList) bool { return l.Parameters.Equal(o.Parameters) }

func (l BracketedParameterList) Equal(o BracketedParameterList) bool {
	return l.Parameters.Equal(o.Parameters)
}

func (a Accessor) Equal(o Accessor) bool { return a.Keyword == o.Keyword }

func (l AccessorList) Equal(o AccessorList) bool { return l.Accessors.Equal(o.Accessors) }

func (m Module) Equal(other Member) bool {
	o, ok := other.(Module)
	return ok &&
		m.IsTarget == o.IsTarget &&
		m.Usings.Equal(o.Usings) &&
		m.Members.Equal(o.Members)
}

func (n Namespace) Equal(other Member) bool {
	o, ok := other.(Namespace)
	return ok &&
		n.IsTarget == o.IsTarget &&
		n.Name == o.Name &&
		n.IsFileScoped == o.IsFileScoped &&
		n.Usings.Equal(o.Usings) &&
		n.Members.Equal(o.Members)
}

func (t NamedType) Equal(other Member) bool {
	o, ok := other.(NamedType)
	return ok &&
		t.IsTarget == o.IsTarget &&
		t.Keyword == o.Keyword &&
		t.Identifier == o.Identifier &&
		t.Arity == o.Arity &&
		t.Modifiers.Equal(o.Modifiers) &&
		t.TypeParameters.Equal(o.TypeParameters) &&
		t.Members.Equal(o.Members)
}

func (m Method) Equal(other Member) bool {
	o, ok := other.(Method)
	return ok &&
		m.IsTarget == o.IsTarget &&
		m.Identifier == o.Identifier &&
		m.Arity == o.Arity &&
		m.Modifiers.Equal(o.Modifiers) &&
		typeEqual(m.ReturnType, o.ReturnType) &&
		m.TypeParameters.Equal(o.TypeParameters) &&
		m.Parameters.Equal(o.Parameters)
}

func (p BaseProperty) baseEqual(o BaseProperty) bool {
	return p.IsTarget == o.IsTarget &&
		p.Modifiers.Equal(o.Modifiers) &&
		typeEqual(p.Type, o.Type) &&
		p.Accessors.Equal(o.Accessors)
}

func (p Property) Equal(other Member) bool {
	o, ok := other.(Property)
	return ok && p.Identifier == o.Identifier && p.baseEqual(o.BaseProperty)
}

func (x Indexer) Equal(other Member) bool {
	o, ok := other.(Indexer)
	return ok && x.Parameters.Equal(o.Parameters) && x.baseEqual(o.BaseProperty)
}
