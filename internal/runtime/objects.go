package runtime

import (
	"github.com/risor-io/risor/object"

	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/immutable"
)

// Description nodes reach scripts as plain Risor maps. Proxies would expose
// the immutable containers' Go methods, which scripts cannot iterate.

func namedTypeObject(t describe.NamedType) *object.Map {
	m := memberFields(t, t.Identifier)
	m["keyword"] = object.NewString(t.Keyword)
	m["arity"] = object.NewInt(int64(t.Arity))
	m["type_parameters"] = object.NewString(typeParams(t.TypeParameters))
	m["members"] = membersObject(t.Members)
	return object.NewMap(m)
}

func membersObject(ms immutable.Array[describe.Member]) *object.List {
	items := make([]object.Object, 0, ms.Len())
	for _, m := range ms.All() {
		items = append(items, memberObject(m))
	}
	return object.NewList(items)
}

func memberObject(m describe.Member) *object.Map {
	switch v := m.(type) {
	case describe.NamedType:
		return namedTypeObject(v)
	case describe.Method:
		fields := memberFields(v, v.Identifier)
		fields["type"] = typeObject(v.ReturnType.OrDefault(describe.ErrorType()))
		fields["type_parameters"] = object.NewString(typeParams(v.TypeParameters))
		fields["arity"] = object.NewInt(int64(v.Arity))
		fields["parameters"] = parametersObject(v.Parameters.Parameters)
		return object.NewMap(fields)
	case describe.Property:
		fields := memberFields(v, v.Identifier)
		fields["type"] = typeObject(v.Type.OrDefault(describe.ErrorType()))
		fields["accessors"] = accessorsObject(v.Accessors)
		return object.NewMap(fields)
	case describe.Indexer:
		fields := memberFields(v, "this")
		fields["type"] = typeObject(v.Type.OrDefault(describe.ErrorType()))
		fields["accessors"] = accessorsObject(v.Accessors)
		fields["parameters"] = parametersObject(v.Parameters.Parameters)
		return object.NewMap(fields)
	case describe.Namespace:
		fields := memberFields(v, v.Name)
		fields["members"] = membersObject(v.Members)
		return object.NewMap(fields)
	}
	return object.NewMap(memberFields(m, ""))
}

func memberFields(m describe.Member, identifier string) map[string]object.Object {
	return map[string]object.Object{
		"kind":       object.NewString(describe.KindName(m)),
		"identifier": object.NewString(identifier),
		"modifiers":  stringsObject(m.DeclaredModifiers().Modifiers),
		"is_target":  object.NewBool(m.IsTargetNode()),
	}
}

func typeObject(t describe.TypeIdentifier) *object.Map {
	return object.NewMap(map[string]object.Object{
		"name": object.NewString(t.Identifier),
		"kind": object.NewString(t.Kind.String()),
	})
}

func parametersObject(ps immutable.Array[describe.Parameter]) *object.List {
	items := make([]object.Object, 0, ps.Len())
	for _, p := range ps.All() {
		fields := map[string]object.Object{
			"identifier": object.NewString(p.Identifier),
			"modifiers":  stringsObject(p.Modifiers.Modifiers),
			"type":       object.Nil,
		}
		if t, ok := p.Type.Get(); ok {
			fields["type"] = typeObject(t)
		}
		items = append(items, object.NewMap(fields))
	}
	return object.NewList(items)
}

func accessorsObject(l describe.AccessorList) *object.List {
	items := make([]object.Object, 0, l.Accessors.Len())
	for _, a := range l.Accessors.All() {
		items = append(items, object.NewString(a.Keyword))
	}
	return object.NewList(items)
}

func stringsObject(ss immutable.Array[immutable.String]) *object.List {
	items := make([]object.Object, 0, ss.Len())
	for _, s := range ss.All() {
		items = append(items, object.NewString(string(s)))
	}
	return object.NewList(items)
}

func typeParams(l describe.TypeParameterList) string {
	return l.Parameters.OrDefault("")
}
