package csharp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/partialgen/internal/syntax"
)

const blockNamespaceSrc = `using System;
using System.Collections.Generic;

namespace Demo.App
{
    [Generate]
    public partial class Outer<T, U>
    {
        public partial int Count { get; set; }

        public partial string Name(int id, ref string value);

        public partial List<T> Items { get; init; }

        public partial int this[int index] { get; }

        private int field;

        public partial class Inner
        {
        }
    }
}
`

func parse(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func mustFind(t *testing.T, f *File, name string) *Node {
	t.Helper()
	n, ok := f.Find(name)
	require.True(t, ok, "declaration %q not found", name)
	return n
}

func TestParse_TypeDeclaration(t *testing.T) {
	t.Parallel()
	f := parse(t, blockNamespaceSrc)

	outer := mustFind(t, f, "Outer")
	assert.Equal(t, syntax.KindClass, outer.Kind())
	assert.Equal(t, []string{"public", "partial"}, outer.Modifiers())
	assert.Equal(t, "class", outer.Keyword())
	assert.Equal(t, "<T, U>", outer.TypeParameters())
	assert.Equal(t, 2, outer.Arity())
	assert.Equal(t, []string{"Generate"}, outer.Attributes())
	assert.Equal(t, 6, outer.Line(), "attribute lists belong to the declaration")

	var kinds []syntax.Kind
	for _, m := range outer.Members() {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.KindProperty, syntax.KindMethod, syntax.KindProperty,
		syntax.KindIndexer, syntax.KindOther, syntax.KindClass,
	}, kinds)
}

func TestParse_Context(t *testing.T) {
	t.Parallel()
	f := parse(t, blockNamespaceSrc)

	inner := mustFind(t, f, "Inner")
	outer := inner.Parent()
	require.NotNil(t, outer)
	assert.Equal(t, "Outer", outer.Identifier())

	ns := outer.Parent()
	require.NotNil(t, ns)
	assert.Equal(t, syntax.KindNamespace, ns.Kind())
	assert.Equal(t, "Demo.App", ns.Identifier())
	assert.Empty(t, ns.Usings())

	unit := ns.Parent()
	require.NotNil(t, unit)
	assert.Equal(t, syntax.KindCompilationUnit, unit.Kind())
	assert.Equal(t, []string{"using System;", "using System.Collections.Generic;"}, unit.Usings())
	assert.Nil(t, unit.Parent())
}

func TestParse_Members(t *testing.T) {
	t.Parallel()
	f := parse(t, blockNamespaceSrc)

	count := mustFind(t, f, "Count")
	assert.Equal(t, syntax.TypeRef{Text: "int", Kind: syntax.TypePredefined}, count.Type())
	acc, ok := count.Accessors()
	require.True(t, ok)
	assert.Equal(t, []string{"get", "set"}, acc)

	items := mustFind(t, f, "Items")
	assert.Equal(t, syntax.TypeRef{Text: "List<T>", Kind: syntax.TypeNamed}, items.Type())
	acc, ok = items.Accessors()
	require.True(t, ok)
	assert.Equal(t, []string{"get", "init"}, acc)

	name := mustFind(t, f, "Name")
	assert.Equal(t, syntax.KindMethod, name.Kind())
	assert.Equal(t, syntax.TypeRef{Text: "string", Kind: syntax.TypePredefined}, name.Type())
	params := name.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, "id", params[0].Identifier)
	assert.Equal(t, syntax.TypePredefined, params[0].Type.Kind)
	assert.Equal(t, "value", params[1].Identifier)
	assert.Equal(t, []string{"ref"}, params[1].Modifiers)
	assert.Equal(t, "string", params[1].Type.Text)
}

func TestParse_Indexer(t *testing.T) {
	t.Parallel()
	f := parse(t, blockNamespaceSrc)
	outer := mustFind(t, f, "Outer")

	var idx syntax.Node
	for _, m := range outer.Members() {
		if m.Kind() == syntax.KindIndexer {
			idx = m
		}
	}
	require.NotNil(t, idx)
	assert.Equal(t, "int", idx.Type().Text)
	params := idx.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "index", params[0].Identifier)
	acc, ok := idx.Accessors()
	require.True(t, ok)
	assert.Equal(t, []string{"get"}, acc)
}

func TestParse_ExpressionBodiedPropertyHasNoAccessorList(t *testing.T) {
	t.Parallel()
	f := parse(t, `public partial class A
{
    public partial int Value => 1;
}
`)
	value := mustFind(t, f, "Value")
	_, ok := value.Accessors()
	assert.False(t, ok)
}

func TestParse_FileScopedNamespace(t *testing.T) {
	t.Parallel()
	f := parse(t, `using System;

namespace Demo;

using System.Text;

public partial record Person
{
}

public class Plain
{
}
`)
	person := mustFind(t, f, "Person")
	assert.Equal(t, syntax.KindRecord, person.Kind())
	assert.Equal(t, "record", person.Keyword())

	ns := person.Parent()
	require.NotNil(t, ns)
	assert.Equal(t, syntax.KindFileScopedNamespace, ns.Kind())
	assert.Equal(t, "Demo", ns.Identifier())
	assert.Equal(t, []string{"using System.Text;"}, ns.Usings())

	var names []string
	for _, m := range ns.Members() {
		names = append(names, m.Identifier())
	}
	assert.Equal(t, []string{"Person", "Plain"}, names)

	unit := ns.Parent()
	require.NotNil(t, unit)
	assert.Equal(t, []string{"using System;"}, unit.Usings())
	require.Len(t, unit.Members(), 1)
	assert.Equal(t, syntax.KindFileScopedNamespace, unit.Members()[0].Kind())
}

func TestParse_RecordStructKeyword(t *testing.T) {
	t.Parallel()
	f := parse(t, `public partial record struct Point
{
}
`)
	point := mustFind(t, f, "Point")
	assert.Equal(t, syntax.KindRecord, point.Kind())
	assert.Equal(t, "record struct", point.Keyword())
}

func TestParse_QualifiedAttributes(t *testing.T) {
	t.Parallel()
	f := parse(t, `[Foo.Bar, Serializable]
[My.GenerateAttribute(1)]
public partial struct S
{
}
`)
	s := mustFind(t, f, "S")
	assert.Equal(t, []string{"Foo.Bar", "Serializable", "My.GenerateAttribute"}, s.Attributes())

	cache := syntax.NewNameCache()
	assert.True(t, cache.HasAttribute(s, "My.GenerateAttribute"))
	assert.True(t, cache.HasAttribute(s, "Foo.BarAttribute"))
}

func TestParser_Reuse(t *testing.T) {
	t.Parallel()
	p := NewParser()
	defer p.Close()

	for _, name := range []string{"A", "B"} {
		f, err := p.Parse(context.Background(), []byte("public partial class "+name+" { }"))
		require.NoError(t, err)
		_, ok := f.Find(name)
		assert.True(t, ok)
		f.Close()
	}
}

func TestParse_RecoversFromErrors(t *testing.T) {
	t.Parallel()
	f := parse(t, "public partial class {")
	assert.True(t, f.HasErrors())
}

func TestParse_BodilessTypes(t *testing.T) {
	t.Parallel()
	f := parse(t, `public partial struct Test<A,B>
{
    public partial class Innermost;
}
`)

	inner := mustFind(t, f, "Innermost")
	assert.Equal(t, syntax.KindClass, inner.Kind())
	assert.Equal(t, "class", inner.Keyword())
	assert.Equal(t, []string{"public", "partial"}, inner.Modifiers())
	assert.Empty(t, inner.Members())
	assert.Zero(t, inner.Arity())
	assert.Equal(t, 3, inner.Line())
	require.NotNil(t, inner.Parent())
	assert.Equal(t, "Test", inner.Parent().Identifier())

	var names []string
	for _, d := range f.Declarations() {
		names = append(names, d.Identifier())
	}
	assert.Equal(t, []string{"Test", "Innermost"}, names)
}

func TestParse_BodilessGenericRecord(t *testing.T) {
	t.Parallel()
	f := parse(t, `public partial class Outer
{
    internal partial record struct Pair<K, V>;
}
`)
	pair := mustFind(t, f, "Pair")
	assert.Equal(t, syntax.KindRecord, pair.Kind())
	assert.Equal(t, "record struct", pair.Keyword())
	assert.Equal(t, []string{"internal", "partial"}, pair.Modifiers())
	assert.Equal(t, "<K, V>", pair.TypeParameters())
	assert.Equal(t, 2, pair.Arity())
}

func TestParse_UnrecoverableErrorIsSkipped(t *testing.T) {
	t.Parallel()
	f := parse(t, "public partial class Broken {\n")
	assert.True(t, f.HasErrors())
	assert.Empty(t, f.Declarations())
}
