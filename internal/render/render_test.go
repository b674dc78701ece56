package render

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/partialgen/internal/convert"
	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/emit"
	"github.com/jward/partialgen/internal/immutable"
	"github.com/jward/partialgen/internal/sum"
	"github.com/jward/partialgen/internal/syntax"
	"github.com/jward/partialgen/internal/syntax/syntaxtest"
)

const myClassAll = `#nullable enable

public partial class MyClass<T,U>
{
    public partial int Main<T>(T value, string str) { }
    public partial int Value { get; }
    public partial int this[int index] { get; }
    public partial struct Test<A,B>
    {
        public partial class Innermost
        {
        }
    }
}
`

func convertMyClass(t *testing.T, name string, cfg convert.Configuration) describe.Module {
	t.Helper()
	got, err := convert.Convert(context.Background(), syntaxtest.Find(syntaxtest.MyClass(), name), cfg)
	require.NoError(t, err)
	require.True(t, got.IsSome())
	return got.Value()
}

func TestRender_MyClassAll(t *testing.T) {
	t.Parallel()
	out, err := ToString(convertMyClass(t, "MyClass", convert.All))
	require.NoError(t, err)
	assert.Equal(t, myClassAll, out)
}

func TestRender_InnermostContext(t *testing.T) {
	t.Parallel()
	out, err := ToString(convertMyClass(t, "Innermost", convert.Context), WithFileMarker(false))
	require.NoError(t, err)
	assert.Equal(t, `public partial class MyClass<T,U>
{
    public partial struct Test<A,B>
    {
        public partial class Innermost
        {
        }
    }
}
`, out)
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()
	tree := convertMyClass(t, "MyClass", convert.All)
	for _, opts := range [][]emit.Option{
		nil,
		{emit.WithTabString("\t")},
		{emit.WithAutoIndentOnBrace(true)},
	} {
		a, err := ToString(tree, WithEmitterOptions(opts...))
		require.NoError(t, err)
		b, err := ToString(tree, WithEmitterOptions(opts...))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRender_AutoIndentMatchesManual(t *testing.T) {
	t.Parallel()
	tree := convertMyClass(t, "MyClass", convert.All)
	auto, err := ToString(tree, WithEmitterOptions(emit.WithAutoIndentOnBrace(true)))
	require.NoError(t, err)
	assert.Equal(t, myClassAll, auto)
}

func TestRender_NamespacesAndUsings(t *testing.T) {
	t.Parallel()
	typ := describe.NamedType{
		Modifiers:  describe.Modifiers("internal", "partial"),
		Keyword:    "record struct",
		Identifier: "Point",
		IsTarget:   true,
	}
	block := describe.Namespace{
		Name:   "Demo",
		Usings: immutable.NewArray(describe.Using{Text: "using System.Linq;"}),
	}.WithMembers(typ)
	fileScoped := describe.Namespace{Name: "Demo", IsFileScoped: true}.WithMembers(typ)
	usings := immutable.NewArray(describe.Using{Text: "using System;"})

	tests := []struct {
		name string
		mod  describe.Module
		want string
	}{
		{
			name: "block namespace",
			mod:  describe.Module{Usings: usings}.WithMembers(block),
			want: "#nullable enable\n\nusing System;\n\nnamespace Demo\n{\n    using System.Linq;\n\n" +
				"    internal partial record struct Point\n    {\n    }\n}\n",
		},
		{
			name: "file scoped namespace",
			mod:  describe.Module{Usings: usings}.WithMembers(fileScoped),
			want: "#nullable enable\n\nusing System;\n\nnamespace Demo;\n\n" +
				"internal partial record struct Point\n{\n}\n",
		},
		{
			name: "top level members separated",
			mod:  describe.Module{}.WithMembers(typ, typ),
			want: "#nullable enable\n\n" +
				"internal partial record struct Point\n{\n}\n\n" +
				"internal partial record struct Point\n{\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := ToString(tt.mod)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRender_MissingTypes(t *testing.T) {
	t.Parallel()
	method := describe.Method{
		Modifiers:  describe.Modifiers("partial"),
		Identifier: "M",
		Parameters: describe.ParameterList{Parameters: immutable.NewArray(
			describe.Parameter{Modifiers: describe.Modifiers("params"), Identifier: "rest"},
		)},
	}
	prop := describe.Property{
		BaseProperty: describe.BaseProperty{
			Accessors: describe.AccessorList{Accessors: immutable.NewArray(
				describe.Accessor{Keyword: "get"}, describe.Accessor{Keyword: "set"},
			)},
		},
		Identifier: "P",
	}

	out, err := ToString(describe.Module{}.WithMembers(method, prop), WithFileMarker(false))
	require.NoError(t, err)
	assert.Equal(t, "partial MISSING M(params rest) { }\n\nMISSING P { get; set; }\n", out)
}

func TestRender_Hooks(t *testing.T) {
	t.Parallel()
	tree := convertMyClass(t, "Test", convert.All)

	out, err := ToString(tree, WithFileMarker(false), WithHooks(Hooks{
		TypeBody: func(e *emit.Emitter, t describe.NamedType) error {
			e.Line("// body of " + t.Identifier)
			return nil
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, `public partial class MyClass<T,U>
{
    // body of MyClass
    public partial struct Test<A,B>
    {
        // body of Test
        public partial class Innermost
        {
            // body of Innermost
        }
    }
}
`, out)
}

func TestRender_MethodBodyHook(t *testing.T) {
	t.Parallel()
	method := describe.Method{
		Modifiers:  describe.Modifiers("public", "partial"),
		ReturnType: sum.Some(describe.TypeIdentifier{Identifier: "string", Kind: describe.KindPredefined}),
		Identifier: "Name",
	}
	r := New(WithFileMarker(false), WithMethodBody(func(e *emit.Emitter, m describe.Method) error {
		e.Append(" =>").NewLine().Indent()
		e.Line(`"` + m.Identifier + `";`)
		e.Unindent()
		return nil
	}))
	require.NoError(t, r.Render(describe.NamedType{Keyword: "class", Identifier: "A"}.WithMembers(method)))
	assert.Equal(t, "class A\n{\n    public partial string Name() =>\n        \"Name\";\n}\n", r.String())
}

func TestRender_HookErrorAborts(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	_, err := ToString(convertMyClass(t, "MyClass", convert.Single), WithTypeBody(func(*emit.Emitter, describe.NamedType) error {
		return boom
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "MyClass")
}

func TestRender_Fragments(t *testing.T) {
	t.Parallel()
	params := immutable.NewArray(
		describe.Parameter{Type: sum.Some(describe.TypeIdentifier{Identifier: "int", Kind: describe.KindPredefined}), Identifier: "a"},
		describe.Parameter{Type: sum.Some(describe.TypeIdentifier{Identifier: "T", Kind: describe.KindIdentifier}), Identifier: "b"},
	)
	tests := []struct {
		node describe.Node
		want string
	}{
		{describe.ParameterList{}, "()"},
		{describe.ParameterList{Parameters: params}, "(int a, T b)"},
		{describe.BracketedParameterList{Parameters: params}, "[int a, T b]"},
		{describe.GetterOnly(), "{ get; }"},
		{describe.AccessorList{}, "{ }"},
		{describe.Modifiers("public", "static"), "public static "},
		{describe.ErrorType(), "MISSING "},
		{describe.TypeParameters("<T>"), "<T>"},
		{describe.TypeParameterList{}, ""},
		{describe.Using{Text: "using X;"}, "using X;\n"},
	}
	for _, tt := range tests {
		out, err := ToString(tt.node)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out, describe.KindName(tt.node))
	}
}

func TestRender_FromSyntaxMissingReturn(t *testing.T) {
	t.Parallel()
	root := syntaxtest.Link(&syntaxtest.Node{
		K: syntax.KindCompilationUnit,
		Children: []*syntaxtest.Node{{
			K: syntax.KindMethod, Mods: []string{"partial"}, Name: "Run",
		}},
	})
	got, err := convert.Convert(context.Background(), syntaxtest.Find(root, "Run"), convert.Context)
	require.NoError(t, err)

	out, err := ToString(got.Value(), WithFileMarker(false))
	require.NoError(t, err)
	assert.Equal(t, "partial MISSING Run() { }\n", out)
}
