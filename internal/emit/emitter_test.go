package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_ClassSkeleton(t *testing.T) {
	t.Parallel()
	e := New()
	e.Append("public class Test").NewLine().OpenBrace()
	e.Line("// ...")
	e.CloseBrace()

	assert.Equal(t, "public class Test\n{\n    // ...\n}\n", e.String())
	assert.Equal(t, 0, e.CurrentIndent())
}

func TestEmitter_AutoIndentOnBrace(t *testing.T) {
	t.Parallel()
	e := New(WithAutoIndentOnBrace(true))
	e.Line("public class Test")
	e.Line("{")
	e.Line("// ...")
	e.Line("}")

	assert.Equal(t, "public class Test\n{\n    // ...\n}\n", e.String())
	assert.Equal(t, 0, e.CurrentIndent())
}

func TestEmitter_AutoIndentDoesNotDoubleOpenBrace(t *testing.T) {
	t.Parallel()
	e := New(WithAutoIndentOnBrace(true))
	e.OpenBrace().Line("x;").CloseBrace()

	assert.Equal(t, "{\n    x;\n}\n", e.String())
}

func TestEmitter_BlankLinesHaveNoIndentation(t *testing.T) {
	t.Parallel()
	e := New()
	e.SetIndent(2)
	e.Line("a")
	e.Line("")
	e.Line("   ")
	e.NewLine()
	e.Line("b")

	assert.Equal(t, "        a\n\n\n\n        b\n", e.String())
}

func TestEmitter_IndentClampsAtZero(t *testing.T) {
	t.Parallel()
	e := New()
	e.Unindent().Unindent()
	assert.Equal(t, 0, e.CurrentIndent())

	e.SetIndent(-5)
	assert.Equal(t, 0, e.CurrentIndent())

	e.CloseBrace()
	assert.Equal(t, "}\n", e.String())
	assert.Equal(t, 0, e.CurrentIndent())
}

func TestEmitter_ScopesRestoreInLIFOOrder(t *testing.T) {
	t.Parallel()
	e := New()
	e.SetIndent(1)

	e.EnterScope(4)
	assert.Equal(t, 4, e.CurrentIndent())
	e.EnterScope(0)
	assert.Equal(t, 0, e.CurrentIndent())
	e.Indent()

	e.ExitScope()
	assert.Equal(t, 4, e.CurrentIndent())
	e.ExitScope()
	assert.Equal(t, 1, e.CurrentIndent())

	e.ExitScope()
	assert.Equal(t, 1, e.CurrentIndent(), "exit on empty scope stack is a no-op")
}

func TestEmitter_CustomTabAndNewLine(t *testing.T) {
	t.Parallel()
	e := New(WithTabString("\t"), WithNewLine("\r\n"))
	e.Line("ns").OpenBrace().Line("x").CloseBrace()

	assert.Equal(t, "ns\r\n{\r\n\tx\r\n}\r\n", e.String())
	assert.Equal(t, "\t", e.TabString())
}

func TestEmitter_LineLineAndFileMarker(t *testing.T) {
	t.Parallel()
	e := New()
	e.FileMarker()
	e.LineLine("using System;")
	e.Append("namespace N")

	assert.Equal(t, "#nullable enable\n\nusing System;\n\nnamespace N", e.String())
}

func TestEmitter_AppendEmptyKeepsTabsPending(t *testing.T) {
	t.Parallel()
	e := New()
	e.Indent()
	e.Append("")
	assert.True(t, e.TabsPending())
	assert.Equal(t, 0, e.Len())

	e.Append("x")
	assert.False(t, e.TabsPending())
	assert.Equal(t, "    x", e.String())
}

func TestEmitter_Reset(t *testing.T) {
	t.Parallel()
	e := New(WithTabString("  "))
	e.EnterScope(3).Line("x")
	e.Reset()

	assert.Empty(t, e.String())
	assert.Equal(t, 0, e.CurrentIndent())
	e.ExitScope()
	assert.Equal(t, 0, e.CurrentIndent())

	e.Indent().Line("y")
	assert.Equal(t, "  y\n", e.String())
}

func TestFenceLength(t *testing.T) {
	t.Parallel()
	tests := []struct {
		content string
		want    int
	}{
		{"", 3},
		{"plain", 3},
		{`a "quoted" b`, 3},
		{`""`, 3},
		{`"""`, 4},
		{`" """" "`, 5},
		{`"" """"""" "`, 8},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			t.Parallel()
			got := FenceLength(tt.content)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, tt.content, strings.Repeat(`"`, got))
		})
	}
}

func TestEmitter_RawStringLiteral(t *testing.T) {
	t.Parallel()
	e := New()
	e.SetIndent(2)
	e.Append("public static string Value =>").NewLine()
	e.RawStringLiteral(`" """" "`)
	e.Line("// after")

	want := "        public static string Value =>\n" +
		`"""""` + "\n" +
		`" """" "` + "\n" +
		`""""";` + "\n" +
		"        // after\n"
	assert.Equal(t, want, e.String())
	assert.Equal(t, 2, e.CurrentIndent())
}

func TestEmitter_RawStringLiteralFencedMinimum(t *testing.T) {
	t.Parallel()
	e := New()
	e.RawStringLiteralFenced(1, "x")

	require.Equal(t, "\"\"\"\nx\n\"\"\";\n", e.String())
}
