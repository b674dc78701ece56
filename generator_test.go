package partialgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jward/partialgen/internal/convert"
)

const widgetSource = `namespace Demo
{
    [Generate]
    public partial class Widget
    {
        public partial int Size { get; }

        public partial string Name(int id);
    }

    public partial class Plain
    {
    }
}
`

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)
	assert.Equal(t, convert.Context, g.Configuration())
	assert.Nil(t, g.Cache())
	assert.NoError(t, g.Close())
}

func TestTargets(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t)

	targets, err := g.Targets(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, targets, 2)

	assert.Equal(t, Target{
		File:       "widget.cs",
		Identifier: "Widget",
		Kind:       "class",
		Line:       3,
		HintName:   "Demo.Widget.g.cs",
		Attributes: []string{"Generate"},
	}, targets[0])
	assert.Equal(t, "Plain", targets[1].Identifier)
	assert.Equal(t, 11, targets[1].Line)
}

func TestTargets_AttributeFilter(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, WithAttribute("Demo.GenerateAttribute"))

	targets, err := g.Targets(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "Widget", targets[0].Identifier)
}

func TestGenerateSource(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, WithConfiguration(convert.All), WithAttribute("GenerateAttribute"))

	outs, err := g.GenerateSource(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, outs, 1)

	out := outs[0]
	assert.Equal(t, "widget.cs", out.Source)
	assert.Equal(t, "Widget", out.Target)
	assert.Equal(t, "Demo.Widget.g.cs", out.HintName)
	assert.False(t, out.Cached)
	assert.Len(t, out.Fingerprint, 64)
	assert.Equal(t, `#nullable enable

namespace Demo
{
    public partial class Widget
    {
        public partial int Size { get; }
        public partial string Name(int id) { }
    }
}
`, out.Text)
}

func TestGenerateSource_Options(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t,
		WithConfiguration(convert.Single),
		WithTabString("\t"),
		WithAutoIndentOnBrace(true),
		WithFileMarker(false),
	)

	outs, err := g.GenerateSource(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Equal(t, "public partial class Widget\n{\n}\n", outs[0].Text)
	assert.Equal(t, "public partial class Plain\n{\n}\n", outs[1].Text)
}

func TestGenerateSource_FingerprintTracksOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src := []byte(widgetSource)

	a, err := newTestGenerator(t).GenerateSource(ctx, "widget.cs", src)
	require.NoError(t, err)
	b, err := newTestGenerator(t).GenerateSource(ctx, "other.cs", src)
	require.NoError(t, err)
	c, err := newTestGenerator(t, WithTabString("\t")).GenerateSource(ctx, "widget.cs", src)
	require.NoError(t, err)

	assert.Equal(t, a[0].Fingerprint, b[0].Fingerprint, "file name is not part of the render")
	assert.NotEqual(t, a[0].Fingerprint, c[0].Fingerprint)
	assert.NotEqual(t, a[0].Fingerprint, a[1].Fingerprint)
}

func TestGenerateSource_Cache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "cache", "renders.db")

	g := newTestGenerator(t, WithCache(dbPath))
	require.NotNil(t, g.Cache())

	first, err := g.GenerateSource(ctx, "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	second, err := g.GenerateSource(ctx, "widget.cs", []byte(widgetSource))
	require.NoError(t, err)

	require.Len(t, second, 2)
	for i := range second {
		assert.False(t, first[i].Cached)
		assert.True(t, second[i].Cached)
		assert.Equal(t, first[i].Text, second[i].Text)
	}

	stats, err := g.Cache().Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Renders)
	assert.Equal(t, int64(2), stats.Hits)
}

func TestGenerateSource_CacheResetOnOptionChange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "renders.db")

	g, err := New(WithCache(dbPath))
	require.NoError(t, err)
	_, err = g.GenerateSource(ctx, "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.NoError(t, g.Close())

	same := newTestGenerator(t, WithCache(dbPath))
	stats, err := same.Cache().Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Renders, "same options keep the cache")
	require.NoError(t, same.Close())

	core, logs := observer.New(zapcore.InfoLevel)
	changed := newTestGenerator(t, WithCache(dbPath), WithTabString("\t"), WithLogger(zap.New(core)))
	stats, err = changed.Cache().Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Renders)
	assert.Equal(t, 1, logs.FilterMessage("render cache reset").Len())
}

func TestGenerateSource_SyntaxErrorsWarn(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	g := newTestGenerator(t, WithLogger(zap.New(core)))

	outs, err := g.GenerateSource(context.Background(), "broken.cs", []byte("public partial class Broken { void F( }\n"))
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "Broken", outs[0].Target)
	entries := logs.FilterMessage("source has syntax errors").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "broken.cs", entries[0].ContextMap()["file"])
}

func TestGenerateSource_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGenerator(t)
	_, err := g.GenerateSource(ctx, "widget.cs", []byte(widgetSource))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateSource_Script(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	g := newTestGenerator(t,
		WithConfiguration(convert.All),
		WithAttribute("Demo.GenerateAttribute"),
		WithScript(filepath.Join("scripts", "describe.risor")),
		WithLogger(zap.New(core)),
	)

	outs, err := g.GenerateSource(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, outs, 1)

	text := outs[0].Text
	assert.Contains(t, text, "    {\n        // class Widget\n")
	assert.Contains(t, text, "        // property Size of int\n")
	assert.Contains(t, text, "        // method Name returns string\n")
	assert.Contains(t, text, "        public const int DeclaredMembers = 2;\n")
	assert.Equal(t, 1, logs.FilterMessage("described Widget").Len())
}

func TestGenerateSource_ScriptFromFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"gen.risor":   {Data: []byte("import names\nline(names.banner(target))\n")},
		"names.risor": {Data: []byte("func banner(t) {\n    return '// generated for ' + t[\"identifier\"]\n}\n")},
	}
	g := newTestGenerator(t, WithScript("gen.risor"), WithScriptsFS(fsys), WithFileMarker(false))

	outs, err := g.GenerateSource(context.Background(), "widget.cs", []byte(widgetSource))
	require.NoError(t, err)
	require.Len(t, outs, 2)
	assert.Contains(t, outs[0].Text, "    public partial class Widget\n    {\n        // generated for Widget\n    }\n")
	assert.Contains(t, outs[1].Text, "// generated for Plain\n")
}

func TestNew_MissingScript(t *testing.T) {
	t.Parallel()
	_, err := New(WithScript(filepath.Join(t.TempDir(), "nope.risor")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load script")
}

func TestGenerateSource_ScriptError(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{"bad.risor": {Data: []byte("line(missing_helper(target))\n")}}
	g := newTestGenerator(t, WithScript("bad.risor"), WithScriptsFS(fsys))

	_, err := g.GenerateSource(context.Background(), "widget.cs", []byte(widgetSource))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate Widget in widget.cs")
}

func TestGenerateFiles_SerialMatchesParallel(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.cs", widgetSource),
		writeSource(t, dir, "b.cs", "public partial struct Point<T> { }\n"),
		writeSource(t, dir, "c.cs", "class NotPartial { }\n"),
		writeSource(t, dir, "d.cs", "namespace N; partial interface IShape { }\n"),
	}

	serial, err := newTestGenerator(t, WithParallel(false)).GenerateFiles(context.Background(), paths)
	require.NoError(t, err)
	parallel, err := newTestGenerator(t, WithWorkers(3)).GenerateFiles(context.Background(), paths)
	require.NoError(t, err)

	hints := make([]string, len(serial))
	for i, o := range serial {
		hints[i] = o.HintName
	}
	assert.Equal(t, []string{"Demo.Widget.g.cs", "Demo.Plain.g.cs", "Point`1.g.cs", "N.IShape.g.cs"}, hints)
	assert.Equal(t, serial, parallel)
}

func TestGenerateFiles_ParallelCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.cs", widgetSource),
		writeSource(t, dir, "b.cs", "public partial struct Point<T> { }\n"),
	}
	g := newTestGenerator(t, WithCache(filepath.Join(dir, "renders.db")), WithWorkers(2))

	first, err := g.GenerateFiles(ctx, paths)
	require.NoError(t, err)
	second, err := g.GenerateFiles(ctx, paths)
	require.NoError(t, err)

	require.Len(t, second, 3)
	for i := range second {
		assert.False(t, first[i].Cached)
		assert.True(t, second[i].Cached, second[i].HintName)
	}
	stats, err := g.Cache().Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Renders)
	assert.Equal(t, int64(3), stats.Hits)
}

func TestGenerateFiles_MissingFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.cs", widgetSource),
		filepath.Join(dir, "missing.cs"),
	}

	_, err := newTestGenerator(t, WithParallel(false)).GenerateFiles(context.Background(), paths)
	require.Error(t, err)

	_, err = newTestGenerator(t).GenerateFiles(context.Background(), paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parallel generation had 1 error(s)")
	assert.Contains(t, err.Error(), "missing.cs")
}

func TestGenerateFiles_Cancelled(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := []string{
		writeSource(t, dir, "a.cs", widgetSource),
		writeSource(t, dir, "b.cs", widgetSource),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(t).GenerateFiles(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = newTestGenerator(t, WithParallel(false)).GenerateFiles(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}
