package partialgen

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/jward/partialgen/internal/convert"
	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/emit"
	"github.com/jward/partialgen/internal/logging"
	"github.com/jward/partialgen/internal/render"
	genrt "github.com/jward/partialgen/internal/runtime"
	"github.com/jward/partialgen/internal/store"
	"github.com/jward/partialgen/internal/syntax"
	"github.com/jward/partialgen/internal/syntax/csharp"
)

// Generator turns C# sources into partial declarations.
type Generator struct {
	cfg        convert.Configuration
	tab        string
	autoBrace  bool
	fileMarker bool
	attribute  string

	cachePath string
	cache     *store.Store

	scriptPath string
	scriptsFS  fs.FS
	script     string
	runtime    *genrt.Runtime

	converter  *convert.Converter
	logger     *zap.Logger
	optionsKey string

	// useParallel enables the worker pool in GenerateFiles.
	useParallel bool
	workers     int
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfiguration selects what each conversion includes. Defaults to
// convert.Context.
func WithConfiguration(cfg convert.Configuration) Option {
	return func(g *Generator) {
		g.cfg = cfg
	}
}

// WithTabString sets one level of indentation in the output.
func WithTabString(tab string) Option {
	return func(g *Generator) {
		g.tab = tab
	}
}

// WithAutoIndentOnBrace makes the emitter indent after "{" and unindent
// before "}" appended on their own.
func WithAutoIndentOnBrace(enabled bool) Option {
	return func(g *Generator) {
		g.autoBrace = enabled
	}
}

// WithFileMarker controls the "#nullable enable" header. Enabled by default.
func WithFileMarker(enabled bool) Option {
	return func(g *Generator) {
		g.fileMarker = enabled
	}
}

// WithAttribute restricts targets to types carrying the attribute with
// this full name, e.g. "Demo.GenerateAttribute".
func WithAttribute(fullName string) Option {
	return func(g *Generator) {
		g.attribute = fullName
	}
}

// WithCache keeps renders in a SQLite database at dbPath.
func WithCache(dbPath string) Option {
	return func(g *Generator) {
		g.cachePath = dbPath
	}
}

// WithScript fills each target's type body by running the Risor script at
// path.
func WithScript(path string) Option {
	return func(g *Generator) {
		g.scriptPath = path
	}
}

// WithScriptsFS loads the script and its imports from fsys instead of
// from disk. This enables embedding scripts via go:embed.
func WithScriptsFS(fsys fs.FS) Option {
	return func(g *Generator) {
		g.scriptsFS = fsys
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithParallel controls the worker pool in GenerateFiles. When true
// (default), files are parsed and rendered by a pool of workers, each with
// its own parser.
func WithParallel(parallel bool) Option {
	return func(g *Generator) {
		g.useParallel = parallel
	}
}

// WithWorkers caps the worker pool. Zero or less means one worker per CPU.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// New creates a Generator. It opens the render cache, if any, and drops
// cached renders made with different render options.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:         convert.Context,
		tab:         emit.DefaultTabString,
		fileMarker:  true,
		useParallel: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	g.converter = convert.New(convert.WithNameCache(syntax.NewNameCache()))

	if err := g.loadScript(); err != nil {
		return nil, err
	}
	g.optionsKey = g.optionsFingerprint()

	if g.cachePath != "" {
		if err := g.openCache(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Generator) loadScript() error {
	if g.scriptPath == "" {
		return nil
	}
	rtOpts := []genrt.RuntimeOption{genrt.WithLogger(g.logger)}
	name := g.scriptPath
	dir := ""
	if g.scriptsFS != nil {
		rtOpts = append(rtOpts, genrt.WithRuntimeFS(g.scriptsFS))
	} else {
		// Imports resolve next to the script.
		dir, name = filepath.Split(g.scriptPath)
		if dir == "" {
			dir = "."
		}
	}
	g.runtime = genrt.NewRuntime(dir, rtOpts...)

	src, err := g.runtime.LoadScript(name)
	if err != nil {
		return errors.Wrap(err, "partialgen: load script")
	}
	g.script = src
	return nil
}

func (g *Generator) openCache() error {
	if dir := filepath.Dir(g.cachePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "partialgen: create cache directory")
		}
	}
	s, err := store.Open(g.cachePath)
	if err != nil {
		return errors.Wrap(err, "partialgen: open cache")
	}
	reset, err := s.EnsureMetadata(store.MetaOptions, g.optionsKey)
	if err != nil {
		s.Close()
		return errors.Wrap(err, "partialgen: check cache options")
	}
	if reset {
		g.logger.Info("render cache reset", zap.String("cache", g.cachePath))
	}
	g.cache = s
	return nil
}

// optionsFingerprint covers everything besides the description tree that
// shapes rendered text.
func (g *Generator) optionsFingerprint() string {
	return store.Key(
		Version,
		g.cfg.String(),
		g.tab,
		strconv.FormatBool(g.autoBrace),
		strconv.FormatBool(g.fileMarker),
		g.script,
	)
}

// Close releases the render cache.
func (g *Generator) Close() error {
	if g.cache == nil {
		return nil
	}
	return g.cache.Close()
}

// Cache returns the render cache, or nil when none is configured.
func (g *Generator) Cache() *store.Store {
	return g.cache
}

// Configuration returns the conversion configuration in use.
func (g *Generator) Configuration() convert.Configuration {
	return g.cfg
}

// cacheFor returns the cache as an interface without wrapping a nil store.
func (g *Generator) cacheFor() store.Cache {
	if g.cache == nil {
		return nil
	}
	return g.cache
}

// Targets parses src and lists the declarations output would be generated
// for.
func (g *Generator) Targets(ctx context.Context, filename string, src []byte) ([]Target, error) {
	f, err := csharp.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Target
	for _, n := range g.converter.Targets(f.Root(), g.attribute) {
		t := Target{
			File:       filename,
			Identifier: n.Identifier(),
			Kind:       n.Kind().String(),
			HintName:   HintName(n),
			Attributes: n.Attributes(),
		}
		if cn, ok := n.(*csharp.Node); ok {
			t.Line = cn.Line()
		}
		out = append(out, t)
	}
	return out, nil
}

// GenerateSource generates output for every target in src.
func (g *Generator) GenerateSource(ctx context.Context, filename string, src []byte) ([]Output, error) {
	p := csharp.NewParser()
	defer p.Close()
	return g.generate(ctx, p, g.cacheFor(), filename, src)
}

func (g *Generator) generate(ctx context.Context, p *csharp.Parser, cache store.Cache, filename string, src []byte) ([]Output, error) {
	f, err := p.Parse(ctx, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	defer f.Close()
	if f.HasErrors() {
		g.logger.Warn("source has syntax errors", zap.String("file", filename))
	}

	var outs []Output
	for _, n := range g.converter.Targets(f.Root(), g.attribute) {
		out, ok, err := g.generateTarget(ctx, cache, filename, n)
		if err != nil {
			return nil, errors.Wrapf(err, "generate %s in %s", n.Identifier(), filename)
		}
		if ok {
			outs = append(outs, out)
		}
	}
	return outs, nil
}

func (g *Generator) generateTarget(ctx context.Context, cache store.Cache, filename string, n syntax.Node) (Output, bool, error) {
	start := time.Now()
	converted, err := g.converter.Convert(ctx, n, g.cfg)
	if err != nil {
		return Output{}, false, err
	}
	mod, ok := converted.Get()
	if !ok {
		return Output{}, false, nil
	}

	out := Output{
		Source:      filename,
		Target:      n.Identifier(),
		HintName:    HintName(n),
		Fingerprint: store.Key(describe.Fingerprint(mod), g.optionsKey),
	}
	if cache != nil {
		r, hit, err := cache.Get(out.Fingerprint)
		if err != nil {
			return Output{}, false, err
		}
		if hit {
			out.Text, out.Cached = r.Output, true
		}
	}
	if !out.Cached {
		if out.Text, err = g.render(ctx, mod); err != nil {
			return Output{}, false, err
		}
		if cache != nil {
			if err := cache.Put(store.Render{Fingerprint: out.Fingerprint, HintName: out.HintName, Output: out.Text}); err != nil {
				return Output{}, false, err
			}
		}
	}

	g.logger.Debug("generated",
		zap.String("file", filename),
		zap.String("target", out.Target),
		zap.String("fingerprint", out.Fingerprint[:12]),
		zap.Bool("cached", out.Cached),
		logging.DurationMS(time.Since(start).Milliseconds()),
	)
	return out, true, nil
}

func (g *Generator) render(ctx context.Context, mod describe.Module) (string, error) {
	opts := []render.Option{
		render.WithEmitterOptions(emit.WithTabString(g.tab), emit.WithAutoIndentOnBrace(g.autoBrace)),
		render.WithFileMarker(g.fileMarker),
	}
	if g.runtime != nil {
		opts = append(opts, render.WithTypeBody(g.runtime.TypeBodySourceHook(ctx, g.script)))
	}
	return render.ToString(mod, opts...)
}
