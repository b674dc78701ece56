// Package runtime embeds a Risor VM for generator scripts. A script fills
// in the body of a target type: it sees the type's description as the
// "target" global and writes through emitter host functions.
package runtime

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/risor-io/risor"
	"github.com/risor-io/risor/importer"
	"go.uber.org/zap"

	"github.com/jward/partialgen/internal/describe"
	"github.com/jward/partialgen/internal/emit"
	"github.com/jward/partialgen/internal/render"
)

// ScriptExtension is the file extension of generator scripts and of the
// modules they import.
const ScriptExtension = ".risor"

// Runtime runs generator scripts.
type Runtime struct {
	scriptsDir string
	fsys       fs.FS
	logger     *zap.Logger
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithRuntimeFS configures the Runtime to load scripts from an fs.FS
// instead of from disk. Also configures the Risor importer to use
// FSImporter for import statement resolution.
func WithRuntimeFS(fsys fs.FS) RuntimeOption {
	return func(r *Runtime) {
		r.fsys = fsys
	}
}

// WithLogger sets the logger behind the scripts' log global.
func WithLogger(l *zap.Logger) RuntimeOption {
	return func(r *Runtime) {
		r.logger = l
	}
}

// NewRuntime creates a Runtime that resolves relative script paths and
// imports against scriptsDir.
func NewRuntime(scriptsDir string, opts ...RuntimeOption) *Runtime {
	r := &Runtime{scriptsDir: scriptsDir}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// RunScript loads and executes a Risor script with the standard globals
// plus any extra globals provided by the caller.
func (r *Runtime) RunScript(ctx context.Context, scriptPath string, extraGlobals map[string]any) error {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return err
	}
	return r.eval(ctx, src, scriptPath, extraGlobals)
}

// RunSource executes Risor source code directly with the standard globals
// plus any extra globals.
func (r *Runtime) RunSource(ctx context.Context, source string, extraGlobals map[string]any) error {
	return r.eval(ctx, source, "<inline>", extraGlobals)
}

// TypeBodyHook loads the script at scriptPath once and returns a type body
// hook that runs it for the target type. Non-target types are left alone.
func (r *Runtime) TypeBodyHook(ctx context.Context, scriptPath string) (render.TypeBodyFunc, error) {
	src, err := r.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return r.typeBodyHook(ctx, src, scriptPath), nil
}

// TypeBodySourceHook is TypeBodyHook for inline script source.
func (r *Runtime) TypeBodySourceHook(ctx context.Context, source string) render.TypeBodyFunc {
	return r.typeBodyHook(ctx, source, "<inline>")
}

func (r *Runtime) typeBodyHook(ctx context.Context, source, label string) render.TypeBodyFunc {
	return func(e *emit.Emitter, t describe.NamedType) error {
		if !t.IsTarget {
			return nil
		}
		globals := emitterGlobals(e)
		globals["target"] = namedTypeObject(t)
		return r.eval(ctx, source, label, globals)
	}
}

func (r *Runtime) eval(ctx context.Context, source, label string, extraGlobals map[string]any) error {
	globals := r.buildGlobals(extraGlobals)

	var opts []risor.Option
	for name, val := range globals {
		opts = append(opts, risor.WithGlobal(name, val))
	}

	// Wire importer so Risor import statements resolve correctly.
	if imp := r.buildImporter(globals); imp != nil {
		opts = append(opts, risor.WithImporter(imp))
	}

	if _, err := risor.Eval(ctx, source, opts...); err != nil {
		return errors.Wrapf(err, "runtime: script %s", label)
	}
	return nil
}

// buildImporter returns a Risor importer configured for the Runtime's script source.
// Returns nil if neither fs.FS nor scriptsDir is configured.
func (r *Runtime) buildImporter(globals map[string]any) importer.Importer {
	globalNames := make([]string, 0, len(globals))
	for name := range globals {
		globalNames = append(globalNames, name)
	}

	if r.fsys != nil {
		return importer.NewFSImporter(importer.FSImporterOptions{
			GlobalNames: globalNames,
			SourceFS:    r.fsys,
			Extensions:  []string{ScriptExtension},
		})
	}
	if r.scriptsDir != "" {
		return importer.NewLocalImporter(importer.LocalImporterOptions{
			GlobalNames: globalNames,
			SourceDir:   r.scriptsDir,
			Extensions:  []string{ScriptExtension},
		})
	}
	return nil
}

// LoadScript reads a .risor file and returns its source code.
// When an fs.FS is configured, uses fs.ReadFile on that filesystem.
// Otherwise, uses os.ReadFile with scriptsDir as the base directory.
func (r *Runtime) LoadScript(path string) (string, error) {
	if r.fsys != nil {
		// For fs.FS, strip any leading path separator so the path is
		// relative within the FS (e.g., "/gen/body.risor" -> "gen/body.risor").
		fsPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
		data, err := fs.ReadFile(r.fsys, fsPath)
		if err != nil {
			return "", errors.Wrapf(err, "runtime: loading script %s from fs", fsPath)
		}
		return string(data), nil
	}

	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(r.scriptsDir, path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", errors.Wrapf(err, "runtime: loading script %s", fullPath)
	}
	return string(data), nil
}

// buildGlobals constructs the full set of globals exposed to Risor scripts.
func (r *Runtime) buildGlobals(extra map[string]any) map[string]any {
	globals := map[string]any{
		"log": mustProxy(&logObject{logger: r.logger.Named("script")}),
	}
	for k, v := range extra {
		globals[k] = v
	}
	return globals
}
