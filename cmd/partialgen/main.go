package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jward/partialgen"
	"github.com/jward/partialgen/internal/config"
	"github.com/jward/partialgen/internal/logging"
	"github.com/jward/partialgen/scripts"
)

var (
	flagConfig  string
	flagFormat  string
	flagLogJSON bool
	flagVerbose bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// Resolved by the root command before any subcommand runs.
var (
	v      = config.New()
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	defer func() { _ = logger.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "partialgen",
	Short: "Generate C# partial declarations from source",
	Long: "Partialgen finds partial types in C# sources and writes a matching partial declaration for each, " +
		"optionally filling type bodies with a Risor script.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		logger = logging.New(logging.Options{JSON: flagLogJSON, Verbose: flagVerbose})
		return loadConfig(v)
	},
	// No Run: prints help by default.
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default: nearest "+config.FileName+")")
	pf.StringVar(&flagFormat, "format", "text", "output format: json|text")
	pf.BoolVar(&flagLogJSON, "log-json", false, "write logs as JSON")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	pf.String("mode", "", "conversion mode: single|context|all")
	pf.String("tab", "", "indentation string for one level")
	pf.Bool("auto-brace", false, "indent after and unindent before lone braces")
	pf.Bool("file-marker", true, "write the #nullable enable header")
	pf.String("attribute", "", "only generate for types with this attribute, e.g. Demo.GenerateAttribute")
	pf.String("cache", "", "render cache database path, relative to the repository root")
	pf.String("script", "", "Risor script filling type bodies (falls back to the bundled scripts)")
	pf.Int("workers", 0, "worker pool size (default: one per CPU)")
	bindFlag("mode", "mode")
	bindFlag("tab_string", "tab")
	bindFlag("auto_indent_on_brace", "auto-brace")
	bindFlag("file_marker", "file-marker")
	bindFlag("attribute", "attribute")
	bindFlag("cache_path", "cache")
	bindFlag("script", "script")
	bindFlag("workers", "workers")

	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cacheCmd)
}

// bindFlag lets a persistent flag override the config key when it is set.
func bindFlag(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// loadConfig merges the config file into v and resolves cfg. Flags override
// the environment, which overrides the file and the defaults.
func loadConfig(v *viper.Viper) error {
	if err := config.ReadFile(v, flagConfig); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// newGenerator builds a Generator from cfg. repoRoot anchors a relative
// cache path; an empty repoRoot disables the cache.
func newGenerator(repoRoot string) (*partialgen.Generator, error) {
	opts := []partialgen.Option{
		partialgen.WithConfiguration(cfg.Configuration()),
		partialgen.WithTabString(cfg.TabString),
		partialgen.WithAutoIndentOnBrace(cfg.AutoIndentOnBrace),
		partialgen.WithFileMarker(cfg.FileMarker),
		partialgen.WithAttribute(cfg.Attribute),
		partialgen.WithWorkers(cfg.Workers),
		partialgen.WithLogger(logger),
	}
	if repoRoot != "" && cfg.CachePath != "" {
		opts = append(opts, partialgen.WithCache(resolveCachePath(repoRoot, cfg.CachePath)))
	}
	if cfg.Script != "" {
		opts = append(opts, partialgen.WithScript(cfg.Script))
		// Script source: a file on disk wins over the bundled scripts.
		if _, err := os.Stat(cfg.Script); err != nil {
			opts = append(opts, partialgen.WithScriptsFS(scripts.FS))
		}
	}

	g, err := partialgen.New(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating generator")
	}
	return g, nil
}

// resolveTargetDir returns the absolute path of the directory to process.
func resolveTargetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving path %q", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Newf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf("not a directory: %s", abs)
	}
	return abs, nil
}

// findRepoRoot walks up from startDir looking for a .git directory.
// Returns the directory containing .git, or startDir if not found.
func findRepoRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root without finding .git.
			return startDir
		}
		dir = parent
	}
}

// resolveCachePath anchors a relative cache path at the repository root.
func resolveCachePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}
