package main

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/partialgen"
	"github.com/jward/partialgen/internal/discover"
	"github.com/jward/partialgen/internal/logging"
)

var (
	flagOut     string
	flagInclude []string
	flagExclude []string
	flagDryRun  bool
	flagCheck   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate partial declarations for every C# file under a directory",
	Long: "Discovers C# sources (git ls-files when available), generates a partial declaration per target " +
		"and writes each to <out>/<hint name>, or next to its source when no output directory is set.",
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addFileFlags(generateCmd)
	generateCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "generate without writing files")
	generateCmd.Flags().BoolVar(&flagCheck, "check", false, "write nothing; fail and print patches when generated files are out of date")
}

// addFileFlags registers the discovery and output flags shared by generate
// and watch.
func addFileFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagOut, "out", "o", "", "output directory (default: next to each source)")
	cmd.Flags().StringSliceVar(&flagInclude, "include", nil, "include glob, repeatable (default from config)")
	cmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "exclude glob, repeatable (default from config)")
}

// fileSettings applies the file flags over the loaded config.
func fileSettings(cmd *cobra.Command) (*discover.Matcher, string, error) {
	include, exclude, outDir := cfg.Include, cfg.Exclude, cfg.OutDir
	if cmd.Flags().Changed("include") {
		include = flagInclude
	}
	if cmd.Flags().Changed("exclude") {
		exclude = flagExclude
	}
	if cmd.Flags().Changed("out") {
		outDir = flagOut
	}
	m, err := discover.NewMatcher(include, exclude)
	if err != nil {
		return nil, "", err
	}
	return m, outDir, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir, err := resolveTargetDir(args)
	if err != nil {
		return outputError("generate", err)
	}
	m, outDir, err := fileSettings(cmd)
	if err != nil {
		return outputError("generate", err)
	}
	repoRoot := findRepoRoot(targetDir)

	g, err := newGenerator(repoRoot)
	if err != nil {
		return outputError("generate", err)
	}
	defer g.Close()

	files, err := discover.Files(targetDir, m)
	if err != nil {
		return outputError("generate", err)
	}
	summary, err := generateFiles(cmd.Context(), g, files, outDir, flagDryRun || flagCheck)
	if err != nil {
		return outputError("generate", err)
	}

	logger.Info("generated",
		zap.String("run_id", summary.RunID),
		zap.String("dir", targetDir),
		zap.Int("files", summary.Files),
		zap.Int("outputs", len(summary.Outputs)),
		zap.Int("written", summary.Written),
		logging.DurationMS(time.Since(start).Milliseconds()),
	)
	if err := outputResult(CLIResult{Command: "generate", Results: summary}); err != nil {
		return err
	}
	if flagCheck && len(summary.Stale) > 0 {
		return errors.Newf("%d generated file(s) out of date", len(summary.Stale))
	}
	return nil
}

// generateFiles generates outputs for files. Unless dryRun is set they are
// written; otherwise the summary lists the files that are out of date.
func generateFiles(ctx context.Context, g *partialgen.Generator, files []string, outDir string, dryRun bool) (CLIGenerateSummary, error) {
	summary := CLIGenerateSummary{RunID: uuid.NewString(), Files: len(files), Outputs: []CLIOutput{}}
	outs, err := g.GenerateFiles(ctx, files)
	if err != nil {
		return summary, err
	}

	written := map[string]bool{}
	if dryRun {
		summary.Stale = staleOutputs(outs, outDir)
	} else {
		paths, err := partialgen.WriteOutputs(outs, outDir)
		if err != nil {
			return summary, err
		}
		for _, p := range paths {
			written[p] = true
		}
	}

	for _, o := range outs {
		c := toCLIOutput(o)
		c.Path = o.Path(outDir)
		c.Written = written[c.Path]
		if c.Written {
			summary.Written++
		}
		if c.Cached {
			summary.Cached++
		}
		summary.Outputs = append(summary.Outputs, c)
	}
	return summary, nil
}

// existingFiles drops paths that no longer exist.
func existingFiles(paths []string) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
