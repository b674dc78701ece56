package main

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jward/partialgen/internal/store"
)

var flagOlderThan time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the render cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show render cache statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache("cache stats", func(s *store.Store) (*int64, error) {
			return nil, nil
		})
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove renders not used recently",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache("cache prune", func(s *store.Store) (*int64, error) {
			n, err := s.Prune(time.Now().Add(-flagOlderThan))
			return &n, err
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached render",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache("cache clear", func(s *store.Store) (*int64, error) {
			before, err := s.Stats()
			if err != nil {
				return nil, err
			}
			return &before.Renders, s.Reset()
		})
	},
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <hint-name>",
	Short: "Show the cached renders for a hint name, most recently used first",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

func init() {
	cachePruneCmd.Flags().DurationVar(&flagOlderThan, "older-than", 30*24*time.Hour, "remove renders last used before this long ago")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheShowCmd)
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	path, err := cachePath()
	if err != nil {
		return outputError("cache show", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return outputError("cache show", err)
	}
	defer s.Close()

	renders, err := s.RendersByHintName(args[0])
	if err != nil {
		return outputError("cache show", err)
	}
	results := []CLICachedRender{}
	for _, r := range renders {
		results = append(results, CLICachedRender{
			Fingerprint: r.Fingerprint,
			HintName:    r.HintName,
			Hits:        r.Hits,
			CreatedAt:   r.CreatedAt,
			LastUsedAt:  r.LastUsedAt,
			Text:        r.Output,
		})
	}
	return outputResult(CLIResult{Command: "cache show", Results: results})
}

// withCache opens the configured cache, runs fn and reports the cache's
// statistics along with the number of renders fn removed.
func withCache(command string, fn func(*store.Store) (*int64, error)) error {
	path, err := cachePath()
	if err != nil {
		return outputError(command, err)
	}
	s, err := store.Open(path)
	if err != nil {
		return outputError(command, err)
	}
	defer s.Close()

	removed, err := fn(s)
	if err != nil {
		return outputError(command, err)
	}
	stats, err := s.Stats()
	if err != nil {
		return outputError(command, err)
	}
	return outputResult(CLIResult{Command: command, Results: CLICacheStats{
		Path:    path,
		Renders: stats.Renders,
		Hits:    stats.Hits,
		Bytes:   stats.Bytes,
		Removed: removed,
	}})
}

// cachePath resolves the configured cache against the repository holding
// the working directory.
func cachePath() (string, error) {
	if cfg.CachePath == "" {
		return "", errors.New("no render cache configured (set cache_path or --cache)")
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting cwd")
	}
	path := resolveCachePath(findRepoRoot(cwd), cfg.CachePath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", errors.Newf("cache not found: %s (run 'partialgen generate' first)", path)
	}
	return path, nil
}
