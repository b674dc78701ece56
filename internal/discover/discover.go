// Package discover finds the C# sources a generator run should read.
package discover

import (
	"bytes"
	"io/fs"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// Matcher selects paths by include and exclude globs. Patterns use '/' as
// the separator and are matched against slash-separated paths relative to
// the discovery root; "**" spans directories.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles the patterns. With no include patterns every path is
// included.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	inc, err := compileGlobs(include, "include")
	if err != nil {
		return nil, err
	}
	exc, err := compileGlobs(exclude, "exclude")
	if err != nil {
		return nil, err
	}
	return &Matcher{include: inc, exclude: exc}, nil
}

func compileGlobs(patterns []string, label string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "discover: invalid %s pattern %q", label, p)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if len(m.include) > 0 && !anyMatch(m.include, rel) {
		return false
	}
	return !anyMatch(m.exclude, rel)
}

// anyMatch also tries a leading slash so "**/x" matches "x" at the root.
func anyMatch(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match("/"+rel) {
			return true
		}
	}
	return false
}

var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"node_modules": true,
}

// SkipDir reports whether a directory named name is never searched.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skipDirs[name]
}

// Files returns the paths under root accepted by m, sorted. Inside a git
// repository git ls-files is used so .gitignore is respected; otherwise the
// tree is walked, skipping hidden and build output directories.
func Files(root string, m *Matcher) ([]string, error) {
	paths, err := gitListFiles(root)
	if err != nil {
		// Not a git repo or git not available; fall back to walk.
		paths, err = walkListFiles(root)
		if err != nil {
			return nil, err
		}
	}

	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		if m.Match(rel) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// gitListFiles uses git ls-files to discover tracked and untracked (but not
// ignored) files under root.
func gitListFiles(root string) ([]string, error) {
	// --cached: tracked files, --others: untracked files,
	// --exclude-standard: respect .gitignore, .git/info/exclude, global excludes.
	cmd := exec.Command("git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "git ls-files: %s", strings.TrimSpace(stderr.String()))
	}

	var paths []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, filepath.Join(root, line))
	}
	return paths, nil
}

// walkListFiles discovers files by walking the filesystem.
func walkListFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walk directory")
	}
	return paths, nil
}
