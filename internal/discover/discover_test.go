package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	t.Parallel()
	m, err := NewMatcher(
		[]string{"**/*.cs"},
		[]string{"**/obj/**", "**/*.g.cs"},
	)
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"Foo.cs", true},
		{"src/Models/Foo.cs", true},
		{"Foo.g.cs", false},
		{"src/Foo.g.cs", false},
		{"obj/Debug/Foo.cs", false},
		{"src/obj/Foo.cs", false},
		{"README.md", false},
		{filepath.Join("a", "b.cs"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Match(tt.path), tt.path)
	}
}

func TestMatcher_NoIncludeMeansAll(t *testing.T) {
	t.Parallel()
	m, err := NewMatcher(nil, []string{"*.txt"})
	require.NoError(t, err)
	assert.True(t, m.Match("anything.cs"))
	assert.False(t, m.Match("notes.txt"))
}

func TestMatcher_InvalidPattern(t *testing.T) {
	t.Parallel()
	_, err := NewMatcher([]string{"[unclosed"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include")
}

func TestWalkListFiles_SkipsHiddenAndBuildDirs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, rel := range []string{
		"A.cs",
		"src/B.cs",
		"bin/C.cs",
		".hidden/D.cs",
		"src/obj/E.cs",
	} {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("class X {}"), 0644))
	}

	paths, err := walkListFiles(root)
	require.NoError(t, err)
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"A.cs", "src/B.cs"}, rels)
}

func TestFiles_FiltersAndSorts(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, rel := range []string{"z/Last.cs", "First.cs", "Gen.g.cs", "notes.md"} {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}
	m, err := NewMatcher([]string{"**/*.cs"}, []string{"**/*.g.cs"})
	require.NoError(t, err)

	paths, err := Files(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "First.cs"),
		filepath.Join(root, "z", "Last.cs"),
	}, paths)
}

func TestSkipDir(t *testing.T) {
	t.Parallel()
	assert.True(t, SkipDir(".git"))
	assert.True(t, SkipDir("obj"))
	assert.False(t, SkipDir("src"))
}
