package partialgen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Path returns where o is written: inside outDir when it is set, otherwise
// next to the source file.
func (o Output) Path(outDir string) string {
	if outDir != "" {
		return filepath.Join(outDir, o.HintName)
	}
	return filepath.Join(filepath.Dir(o.Source), o.HintName)
}

// WriteOutputs writes outs and returns the paths whose content changed.
// Files that already hold the same text are left untouched. Two outputs
// with the same path but different text are an error.
func WriteOutputs(outs []Output, outDir string) ([]string, error) {
	seen := make(map[string]string, len(outs))
	var written []string
	for _, o := range outs {
		path := o.Path(outDir)
		if prev, ok := seen[path]; ok {
			if prev != o.Text {
				return written, errors.Newf("write outputs: %s generated twice with different content", path)
			}
			continue
		}
		seen[path] = o.Text

		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, []byte(o.Text)) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, errors.Wrapf(err, "write outputs: create directory for %s", path)
		}
		if err := os.WriteFile(path, []byte(o.Text), 0644); err != nil {
			return written, errors.Wrapf(err, "write outputs: %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
