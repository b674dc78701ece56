package main

import (
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/jward/partialgen"
)

// staleOutputs compares outs against the files on disk and returns one
// entry per file that is missing or differs, with a patch from the current
// content to the generated text.
func staleOutputs(outs []partialgen.Output, outDir string) []CLIStale {
	dmp := diffmatchpatch.New()
	stale := []CLIStale{}
	for _, o := range outs {
		path := o.Path(outDir)
		existing, err := os.ReadFile(path)
		if err != nil {
			stale = append(stale, CLIStale{Path: path, Missing: true})
			continue
		}
		if string(existing) == o.Text {
			continue
		}
		diffs := dmp.DiffMain(string(existing), o.Text, false)
		diffs = dmp.DiffCleanupSemantic(diffs)
		patch := dmp.PatchToText(dmp.PatchMake(string(existing), diffs))
		stale = append(stale, CLIStale{Path: path, Patch: patch})
	}
	return stale
}
