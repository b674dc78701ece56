package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
)

// formatTargetsText formats CLITarget results as aligned columns.
func formatTargetsText(w io.Writer, targets []CLITarget) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "IDENTIFIER\tKIND\tFILE\tLINE\tHINT")
	for _, t := range targets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", t.Identifier, t.Kind, t.File, t.Line, t.HintName)
	}
	tw.Flush()
}

// formatOutputsText writes each output's text under a header naming it.
func formatOutputsText(w io.Writer, outs []CLIOutput) {
	for _, o := range outs {
		fmt.Fprintf(w, "// === %s ===\n", o.HintName)
		fmt.Fprint(w, o.Text)
	}
}

// formatGenerateText formats a generate run as one line per written file
// followed by a summary.
func formatGenerateText(w io.Writer, s CLIGenerateSummary) {
	for _, o := range s.Outputs {
		if o.Written {
			fmt.Fprintf(w, "wrote %s\n", o.Path)
		}
	}
	for _, st := range s.Stale {
		if st.Missing {
			fmt.Fprintf(w, "missing %s\n", st.Path)
			continue
		}
		fmt.Fprintf(w, "stale %s\n%s", st.Path, st.Patch)
	}
	fmt.Fprintf(w, "%d file(s), %d output(s), %d written, %d cached\n",
		s.Files, len(s.Outputs), s.Written, s.Cached)
}

// formatCacheStatsText formats CLICacheStats as readable text.
func formatCacheStatsText(w io.Writer, s CLICacheStats) {
	fmt.Fprintf(w, "Cache: %s\n", s.Path)
	fmt.Fprintf(w, "Renders: %d\n", s.Renders)
	fmt.Fprintf(w, "Hits: %d\n", s.Hits)
	fmt.Fprintf(w, "Size: %s\n", humanize.Bytes(uint64(s.Bytes)))
	if s.Removed != nil {
		fmt.Fprintf(w, "Removed: %d\n", *s.Removed)
	}
}

// formatCachedRendersText formats CLICachedRender results as aligned
// columns.
func formatCachedRendersText(w io.Writer, renders []CLICachedRender) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FINGERPRINT\tHINT\tHITS\tLAST USED")
	for _, r := range renders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			r.Fingerprint[:min(12, len(r.Fingerprint))], r.HintName, r.Hits, humanize.Time(r.LastUsedAt))
	}
	tw.Flush()
}

// outputResultText dispatches to the appropriate text formatter based on the
// result type.
func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case []CLITarget:
		formatTargetsText(w, v)
	case []CLIOutput:
		formatOutputsText(w, v)
	case CLIGenerateSummary:
		formatGenerateText(w, v)
	case CLICacheStats:
		formatCacheStatsText(w, v)
	case []CLICachedRender:
		formatCachedRendersText(w, v)
	case nil:
	default:
		return errors.Newf("unsupported result type for text format: %T", v)
	}
	return nil
}

// outputResult writes a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	return writeResult(os.Stdout, flagFormat, result)
}

func writeResult(w io.Writer, format string, result CLIResult) error {
	if format == "text" {
		return outputResultText(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate the exit status.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	_ = writeResult(os.Stdout, flagFormat, CLIResult{Command: command, Error: err.Error()})
	return err
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return errors.Newf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
