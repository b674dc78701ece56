package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/jward/partialgen"
)

var targetsCmd = &cobra.Command{
	Use:   "targets <file>...",
	Short: "List the partial declarations output would be generated for",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTargets,
}

var flagTarget string

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Print the generated output for a file without writing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagTarget, "target", "", "only print the output for this identifier")
}

func runTargets(cmd *cobra.Command, args []string) error {
	g, err := newGenerator("")
	if err != nil {
		return outputError("targets", err)
	}
	defer g.Close()

	results := []CLITarget{}
	for _, file := range args {
		src, err := os.ReadFile(file)
		if err != nil {
			return outputError("targets", errors.Wrapf(err, "reading %s", file))
		}
		targets, err := g.Targets(cmd.Context(), file, src)
		if err != nil {
			return outputError("targets", err)
		}
		for _, t := range targets {
			results = append(results, toCLITarget(t))
		}
	}
	return outputResult(CLIResult{Command: "targets", Results: results})
}

func runRender(cmd *cobra.Command, args []string) error {
	outs, err := renderFile(cmd.Context(), args[0], flagTarget)
	if err != nil {
		return outputError("render", err)
	}
	return outputResult(CLIResult{Command: "render", Results: outs})
}

func renderFile(ctx context.Context, file, target string) ([]CLIOutput, error) {
	g, err := newGenerator("")
	if err != nil {
		return nil, err
	}
	defer g.Close()

	src, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", file)
	}
	outs, err := g.GenerateSource(ctx, file, src)
	if err != nil {
		return nil, err
	}

	results := []CLIOutput{}
	for _, o := range outs {
		if target != "" && o.Target != target {
			continue
		}
		c := toCLIOutput(o)
		c.Text = o.Text
		results = append(results, c)
	}
	if target != "" && len(results) == 0 {
		return nil, errors.Newf("no partial declaration %q in %s", target, file)
	}
	return results, nil
}

func toCLITarget(t partialgen.Target) CLITarget {
	return CLITarget{
		File:       t.File,
		Identifier: t.Identifier,
		Kind:       t.Kind,
		Line:       t.Line,
		HintName:   t.HintName,
		Attributes: t.Attributes,
	}
}

func toCLIOutput(o partialgen.Output) CLIOutput {
	return CLIOutput{
		Source:   o.Source,
		Target:   o.Target,
		HintName: o.HintName,
		Cached:   o.Cached,
	}
}
