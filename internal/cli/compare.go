package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specvital/testdiff/pkg/compare"
	"github.com/specvital/testdiff/pkg/report"
	"github.com/specvital/testdiff/pkg/vcs"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func newCompareCommand(root *rootOptions) *cobra.Command {
	var (
		base   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare tests in the working tree against a baseline revision",
		Long: `Compare extracts tests from the working tree, checks out the baseline revision,
extracts them again and restores the original ref. The report is written to
stdout and a summary to stderr.`,
		Example: `  testdiff compare --tests 'test/**/*.spec.js'
  testdiff compare -t 'e2e/**/*_test.js' -f codeceptjs --base origin/main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base") {
				cfg.BaseRef = base
			}

			opts, err := cfg.CompareOptions()
			if err != nil {
				return err
			}

			r, err := compare.New(opts, vcs.NewGit(opts.Root), nil).Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := writeReport(cmd.OutOrStdout(), r, format); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", compare.DefaultBaseRef, "baseline revision")
	cmd.Flags().StringVar(&format, "format", formatMarkdown, "report format: markdown or json")

	return cmd
}

func writeReport(w io.Writer, r *report.Report, format string) error {
	switch format {
	case formatMarkdown, "":
		return r.WriteMarkdown(w)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func printSummary(w io.Writer, r *report.Report) {
	style := color.New(color.FgGreen)
	if r.MissingCount() > 0 {
		style = color.New(color.FgRed)
	}
	style.Fprintln(w, r.Summary())

	if r.BaselineMissing {
		color.New(color.FgYellow).Fprintln(w, "Baseline unavailable; treated as empty")
	}
}
