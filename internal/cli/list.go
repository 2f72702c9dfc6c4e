package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/specvital/testdiff/pkg/compare"
)

func newListCommand(root *rootOptions) *cobra.Command {
	var (
		suites  bool
		skipped bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tests in the working tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}

			opts, err := cfg.CompareOptions()
			if err != nil {
				return err
			}

			result, extractor, err := compare.New(opts, nil, nil).Inventory(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			snap := result.Snapshot
			color.New(color.Bold).Fprintf(out, "%d tests in %d files (%s)\n", snap.CountTests(), snap.CountFiles(), extractor.Name())
			if len(snap.Skipped) > 0 {
				color.New(color.FgYellow).Fprintf(out, "%d skipped\n", len(snap.Skipped))
			}
			fmt.Fprintln(out)

			switch {
			case skipped:
				for _, name := range snap.Skipped {
					fmt.Fprintf(out, "- %s\n", name)
				}
			case suites:
				for _, name := range result.Tree.RenderSuiteList() {
					fmt.Fprintf(out, "- %s\n", name)
				}
			default:
				fmt.Fprint(out, result.Tree.Listing(opts.ListingThreshold))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&suites, "suites", false, "list suites only")
	cmd.Flags().BoolVar(&skipped, "skipped", false, "list skipped tests only")

	return cmd
}
