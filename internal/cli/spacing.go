package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keebtools/grinarray/pkg/render"
	"github.com/keebtools/grinarray/pkg/spacing"
)

// spacingCommand creates the spacing command for evaluating key gaps.
func (c *CLI) spacingCommand() *cobra.Command {
	var (
		flags     configFlags
		threshold float64
		jsonPath  string
	)

	cmd := &cobra.Command{
		Use:   "spacing",
		Short: "Evaluate pairwise gaps and interferences of a layout",
		Long: `Evaluate pairwise gaps and interferences of a layout.

The spacing command lays out the array and checks every key pair: overlapping
pairs are reported as interference with their penetration depth, touching
pairs as contact, and the minimum clearance across the whole array is
summarized. Pairs with a gap at or below --threshold are listed separately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSpacing(cmd, &flags, threshold, jsonPath)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&threshold, "threshold", spacing.DefaultGapThreshold, "small-gap threshold in mm")
	cmd.Flags().StringVar(&jsonPath, "json", "", "write the snapshot with spacing data to this file")

	return cmd
}

func (c *CLI) runSpacing(cmd *cobra.Command, flags *configFlags, threshold float64, jsonPath string) error {
	p := newProgress(c.Logger)

	arr, err := c.buildArray(cmd, flags)
	if err != nil {
		printError("Layout failed")
		return err
	}

	sum := arr.EvaluateSpacing(cmd.Context(), spacing.WithGapThreshold(threshold))
	p.done("Spacing evaluated")

	printSpacingSummary(sum)

	if jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WriteJSON(f, render.BuildSnapshot(arr, render.WithSpacing(sum))); err != nil {
			return err
		}
		printFile(jsonPath)
	}
	return nil
}
