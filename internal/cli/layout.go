package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keebtools/grinarray/pkg/render"
)

// layoutCommand creates the layout command for computing key positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    configFlags
		jsonPath string
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute key positions for a Grin array configuration",
		Long: `Compute key positions for a Grin array configuration.

The layout command builds the footprint grid, divides each row into straight
and arc sections, places every key, and prints a per-row summary. Infeasible
geometry degrades with a warning instead of failing; check the log output.

Configuration comes from a TOML file (--config) with individual flags
overriding single values. Use --kle to seed key sizes from a Keyboard Layout
Editor JSON export, and --json to write a machine-readable snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, &flags, jsonPath)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&jsonPath, "json", "", "write a JSON layout snapshot to this file")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, flags *configFlags, jsonPath string) error {
	p := newProgress(c.Logger)

	arr, err := c.buildArray(cmd, flags)
	if err != nil {
		printError("Layout failed")
		return err
	}
	p.done("Layout complete")

	printLayoutSummary(arr)

	if jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.WriteJSON(f, render.BuildSnapshot(arr)); err != nil {
			return err
		}
		printFile(jsonPath)
	}

	printNewline()
	printNextStep("Check spacing", appName+" spacing")
	return nil
}
