package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/observability"
	"github.com/keebtools/grinarray/pkg/render"
)

// Output formats supported by the render command.
const (
	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
)

// renderCommand creates the render command for generating output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    configFlags
		format   string
		output   string
		corners  bool
		noLabels bool
		circles  bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Generate SVG, PNG, or JSON output for a layout",
		Long: `Generate SVG, PNG, or JSON output for a layout.

The render command lays out the array and writes it in the chosen format:
svg and png draw the keys as rotated rectangles with per-row colors, json
exports the poses as a snapshot. Reference circles show the arcs the keys
were placed on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &flags, format, output, corners, noLabels, circles, scale)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, png, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: layout.<format>)")
	cmd.Flags().BoolVar(&corners, "corners", false, "mark key corners")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "omit per-key labels")
	cmd.Flags().BoolVar(&circles, "circles", true, "draw arc reference circles")
	cmd.Flags().Float64Var(&scale, "scale", 4, "png resolution in pixels per mm")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, flags *configFlags, format, output string, corners, noLabels, circles bool, scale float64) error {
	p := newProgress(c.Logger)

	arr, err := c.buildArray(cmd, flags)
	if err != nil {
		printError("Layout failed")
		return err
	}

	if output == "" {
		output = "layout." + format
	}

	opts := []render.Option{render.WithScale(scale)}
	if circles {
		opts = append(opts, render.WithReferenceCircles(arr.Config().Center.Point(), arr.Radii()))
	}
	if corners {
		opts = append(opts, render.WithCorners())
	}
	if noLabels {
		opts = append(opts, render.WithoutLabels())
	}
	if arr.Config().YUp {
		opts = append(opts, render.WithYUp())
	}

	ctx := cmd.Context()
	observability.Render().OnRenderStart(ctx, format)
	start := time.Now()

	var size int
	switch format {
	case formatSVG:
		data := render.RenderSVG(arr.Footprints(), opts...)
		size = len(data)
		err = os.WriteFile(output, data, 0o644)
	case formatPNG:
		var data []byte
		data, err = render.RenderPNG(arr.Footprints(), opts...)
		if err == nil {
			size = len(data)
			err = os.WriteFile(output, data, 0o644)
		}
	case formatJSON:
		var f *os.File
		f, err = os.Create(output)
		if err == nil {
			err = render.WriteJSON(f, render.BuildSnapshot(arr))
			f.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg, png, or json)", format)
	}

	observability.Render().OnRenderComplete(ctx, format, size, time.Since(start), err)
	if err != nil {
		printError("Render failed")
		return err
	}

	p.done("Render complete")
	printSuccess("Wrote %s output", format)
	printFile(output)
	return nil
}
