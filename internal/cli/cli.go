// Package cli implements the grinarray command-line interface.
//
// This package provides commands for computing curved keyboard layouts,
// evaluating key-to-key spacing, and rendering the result as SVG, PNG, or a
// JSON snapshot. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute key positions for a Grin array configuration
//   - spacing: Evaluate pairwise gaps and interferences of a layout
//   - render: Generate SVG, PNG, or JSON output
//
// # Example
//
//	import "github.com/keebtools/grinarray/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/keebtools/grinarray/pkg/buildinfo"
	"github.com/keebtools/grinarray/pkg/kle"
	"github.com/keebtools/grinarray/pkg/layout"
)

// appName is the application name used for display.
const appName = "grinarray"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger and points the
// engine's instrumentation hooks at it.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	registerHooks(c.Logger)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Grinarray computes curved keyboard layouts",
		Long:         `Grinarray is a CLI tool for computing Grin-style curved keyboard layouts: keys are placed along concentric arcs, snapped edge to edge, and checked for spacing conflicts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.spacingCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// configFlags collects the configuration flags shared by every command that
// builds an array. Flags override the config file only when set.
type configFlags struct {
	configPath string
	rows       int
	cols       int
	radius     float64
	radiusStep float64
	pitch      float64
	startAngle float64
	yUp        bool
	klePath    string
}

// register adds the shared configuration flags to cmd.
func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "number of rows")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "keys per row")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "base arc radius in mm")
	cmd.Flags().Float64Var(&f.radiusStep, "radius-step", 0, "radius decrease per row in mm")
	cmd.Flags().Float64Var(&f.pitch, "pitch", 0, "key pitch in mm")
	cmd.Flags().Float64Var(&f.startAngle, "start-angle", 0, "row start angle in radians")
	cmd.Flags().BoolVar(&f.yUp, "y-up", false, "treat larger Y as up")
	cmd.Flags().StringVar(&f.klePath, "kle", "", "KLE JSON file seeding key sizes")
}

// config resolves the effective configuration: file (or defaults) first,
// then explicitly set flags on top.
func (f *configFlags) config(cmd *cobra.Command) (layout.Config, error) {
	cfg := layout.DefaultConfig()
	if f.configPath != "" {
		loaded, err := layout.LoadConfig(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = f.rows
	}
	if flags.Changed("cols") {
		cfg.Cols = f.cols
		cfg.ColsPerRow = nil
	}
	if flags.Changed("radius") {
		cfg.BaseRadius = f.radius
	}
	if flags.Changed("radius-step") {
		cfg.RadiusStep = f.radiusStep
	}
	if flags.Changed("pitch") {
		cfg.BasePitch = f.pitch
	}
	if flags.Changed("start-angle") {
		cfg.StartAngle = f.startAngle
	}
	if flags.Changed("y-up") {
		cfg.YUp = f.yUp
	}
	return cfg, cfg.Validate()
}

// buildArray constructs and lays out the array for the resolved
// configuration, seeding from a KLE file when one was given.
func (c *CLI) buildArray(cmd *cobra.Command, f *configFlags) (*layout.Array, error) {
	cfg, err := f.config(cmd)
	if err != nil {
		return nil, err
	}

	arr, err := layout.New(cfg, layout.WithLogger(func(format string, args ...any) {
		c.Logger.Warnf(format, args...)
	}))
	if err != nil {
		return nil, err
	}

	if f.klePath != "" {
		seed, err := kle.Load(f.klePath)
		if err != nil {
			return nil, err
		}
		kle.Apply(seed, arr.Grid())
		c.Logger.Debugf("seeded %d keys from %s", len(seed.Flat()), f.klePath)
	}

	arr.Layout(cmd.Context())
	return arr, nil
}
