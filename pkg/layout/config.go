package layout

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
)

// CenterSpec is an arc center position in millimeters.
type CenterSpec struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Point converts the spec to a geometry point.
func (c CenterSpec) Point() geom.Point { return geom.Pt(c.X, c.Y) }

// ArcSpec is one independent arc in three-center mode: its own center and
// base radius.
type ArcSpec struct {
	X      float64 `toml:"x" json:"x"`
	Y      float64 `toml:"y" json:"y"`
	Radius float64 `toml:"radius" json:"radius"`
}

// Center returns the arc's center point.
func (a ArcSpec) Center() geom.Point { return geom.Pt(a.X, a.Y) }

// ThreeCenter configures three independent arcs: one for the upper section
// and one each for the left and right lower sections. All three must be set
// when the table is present.
type ThreeCenter struct {
	Upper      ArcSpec `toml:"upper" json:"upper"`
	LowerLeft  ArcSpec `toml:"lower_left" json:"lower_left"`
	LowerRight ArcSpec `toml:"lower_right" json:"lower_right"`
}

// Config holds the layout parameters for a Grin array.
type Config struct {
	// Rows is the number of key rows.
	Rows int `toml:"rows" json:"rows"`
	// Cols is the uniform column count per row, ignored when ColsPerRow is
	// set.
	Cols int `toml:"cols" json:"cols"`
	// ColsPerRow optionally gives an explicit column count per row. Its
	// length must equal Rows.
	ColsPerRow []int `toml:"cols_per_row" json:"cols_per_row,omitempty"`

	// Center is the shared arc center in single-center mode, and the
	// fallback for rows without arc sections in three-center mode.
	Center CenterSpec `toml:"center" json:"center"`
	// BaseRadius is the top row's arc radius; each later row shrinks by
	// RadiusStep.
	BaseRadius float64 `toml:"base_radius" json:"base_radius"`
	// RadiusStep is the per-row radius decrease in millimeters.
	RadiusStep float64 `toml:"radius_step" json:"radius_step"`
	// BasePitch is the key center-to-center distance in millimeters.
	BasePitch float64 `toml:"base_pitch" json:"base_pitch"`
	// YUp selects the axis convention: false means screen coordinates with Y
	// increasing downward.
	YUp bool `toml:"y_up" json:"y_up"`
	// StartAngle is the angle cursor at the start of each row, in radians.
	StartAngle float64 `toml:"start_angle" json:"start_angle"`

	// Arcs switches on three-center mode when present.
	Arcs *ThreeCenter `toml:"arcs" json:"arcs,omitempty"`
}

// DefaultConfig returns the configuration used by the basic examples: three
// rows of ten standard-pitch keys on a shared arc.
func DefaultConfig() Config {
	return Config{
		Rows:       3,
		Cols:       10,
		Center:     CenterSpec{X: 100, Y: 100},
		BaseRadius: 150,
		RadiusStep: 20,
		BasePitch:  footprint.Unit1U,
		YUp:        false,
		StartAngle: -math.Pi / 4,
	}
}

// LoadConfig reads a TOML configuration file, layering it over
// [DefaultConfig] so omitted keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for structural errors. It fails with
// INVALID_CONFIG; geometric infeasibility (pitch too large for a radius) is
// not checked here because layout degrades instead of failing on it.
func (c Config) Validate() error {
	if c.Rows <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rows must be positive, got %d", c.Rows)
	}
	if len(c.ColsPerRow) > 0 {
		if len(c.ColsPerRow) != c.Rows {
			return errors.New(errors.ErrCodeInvalidConfig,
				"cols_per_row has %d entries for %d rows", len(c.ColsPerRow), c.Rows)
		}
		for i, n := range c.ColsPerRow {
			if n < 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "cols_per_row[%d] = %d is negative", i, n)
			}
		}
	} else if c.Cols <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cols must be positive, got %d", c.Cols)
	}
	if c.BaseRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "base_radius must be positive, got %g", c.BaseRadius)
	}
	if c.BasePitch <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "base_pitch must be positive, got %g", c.BasePitch)
	}
	if c.Arcs != nil {
		for _, arc := range []struct {
			name string
			spec ArcSpec
		}{
			{"arcs.upper", c.Arcs.Upper},
			{"arcs.lower_left", c.Arcs.LowerLeft},
			{"arcs.lower_right", c.Arcs.LowerRight},
		} {
			if arc.spec.Radius <= 0 {
				return errors.New(errors.ErrCodeInvalidConfig,
					"%s.radius must be positive, got %g", arc.name, arc.spec.Radius)
			}
		}
	}
	return nil
}

// colsForRow returns the column count for row r.
func (c Config) colsForRow(r int) int {
	if len(c.ColsPerRow) > 0 {
		return c.ColsPerRow[r]
	}
	return c.Cols
}

// maxCols returns the widest row's column count.
func (c Config) maxCols() int {
	if len(c.ColsPerRow) == 0 {
		return c.Cols
	}
	max := 0
	for _, n := range c.ColsPerRow {
		if n > max {
			max = n
		}
	}
	return max
}

// arcFor resolves the center and base radius for a section role. In
// single-center mode every role maps to the shared center; in three-center
// mode the role tag assigned at section-division time selects the arc, so no
// identity comparison of centers is ever needed.
func (c Config) arcFor(role Role) (geom.Point, float64) {
	if c.Arcs == nil {
		return c.Center.Point(), c.BaseRadius
	}
	switch role {
	case RoleUpper:
		return c.Arcs.Upper.Center(), c.Arcs.Upper.Radius
	case RoleLeftLower:
		return c.Arcs.LowerLeft.Center(), c.Arcs.LowerLeft.Radius
	case RoleRightLower:
		return c.Arcs.LowerRight.Center(), c.Arcs.LowerRight.Radius
	}
	return c.Center.Point(), c.BaseRadius
}
