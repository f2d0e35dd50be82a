package layout

import (
	"context"
	"time"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
	"github.com/keebtools/grinarray/pkg/observability"
	"github.com/keebtools/grinarray/pkg/place"
	"github.com/keebtools/grinarray/pkg/spacing"
)

// fallbackAngleStep is the angular step substituted when a row's pitch
// cannot fit its radius. Later rows may still be feasible, so layout
// degrades instead of aborting.
const fallbackAngleStep = 0.1

// maxLowerArcKeys is the per-side lower-arc key budget validated after
// layout for every row but the last.
const maxLowerArcKeys = 2

// Logger receives layout diagnostics. The zero value discards them.
type Logger func(format string, args ...any)

// Option configures an Array.
type Option func(*Array)

// WithLogger routes layout warnings to l.
func WithLogger(l Logger) Option {
	return func(a *Array) { a.logger = l }
}

// Array owns the footprint grid and the per-row sections for one Grin
// layout. The array is the sole mutator of footprint poses during a layout
// pass; everything else reads.
type Array struct {
	cfg        Config
	radii      []float64
	pitches    []float64
	footprints [][]*footprint.Footprint
	sections   [][]Section
	logger     Logger
}

// New creates the footprint grid for cfg. It fails with INVALID_CONFIG on
// malformed configuration; nothing is placed until Layout runs.
func New(cfg Config, opts ...Option) (*Array, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Array{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	a.radii = make([]float64, cfg.Rows)
	a.pitches = make([]float64, cfg.Rows)
	for r := 0; r < cfg.Rows; r++ {
		// Top row has the largest radius.
		a.radii[r] = cfg.BaseRadius - float64(r)*cfg.RadiusStep
		a.pitches[r] = cfg.BasePitch
	}

	a.footprints = make([][]*footprint.Footprint, cfg.Rows)
	for r := 0; r < cfg.Rows; r++ {
		row := make([]*footprint.Footprint, cfg.colsForRow(r))
		for c := range row {
			row[c] = footprint.New(r, c)
		}
		a.footprints[r] = row
	}

	return a, nil
}

// Config returns the configuration the array was built from.
func (a *Array) Config() Config { return a.cfg }

// Rows returns the row count.
func (a *Array) Rows() int { return a.cfg.Rows }

// MaxCols returns the widest row's column count.
func (a *Array) MaxCols() int { return a.cfg.maxCols() }

// RowRadius returns the arc radius used for row r in single-center mode.
func (a *Array) RowRadius(r int) float64 { return a.radii[r] }

// Radii returns the per-row radii, largest first.
func (a *Array) Radii() []float64 { return a.radii }

// Grid returns the footprint grid indexed by row then column. Callers may
// mutate footprints (e.g. to seed sizes from an imported layout) but must
// not replace rows.
func (a *Array) Grid() [][]*footprint.Footprint { return a.footprints }

// Footprints returns all footprints as a flat row-major list.
func (a *Array) Footprints() []*footprint.Footprint {
	var out []*footprint.Footprint
	for _, row := range a.footprints {
		out = append(out, row...)
	}
	return out
}

// Sections returns the per-row sections from the most recent layout pass,
// nil before the first pass.
func (a *Array) Sections() [][]Section { return a.sections }

func (a *Array) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger(format, args...)
	}
}

// Layout performs the complete placement pass: divide rows into sections,
// compute angular steps, place every section, then validate constraints.
// Re-running it on an unmodified configuration recomputes identical poses;
// prior positions are always discarded.
func (a *Array) Layout(ctx context.Context) {
	keys := len(a.Footprints())
	observability.Layout().OnLayoutStart(ctx, a.cfg.Rows, keys)
	start := time.Now()

	a.sections = make([][]Section, a.cfg.Rows)
	for r := range a.sections {
		a.sections[r] = buildSections(len(a.footprints[r]))
	}

	for r := 0; r < a.cfg.Rows; r++ {
		a.layoutRow(ctx, r)
	}

	a.validateConstraints()
	observability.Layout().OnLayoutComplete(ctx, a.cfg.Rows, keys, time.Since(start), nil)
}

// rowArc resolves the section's arc for row r: the role's center and its
// base radius shrunk by the per-row step.
func (a *Array) rowArc(role Role, r int) (geom.Point, float64) {
	center, base := a.cfg.arcFor(role)
	return center, base - float64(r)*a.cfg.RadiusStep
}

// angleStepFor computes the angular step for a radius, substituting the
// fixed fallback when the pitch cannot fit.
func (a *Array) angleStepFor(ctx context.Context, r int, radius float64) float64 {
	dt, err := geom.AngleStep(a.pitches[r], radius)
	if err != nil {
		a.logf("row %d: %s; using fallback step %g rad", r, errors.UserMessage(err), fallbackAngleStep)
		observability.Layout().OnFallback(ctx, "angle_step", r, -1)
		return fallbackAngleStep
	}
	return dt
}

// layoutRow places one row section by section, carrying the angle cursor.
// Horizontal sections read the cursor but do not advance it; arc sections
// advance it by count × step.
func (a *Array) layoutRow(ctx context.Context, r int) {
	cursor := a.cfg.StartAngle

	// In single-center mode every section shares the row radius, so the step
	// (and any infeasibility warning) is computed once per row. Three-center
	// mode resolves a step per section radius.
	rowStep := 0.0
	if a.cfg.Arcs == nil {
		rowStep = a.angleStepFor(ctx, r, a.radii[r])
	}

	for si := range a.sections[r] {
		sec := &a.sections[r][si]
		sec.Center, sec.Radius = a.rowArc(sec.Role, r)

		switch sec.Type {
		case Horizontal:
			a.placeHorizontal(r, sec, cursor)
		default:
			dt := rowStep
			if a.cfg.Arcs != nil {
				dt = a.angleStepFor(ctx, r, sec.Radius)
			}
			sec.Theta0 = cursor
			a.placeArc(ctx, r, sec, dt)
			cursor = sec.Theta0 + float64(len(sec.Cols))*dt
		}
	}
}

// placeHorizontal lays a straight, evenly pitched run starting from the arc
// point at the cursor angle, with zero rotation.
func (a *Array) placeHorizontal(r int, sec *Section, cursor float64) {
	sec.Theta0 = cursor
	start := geom.CirclePoint(sec.Center, sec.Radius, cursor, a.cfg.YUp)

	for i, c := range sec.Cols {
		fp := a.footprints[r][c]
		fp.MoveTo(start.X+float64(i)*a.pitches[r], start.Y)
		fp.RotateTo(0)
	}
}

// placeArc places each footprint on the section's arc, orients it to the
// tangent, and snaps every footprint after the first against its predecessor
// so adjacent keys touch at their center-side corners. A failed snap leaves
// the footprint at its arc position and layout continues.
func (a *Array) placeArc(ctx context.Context, r int, sec *Section, dt float64) {
	orientation := place.Upper
	if sec.Type == LowerArc {
		orientation = place.Lower
	}

	theta := sec.Theta0
	var prev *footprint.Footprint

	for _, c := range sec.Cols {
		fp := a.footprints[r][c]

		// The key's radial extent is its height once tangent-oriented.
		place.OnArc(fp, sec.Center, sec.Radius, theta, a.cfg.YUp,
			place.WithReferenceRadii(sec.Radius-fp.Height/2, sec.Radius+fp.Height/2))

		if err := place.OrientToTangent(fp, theta, orientation, a.cfg.YUp); err != nil {
			// Orientation is derived from the section type, so this is
			// unreachable for well-formed sections; surface it anyway.
			a.logf("row %d col %d: %s", r, c, errors.UserMessage(err))
		}

		if prev != nil {
			err := place.SnapCornerToCenterSide(fp, place.CenterSideOf(prev, sec.Center), sec.Center)
			if err != nil {
				a.logf("failed to snap corner for r%dc%d: %s", r, c, errors.UserMessage(err))
				observability.Layout().OnFallback(ctx, "snap", r, c)
			}
		}

		prev = fp
		theta += dt
	}
}

// validateConstraints flags rows other than the last whose lower-arc
// sections exceed the per-side key budget. Violations are logged, never
// fatal.
func (a *Array) validateConstraints() {
	for r := 0; r < a.cfg.Rows-1; r++ {
		for _, sec := range a.sections[r] {
			if sec.Type == LowerArc && len(sec.Cols) > maxLowerArcKeys {
				a.logf("row %d has a lower arc section with %d keys (max %d)",
					r, len(sec.Cols), maxLowerArcKeys)
			}
		}
	}
}

// EvaluateSpacing runs the pairwise spacing evaluation over the whole array.
func (a *Array) EvaluateSpacing(ctx context.Context, opts ...spacing.Option) spacing.Summary {
	fps := a.Footprints()
	observability.Spacing().OnEvaluateStart(ctx, len(fps))
	start := time.Now()

	s := spacing.Evaluate(fps, opts...)

	observability.Spacing().OnEvaluateComplete(ctx, len(s.Pairs), len(s.Interferences), time.Since(start))
	return s
}
