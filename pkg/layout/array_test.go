package layout

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
)

func mustNew(t *testing.T, cfg Config, opts ...Option) *Array {
	t.Helper()
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

func TestNewGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 5
	a := mustNew(t, cfg)

	if len(a.Grid()) != 3 {
		t.Fatalf("rows = %d, want 3", len(a.Grid()))
	}
	for r, row := range a.Grid() {
		if len(row) != 5 {
			t.Errorf("row %d has %d cols, want 5", r, len(row))
		}
		for c, fp := range row {
			if fp.Row != r || fp.Col != c {
				t.Errorf("grid[%d][%d] identity = %v, want r%dc%d", r, c, fp.ID(), r, c)
			}
		}
	}
	if got := len(a.Footprints()); got != 15 {
		t.Errorf("len(Footprints()) = %d, want 15", got)
	}
}

func TestNewColsPerRow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 3
	cfg.ColsPerRow = []int{5, 7, 3}
	a := mustNew(t, cfg)

	for r, want := range []int{5, 7, 3} {
		if got := len(a.Grid()[r]); got != want {
			t.Errorf("row %d has %d cols, want %d", r, got, want)
		}
	}
	if a.MaxCols() != 7 {
		t.Errorf("MaxCols() = %d, want 7", a.MaxCols())
	}
}

func TestNewColsPerRowMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 3
	cfg.ColsPerRow = []int{5, 7}
	_, err := New(cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New() error code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}

func TestRowRadiiDecrease(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 3
	cfg.BaseRadius = 100
	cfg.RadiusStep = 10
	a := mustNew(t, cfg)

	want := []float64{100, 90, 80}
	for r, w := range want {
		if a.RowRadius(r) != w {
			t.Errorf("RowRadius(%d) = %v, want %v", r, a.RowRadius(r), w)
		}
	}
}

func TestLayoutSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 10
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	secs := a.Sections()
	if len(secs) != 3 {
		t.Fatalf("len(Sections()) = %d, want 3", len(secs))
	}
	for r, row := range secs {
		if len(row) != 5 {
			t.Fatalf("row %d has %d sections, want 5", r, len(row))
		}
		wantTypes := []SectionType{Horizontal, LowerArc, UpperArc, LowerArc, Horizontal}
		for i, sec := range row {
			if sec.Type != wantTypes[i] {
				t.Errorf("row %d section %d = %v, want %v", r, i, sec.Type, wantTypes[i])
			}
		}
	}
}

func TestLayoutPositionsEveryKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 10
	cfg.Center = CenterSpec{X: 150, Y: 150}
	cfg.BaseRadius = 120
	cfg.RadiusStep = 15
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	// Nothing should remain at the exact origin once laid out; the arc
	// center is far from (0, 0) in this configuration.
	for _, fp := range a.Footprints() {
		if fp.X == 0 && fp.Y == 0 {
			t.Errorf("%v still at origin after layout", fp.ID())
		}
	}
}

func TestLayoutHorizontalSections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	sec := a.Sections()[0][0] // leading horizontal run, 2 keys
	if sec.Type != Horizontal {
		t.Fatalf("first section = %v, want Horizontal", sec.Type)
	}

	first := a.Grid()[0][sec.Cols[0]]
	second := a.Grid()[0][sec.Cols[1]]

	if first.Rotation != 0 || second.Rotation != 0 {
		t.Errorf("horizontal rotations = %v, %v, want 0", first.Rotation, second.Rotation)
	}
	if !scalar.EqualWithinAbs(second.X-first.X, cfg.BasePitch, 1e-9) {
		t.Errorf("horizontal spacing = %v, want pitch %v", second.X-first.X, cfg.BasePitch)
	}
	if first.Y != second.Y {
		t.Errorf("horizontal run not level: %v vs %v", first.Y, second.Y)
	}
}

func TestLayoutArcKeysOnArc(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	cfg.Center = CenterSpec{X: 150, Y: 150}
	cfg.BaseRadius = 120
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	// The first key of each arc section is placed on the arc and never
	// snapped, so its center must lie at exactly the row radius.
	for _, sec := range a.Sections()[0] {
		if sec.Type == Horizontal {
			continue
		}
		fp := a.Grid()[0][sec.Cols[0]]
		dist := fp.Center().Dist(sec.Center)
		if !scalar.EqualWithinAbs(dist, sec.Radius, 1e-9) {
			t.Errorf("%v center at %v from arc center, want %v", fp.ID(), dist, sec.Radius)
		}
		if fp.Arc == nil {
			t.Errorf("%v has no arc metadata", fp.ID())
		}
	}
}

func TestLayoutAdjacentArcKeysTouch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	cfg.Center = CenterSpec{X: 150, Y: 150}
	cfg.BaseRadius = 120
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	for _, sec := range a.Sections()[0] {
		if sec.Type == Horizontal {
			continue
		}
		for i := 1; i < len(sec.Cols); i++ {
			prev := a.Grid()[0][sec.Cols[i-1]]
			cur := a.Grid()[0][sec.Cols[i]]

			// Snapping puts one of cur's corners exactly onto one of prev's.
			closest := math.Inf(1)
			for _, pc := range prev.Polygon() {
				for _, cc := range cur.Polygon() {
					closest = math.Min(closest, pc.Dist(cc))
				}
			}
			if closest > 1e-9 {
				t.Errorf("%v and %v nearest corners %v apart, want coincident",
					prev.ID(), cur.ID(), closest)
			}
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 3, 10
	a := mustNew(t, cfg)

	a.Layout(context.Background())
	type pose struct{ x, y, rot float64 }
	first := map[footprint.ID]pose{}
	for _, fp := range a.Footprints() {
		first[fp.ID()] = pose{fp.X, fp.Y, fp.Rotation}
	}

	a.Layout(context.Background())
	for _, fp := range a.Footprints() {
		p := first[fp.ID()]
		if fp.X != p.x || fp.Y != p.y || fp.Rotation != p.rot {
			t.Errorf("%v pose changed between identical passes: (%v,%v,%v) vs (%v,%v,%v)",
				fp.ID(), p.x, p.y, p.rot, fp.X, fp.Y, fp.Rotation)
		}
	}
}

func TestLayoutInfeasiblePitchFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	cfg.BaseRadius = 5 // pitch 19.05 cannot fit a 5mm radius
	cfg.RadiusStep = 0

	var logs []string
	a := mustNew(t, cfg, WithLogger(func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}))
	a.Layout(context.Background())

	found := false
	for _, msg := range logs {
		if strings.Contains(msg, "fallback") {
			found = true
		}
	}
	if !found {
		t.Errorf("no fallback warning logged; logs = %v", logs)
	}

	// The array must still be fully placed.
	if got := len(a.Footprints()); got != 10 {
		t.Errorf("len(Footprints()) = %d, want 10", got)
	}
}

func TestLayoutThreeCenterMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	cfg.Arcs = &ThreeCenter{
		Upper:      ArcSpec{X: 150, Y: 140, Radius: 130},
		LowerLeft:  ArcSpec{X: 110, Y: 150, Radius: 110},
		LowerRight: ArcSpec{X: 190, Y: 150, Radius: 110},
	}
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	secs := a.Sections()[0]
	if secs[1].Center != cfg.Arcs.LowerLeft.Center() {
		t.Errorf("left lower center = %v, want %v", secs[1].Center, cfg.Arcs.LowerLeft.Center())
	}
	if secs[2].Center != cfg.Arcs.Upper.Center() {
		t.Errorf("upper center = %v, want %v", secs[2].Center, cfg.Arcs.Upper.Center())
	}
	if secs[3].Center != cfg.Arcs.LowerRight.Center() {
		t.Errorf("right lower center = %v, want %v", secs[3].Center, cfg.Arcs.LowerRight.Center())
	}

	// First key of each arc section sits on its own arc.
	for _, sec := range secs {
		if sec.Type == Horizontal {
			continue
		}
		fp := a.Grid()[0][sec.Cols[0]]
		if !scalar.EqualWithinAbs(fp.Center().Dist(sec.Center), sec.Radius, 1e-9) {
			t.Errorf("section %v first key off its arc", sec.Type)
		}
	}
}

func TestValidateConstraintsWarns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 2, 10

	var logs []string
	a := mustNew(t, cfg, WithLogger(func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}))

	// Force an oversized lower-arc section on a non-last row.
	a.sections = [][]Section{
		{{Type: LowerArc, Role: RoleLeftLower, Cols: []int{0, 1, 2}}},
		{},
	}
	a.validateConstraints()

	found := false
	for _, msg := range logs {
		if strings.Contains(msg, "lower arc") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lower-arc constraint warning, logs = %v", logs)
	}
}

func TestEvaluateSpacingPairCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 2, 5
	cfg.BaseRadius = 150
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	s := a.EvaluateSpacing(context.Background())
	n := len(a.Footprints())
	want := n * (n - 1) / 2
	if len(s.Pairs) != want {
		t.Errorf("len(Pairs) = %d, want %d", len(s.Pairs), want)
	}
}

func TestLayoutUpperLowerFaceOpposite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 1, 10
	a := mustNew(t, cfg)
	a.Layout(context.Background())

	secs := a.Sections()[0]
	lower := a.Grid()[0][secs[1].Cols[0]] // first key of left lower arc
	upper := a.Grid()[0][secs[2].Cols[0]] // first key of upper arc

	// Both were oriented at known angles; the families differ by π modulo
	// the angle difference between their placements.
	lowerWant := -(secs[1].Theta0 - math.Pi/2)
	upperWant := -(secs[2].Theta0 + math.Pi/2)
	if !scalar.EqualWithinAbs(lower.Rotation, lowerWant, 1e-9) {
		t.Errorf("lower rotation = %v, want %v", lower.Rotation, lowerWant)
	}
	if !scalar.EqualWithinAbs(upper.Rotation, upperWant, 1e-9) {
		t.Errorf("upper rotation = %v, want %v", upper.Rotation, upperWant)
	}
}
