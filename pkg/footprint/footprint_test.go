package footprint

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/geom"
)

const tol = 1e-10

func TestNewDefaults(t *testing.T) {
	fp := New(1, 2)
	if fp.Row != 1 || fp.Col != 2 {
		t.Errorf("identity = r%dc%d, want r1c2", fp.Row, fp.Col)
	}
	if fp.X != 0 || fp.Y != 0 || fp.Rotation != 0 {
		t.Errorf("pose = (%v, %v, %v), want origin with no rotation", fp.X, fp.Y, fp.Rotation)
	}
	if fp.Width != Unit1U || fp.Height != Unit1U {
		t.Errorf("extents = %v×%v, want %v×%v", fp.Width, fp.Height, Unit1U, Unit1U)
	}
}

func TestMoveTo(t *testing.T) {
	fp := New(0, 0)
	fp.MoveTo(10, 20)
	if fp.X != 10 || fp.Y != 20 {
		t.Errorf("pose = (%v, %v), want (10, 20)", fp.X, fp.Y)
	}
}

func TestRotateToIsAbsolute(t *testing.T) {
	fp := New(0, 0)
	fp.RotateTo(math.Pi / 2)
	fp.RotateTo(math.Pi / 4)
	if !scalar.EqualWithinAbs(fp.Rotation, math.Pi/4, tol) {
		t.Errorf("Rotation = %v, want %v", fp.Rotation, math.Pi/4)
	}
}

func TestCornersNoRotation(t *testing.T) {
	fp := New(0, 0)
	fp.Width, fp.Height = 20, 20

	got := fp.Corners()
	want := Corners{
		NE: geom.Pt(10, 10),
		NW: geom.Pt(-10, 10),
		SE: geom.Pt(10, -10),
		SW: geom.Pt(-10, -10),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("Corners() mismatch (-want +got):\n%s", diff)
	}
}

func TestCornersQuarterTurn(t *testing.T) {
	fp := New(0, 0)
	fp.Width, fp.Height = 20, 20
	fp.RotateTo(math.Pi / 2)

	got := fp.Corners()
	// A 90° turn carries NE to where NW was and NW to where SW was.
	want := Corners{
		NE: geom.Pt(-10, 10),
		NW: geom.Pt(-10, -10),
		SE: geom.Pt(10, 10),
		SW: geom.Pt(10, -10),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("Corners() mismatch (-want +got):\n%s", diff)
	}
}

func TestCornersTrackPose(t *testing.T) {
	// Corners must never go stale after a mutation.
	fp := New(0, 0)
	fp.Width, fp.Height = 10, 10
	before := fp.Corners().NE
	fp.MoveTo(100, 0)
	after := fp.Corners().NE
	if !scalar.EqualWithinAbs(after.X-before.X, 100, tol) {
		t.Errorf("NE.X moved by %v, want 100", after.X-before.X)
	}
}

func TestCornerValidation(t *testing.T) {
	fp := New(0, 0)
	fp.Width, fp.Height = 20, 20

	p, err := fp.Corner(NE)
	if err != nil {
		t.Fatalf("Corner(NE) error = %v", err)
	}
	if !scalar.EqualWithinAbs(p.X, 10, tol) || !scalar.EqualWithinAbs(p.Y, 10, tol) {
		t.Errorf("Corner(NE) = %v, want (10, 10)", p)
	}

	if _, err := fp.Corner(Corner(9)); !errors.Is(err, errors.ErrCodeInvalidCorner) {
		t.Errorf("Corner(9) error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidCorner)
	}
}

func TestParseCorner(t *testing.T) {
	tests := []struct {
		name    string
		want    Corner
		wantErr bool
	}{
		{name: "NE", want: NE},
		{name: "NW", want: NW},
		{name: "SE", want: SE},
		{name: "SW", want: SW},
		{name: "ne", wantErr: true},
		{name: "center_side", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCorner(tt.name)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidCorner) {
					t.Errorf("ParseCorner(%q) error = %v, want INVALID_CORNER", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCorner(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseCorner(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCenterSideCorner(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*Footprint)
		center geom.Point
	}{
		{
			name:   "center to the west",
			setup:  func(fp *Footprint) { fp.MoveTo(100, 0) },
			center: geom.Pt(0, 0),
		},
		{
			name:   "center above in screen coords",
			setup:  func(fp *Footprint) { fp.MoveTo(0, 100) },
			center: geom.Pt(0, 0),
		},
		{
			name:   "center northeast",
			setup:  func(fp *Footprint) {},
			center: geom.Pt(50, 50),
		},
		{
			name:   "rotated footprint",
			setup:  func(fp *Footprint) { fp.MoveTo(40, 40); fp.RotateTo(math.Pi / 3) },
			center: geom.Pt(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := New(0, 0)
			fp.Width, fp.Height = 20, 20
			tt.setup(fp)

			got := fp.CenterSideCorner(tt.center)
			gotPos := fp.Corners().Get(got)
			// The chosen corner must be no farther from the center than any
			// other corner.
			for _, c := range []Corner{NE, NW, SE, SW} {
				if fp.Corners().Get(c).Dist(tt.center) < gotPos.Dist(tt.center)-tol {
					t.Errorf("corner %v is closer to %v than chosen %v", c, tt.center, got)
				}
			}
		})
	}
}

func TestCenterSideCornerTieBreak(t *testing.T) {
	// A square footprint with the reference point on its east axis leaves NE
	// and SE exactly equidistant; the first corner in evaluation order
	// (NE, NW, SE, SW) must win every time.
	fp := New(0, 0)
	fp.Width, fp.Height = 20, 20

	for i := 0; i < 100; i++ {
		if got := fp.CenterSideCorner(geom.Pt(100, 0)); got != NE {
			t.Fatalf("CenterSideCorner() = %v on run %d, want NE", got, i)
		}
	}
}

func TestPolygonOrder(t *testing.T) {
	fp := New(0, 0)
	fp.Width, fp.Height = 20, 10

	poly := fp.Polygon()
	cs := fp.Corners()
	want := [4]geom.Point{cs.NW, cs.NE, cs.SE, cs.SW}
	if diff := cmp.Diff(want, poly); diff != "" {
		t.Errorf("Polygon() order mismatch (-want +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	fp := New(2, 3)
	fp.MoveTo(10.5, 20.5)
	s := fp.String()
	for _, sub := range []string{"r2c3", "10.50", "20.50"} {
		if !strings.Contains(s, sub) {
			t.Errorf("String() = %q, want it to contain %q", s, sub)
		}
	}
}
