// Package footprint models a single keyboard key as a positioned, rotated
// rectangle with corner geometry queries.
//
// A footprint's pose is its center position (X, Y) in millimeters plus a
// rotation in radians. Corners are always derived from the current pose and
// extents; they are recomputed on demand and can never go stale.
package footprint

import (
	"fmt"
	"math"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/geom"
)

// Unit1U is the standard 1U key footprint size in millimeters.
const Unit1U = 19.05

// Corner identifies one of the four corners of a footprint.
type Corner int

// The four corners. The declared order (NE, NW, SE, SW) is the evaluation
// order for center-side tie-breaking and must not be reordered.
const (
	NE Corner = iota
	NW
	SE
	SW
)

// cornerOrder is the stable evaluation order for corner searches.
var cornerOrder = [4]Corner{NE, NW, SE, SW}

// String returns the compass name of the corner.
func (c Corner) String() string {
	switch c {
	case NE:
		return "NE"
	case NW:
		return "NW"
	case SE:
		return "SE"
	case SW:
		return "SW"
	}
	return fmt.Sprintf("Corner(%d)", int(c))
}

// ParseCorner converts a compass name to a Corner.
// It fails with INVALID_CORNER for anything other than NE, NW, SE, SW.
func ParseCorner(name string) (Corner, error) {
	switch name {
	case "NE":
		return NE, nil
	case "NW":
		return NW, nil
	case "SE":
		return SE, nil
	case "SW":
		return SW, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidCorner, "unknown corner %q (want NE, NW, SE or SW)", name)
}

// valid reports whether c is one of the four declared corners.
func (c Corner) valid() bool {
	return c >= NE && c <= SW
}

// ID identifies a footprint within a layout by row and column.
type ID struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the identity as rNcM.
func (id ID) String() string { return fmt.Sprintf("r%dc%d", id.Row, id.Col) }

// ArcRef records the arc a footprint was placed on: the arc center, the
// placement angle, and the three reference radii (through key centers, inner
// edges and outer edges). It is auxiliary metadata for renderers and reports;
// no placement algorithm reads it back.
type ArcRef struct {
	Center geom.Point
	RCen   float64
	RIn    float64
	ROut   float64
	Theta  float64
}

// Footprint is one key: an identity, a pose and rectangular extents.
// Pose and extents are mutated in place during layout; identity is fixed at
// creation.
type Footprint struct {
	Row int
	Col int

	X        float64 // center, mm
	Y        float64 // center, mm
	Rotation float64 // radians

	Width  float64 // mm
	Height float64 // mm

	// Arc holds the most recent arc placement metadata, nil before any arc
	// placement.
	Arc *ArcRef
}

// New creates a footprint at the origin with standard 1U extents.
func New(row, col int) *Footprint {
	return &Footprint{
		Row:    row,
		Col:    col,
		Width:  Unit1U,
		Height: Unit1U,
	}
}

// ID returns the footprint's (row, col) identity.
func (f *Footprint) ID() ID { return ID{Row: f.Row, Col: f.Col} }

// Center returns the current center position.
func (f *Footprint) Center() geom.Point { return geom.Pt(f.X, f.Y) }

// MoveTo sets the absolute center position.
func (f *Footprint) MoveTo(x, y float64) {
	f.X = x
	f.Y = y
}

// RotateTo sets the absolute rotation in radians. This is not a relative
// delta.
func (f *Footprint) RotateTo(rotation float64) {
	f.Rotation = rotation
}

// local returns the corner offset before rotation: (±w/2, ±h/2).
func (f *Footprint) local(c Corner) geom.Point {
	hw, hh := f.Width/2, f.Height/2
	switch c {
	case NE:
		return geom.Pt(hw, hh)
	case NW:
		return geom.Pt(-hw, hh)
	case SE:
		return geom.Pt(hw, -hh)
	default: // SW
		return geom.Pt(-hw, -hh)
	}
}

// corner computes one world corner: center + R(rotation)·local.
func (f *Footprint) corner(c Corner) geom.Point {
	l := f.local(c)
	cos, sin := math.Cos(f.Rotation), math.Sin(f.Rotation)
	return geom.Pt(
		f.X+l.X*cos-l.Y*sin,
		f.Y+l.X*sin+l.Y*cos,
	)
}

// Corners holds the four world corner positions of a footprint.
type Corners struct {
	NE geom.Point
	NW geom.Point
	SE geom.Point
	SW geom.Point
}

// Get returns the corner named by c. Get panics on an out-of-range Corner;
// use Footprint.Corner for validated access.
func (cs Corners) Get(c Corner) geom.Point {
	switch c {
	case NE:
		return cs.NE
	case NW:
		return cs.NW
	case SE:
		return cs.SE
	case SW:
		return cs.SW
	}
	panic(fmt.Sprintf("footprint: invalid corner %d", int(c)))
}

// Corners returns all four corner world positions, computed from the current
// pose and extents.
func (f *Footprint) Corners() Corners {
	return Corners{
		NE: f.corner(NE),
		NW: f.corner(NW),
		SE: f.corner(SE),
		SW: f.corner(SW),
	}
}

// Corner returns the world position of one named corner.
// It fails with INVALID_CORNER if c is not one of the four corners.
func (f *Footprint) Corner(c Corner) (geom.Point, error) {
	if !c.valid() {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidCorner, "invalid corner %d", int(c))
	}
	return f.corner(c), nil
}

// CenterSideCorner returns the name of the corner with minimum Euclidean
// distance to center. Ties resolve to the first corner reaching the minimum
// in the order NE, NW, SE, SW, so the result is deterministic across runs.
func (f *Footprint) CenterSideCorner(center geom.Point) Corner {
	best := NE
	bestDist := math.Inf(1)
	for _, c := range cornerOrder {
		d := f.corner(c).Dist(center)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// Polygon returns the four corners in the canonical winding order
// NW, NE, SE, SW used by the spacing evaluator.
func (f *Footprint) Polygon() [4]geom.Point {
	return [4]geom.Point{
		f.corner(NW),
		f.corner(NE),
		f.corner(SE),
		f.corner(SW),
	}
}

// String formats the footprint identity and pose for diagnostics.
func (f *Footprint) String() string {
	return fmt.Sprintf("Footprint(%s, pos=(%.2f,%.2f), rot=%.1f°)",
		f.ID(), f.X, f.Y, f.Rotation*180/math.Pi)
}
