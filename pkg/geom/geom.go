// Package geom provides the circle-point and angle-step trigonometry used by
// arc-based key placement.
//
// All distances are in millimeters and all angles in radians. A single sign
// convention governs every arc computation: with YUp=false (screen
// coordinates, Y increasing downward), a positive angle sweeps downward on
// the page, so the sin term of a circle point is negated. Callers must thread
// the same yUp flag through every call that touches the same arc.
package geom

import (
	"math"

	"github.com/keebtools/grinarray/pkg/errors"
)

// Point is a 2D point in millimeters.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p − q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// CirclePoint returns the point on the circle of radius r around c at angle
// theta. With yUp=true the Y axis points up (mathematical convention); with
// yUp=false it points down (screen convention) and the sin term is negated.
func CirclePoint(c Point, r, theta float64, yUp bool) Point {
	x := c.X + r*math.Cos(theta)
	y := c.Y + r*math.Sin(theta)
	if !yUp {
		y = c.Y - r*math.Sin(theta)
	}
	return Point{X: x, Y: y}
}

// AngleStep returns the central angle subtended by a chord of length pitch on
// a circle of radius r: 2·asin(pitch/2r). It fails with GEOMETRY_INFEASIBLE
// when pitch/(2r) > 1, since no chord can exceed the diameter.
func AngleStep(pitch, r float64) (float64, error) {
	ratio := pitch / (2 * r)
	if ratio > 1.0 {
		return 0, errors.New(errors.ErrCodeGeometryInfeasible,
			"pitch/(2*R) = %g exceeds 1: increase R or decrease pitch", ratio)
	}
	return 2 * math.Asin(ratio), nil
}
