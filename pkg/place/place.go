// Package place implements the footprint placement primitives: placing on an
// arc, orienting to the arc tangent, and corner-snapping against a point or
// another footprint.
//
// Every operation is a pure transformation of a footprint's pose given its
// current state and the arguments; nothing here keeps state between calls.
// The yUp flag must match the one used for every other computation on the
// same arc (see the geom package for the sign convention).
package place

import (
	"fmt"
	"math"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
)

// Orientation selects which side of an arc a key sits on. Keys above the arc
// center face the opposite way from keys below it, matching how a finger
// approaches each family.
type Orientation int

const (
	// Upper places the key on the upper side of the arc.
	Upper Orientation = iota
	// Lower places the key on the lower side of the arc.
	Lower
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Upper:
		return "UPPER"
	case Lower:
		return "LOWER"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation converts a name to an Orientation.
// It fails with INVALID_ORIENTATION for anything but "UPPER" or "LOWER".
func ParseOrientation(name string) (Orientation, error) {
	switch name {
	case "UPPER":
		return Upper, nil
	case "LOWER":
		return Lower, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidOrientation,
		"orientation must be \"UPPER\" or \"LOWER\", got %q", name)
}

func (o Orientation) valid() bool { return o == Upper || o == Lower }

// ArcOption configures OnArc.
type ArcOption func(*arcParams)

type arcParams struct {
	rIn  float64
	rOut float64
	refs bool
}

// WithReferenceRadii records the inner and outer reference radii alongside
// the center radius in the footprint's arc metadata. Renderers use these to
// draw the three reference circles; no placement algorithm reads them back.
func WithReferenceRadii(inner, outer float64) ArcOption {
	return func(p *arcParams) {
		p.rIn = inner
		p.rOut = outer
		p.refs = true
	}
}

// OnArc moves fp's center to the point on the circle of radius r around
// center at angle theta, and records the placement in fp.Arc. Rotation is
// untouched; use OrientToTangent for that.
func OnArc(fp *footprint.Footprint, center geom.Point, r, theta float64, yUp bool, opts ...ArcOption) {
	var p arcParams
	for _, opt := range opts {
		opt(&p)
	}

	pos := geom.CirclePoint(center, r, theta, yUp)
	fp.MoveTo(pos.X, pos.Y)

	ref := &footprint.ArcRef{Center: center, RCen: r, Theta: theta}
	if p.refs {
		ref.RIn = p.rIn
		ref.ROut = p.rOut
	}
	fp.Arc = ref
}

// OrientToTangent rotates fp so its up axis is tangent to the arc at theta:
// rotation = theta + π/2 for Upper, theta − π/2 for Lower, negated when
// yUp=false. It fails with INVALID_ORIENTATION for an out-of-range
// orientation.
func OrientToTangent(fp *footprint.Footprint, theta float64, o Orientation, yUp bool) error {
	if !o.valid() {
		return errors.New(errors.ErrCodeInvalidOrientation, "invalid orientation %d", int(o))
	}

	rotation := theta + math.Pi/2
	if o == Lower {
		rotation = theta - math.Pi/2
	}
	if !yUp {
		rotation = -rotation
	}
	fp.RotateTo(rotation)
	return nil
}

// Target is the destination of a corner snap: either an absolute point or a
// corner of another footprint, resolved explicitly before the snap moves
// anything.
type Target struct {
	kind       targetKind
	point      geom.Point
	other      *footprint.Footprint
	corner     footprint.Corner
	sideCenter geom.Point
}

type targetKind int

const (
	targetAbsolute targetKind = iota
	targetCorner
	targetCenterSide
)

// At returns a target at an absolute point.
func At(p geom.Point) Target {
	return Target{kind: targetAbsolute, point: p}
}

// CornerOf returns a target at the named corner of another footprint,
// resolved from that footprint's pose at snap time.
func CornerOf(other *footprint.Footprint, c footprint.Corner) Target {
	return Target{kind: targetCorner, other: other, corner: c}
}

// CenterSideOf returns a target at the other footprint's corner nearest to
// center, resolved from that footprint's pose at snap time.
func CenterSideOf(other *footprint.Footprint, center geom.Point) Target {
	return Target{kind: targetCenterSide, other: other, sideCenter: center}
}

// Resolve computes the target's world position.
func (t Target) Resolve() (geom.Point, error) {
	switch t.kind {
	case targetAbsolute:
		return t.point, nil
	case targetCorner:
		if t.other == nil {
			return geom.Point{}, errors.New(errors.ErrCodeSnapFailed, "corner target has no footprint")
		}
		p, err := t.other.Corner(t.corner)
		if err != nil {
			return geom.Point{}, errors.Wrap(errors.ErrCodeSnapFailed, err, "resolve corner target")
		}
		return p, nil
	case targetCenterSide:
		if t.other == nil {
			return geom.Point{}, errors.New(errors.ErrCodeSnapFailed, "center-side target has no footprint")
		}
		c := t.other.CenterSideCorner(t.sideCenter)
		p, err := t.other.Corner(c)
		if err != nil {
			return geom.Point{}, errors.Wrap(errors.ErrCodeSnapFailed, err, "resolve center-side target")
		}
		return p, nil
	}
	return geom.Point{}, errors.New(errors.ErrCodeSnapFailed, "unknown target kind %d", int(t.kind))
}

// CornerSelector names which corner of the moving footprint lands on the
// target: a specific corner, or the center-side corner relative to a center
// supplied separately.
type CornerSelector struct {
	centerSide bool
	corner     footprint.Corner
}

// Named selects a specific corner.
func Named(c footprint.Corner) CornerSelector {
	return CornerSelector{corner: c}
}

// CenterSide selects whichever corner is nearest an arc center. It is only
// resolvable by SnapCornerToCenterSide, which receives the center.
func CenterSide() CornerSelector {
	return CornerSelector{centerSide: true}
}

// SnapCorner translates fp, rotation unchanged, so the selected corner lands
// exactly on the target. The CenterSide selector is not resolvable here
// because no center reference is available; it fails with UNSUPPORTED and
// callers must use SnapCornerToCenterSide instead.
func SnapCorner(fp *footprint.Footprint, sel CornerSelector, target Target) error {
	if sel.centerSide {
		return errors.New(errors.ErrCodeUnsupported,
			"center-side snap needs a center reference; use SnapCornerToCenterSide")
	}

	targetPos, err := target.Resolve()
	if err != nil {
		return err
	}

	current, err := fp.Corner(sel.corner)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSnapFailed, err, "snap source corner")
	}

	translate(fp, current, targetPos)
	return nil
}

// SnapCornerToCenterSide determines which of fp's corners is nearest center
// and translates fp so that corner lands exactly on the target. With a
// CenterSideOf target, the other footprint contributes its own center-side
// corner, which is what makes adjacent arc keys touch at the corner nearest
// the arc center regardless of each key's rotation.
func SnapCornerToCenterSide(fp *footprint.Footprint, target Target, center geom.Point) error {
	targetPos, err := target.Resolve()
	if err != nil {
		return err
	}

	c := fp.CenterSideCorner(center)
	current, err := fp.Corner(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSnapFailed, err, "snap source corner")
	}

	translate(fp, current, targetPos)
	return nil
}

// translate moves fp by the exact offset from into onto, with no rounding
// beyond float arithmetic, so a snapped corner lands with zero residual.
func translate(fp *footprint.Footprint, from, onto geom.Point) {
	d := onto.Sub(from)
	fp.MoveTo(fp.X+d.X, fp.Y+d.Y)
}
