// Package spacing evaluates pairwise clearance and interference between
// placed footprints.
//
// Each footprint contributes its four-corner polygon; the separating-axis
// test decides overlap, the minimum axis overlap gives the penetration depth,
// and for disjoint pairs the minimum point-to-segment distance across both
// boundaries gives the gap. Exactly one of gap and penetration is nonzero in
// any result.
package spacing

import (
	"fmt"
	"math"

	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
)

// contactTol is the tolerance inside which touching polygons count as
// contact rather than clearance or interference.
const contactTol = 1e-6

// DefaultGapThreshold is the gap, in millimeters, at or below which a pair
// is flagged for review.
const DefaultGapThreshold = 0.5

// Status classifies the spacing between one pair of footprints.
type Status int

const (
	// Clearance means the pair is disjoint with a measurable gap.
	Clearance Status = iota
	// Contact means the pair touches within tolerance.
	Contact
	// Interference means the pair overlaps beyond tolerance.
	Interference
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Clearance:
		return "CLEARANCE"
	case Contact:
		return "CONTACT"
	case Interference:
		return "INTERFERENCE"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// PairResult reports the spacing between two footprints. Exactly one of Gap
// and Penetration is nonzero.
type PairResult struct {
	A           footprint.ID `json:"a"`
	B           footprint.ID `json:"b"`
	Gap         float64      `json:"gap"`
	Penetration float64      `json:"penetration"`
	Status      Status       `json:"status"`
}

// Pair evaluates the spacing between two footprints. The order of a and b is
// irrelevant to the geometry; identities are reported in argument order.
func Pair(a, b *footprint.Footprint) PairResult {
	polyA := a.Polygon()
	polyB := b.Polygon()

	res := PairResult{A: a.ID(), B: b.ID()}

	overlapping, penetration := satPenetration(polyA, polyB)
	if overlapping {
		res.Penetration = penetration
		res.Status = Interference
		if penetration <= contactTol {
			res.Status = Contact
		}
		return res
	}

	res.Gap = minDistance(polyA, polyB)
	res.Status = Clearance
	if res.Gap <= contactTol {
		res.Status = Contact
	}
	return res
}

// satPenetration runs the separating-axis test over every edge normal of both
// polygons. It returns (false, 0) as soon as an axis with zero projection
// overlap is found; otherwise (true, minimum overlap across axes).
func satPenetration(a, b [4]geom.Point) (bool, float64) {
	minOverlap := math.Inf(1)

	for _, poly := range [2][4]geom.Point{a, b} {
		for i := range poly {
			edge := poly[(i+1)%len(poly)].Sub(poly[i])
			length := math.Hypot(edge.X, edge.Y)
			if length == 0 {
				continue
			}
			// Edge normal, unit length.
			axis := geom.Pt(-edge.Y/length, edge.X/length)

			minA, maxA := project(axis, a)
			minB, maxB := project(axis, b)
			overlap := math.Min(maxA, maxB) - math.Max(minA, minB)
			if overlap <= 0 {
				return false, 0
			}
			if overlap < minOverlap {
				minOverlap = overlap
			}
		}
	}

	if math.IsInf(minOverlap, 1) {
		return true, 0
	}
	return true, minOverlap
}

// project returns the min and max of the polygon's vertices projected onto
// the unit axis.
func project(axis geom.Point, poly [4]geom.Point) (float64, float64) {
	lo := axis.X*poly[0].X + axis.Y*poly[0].Y
	hi := lo
	for _, p := range poly[1:] {
		d := axis.X*p.X + axis.Y*p.Y
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	return lo, hi
}

// minDistance returns the minimum boundary distance between two disjoint
// polygons: every vertex of each is checked against every edge of the other.
func minDistance(a, b [4]geom.Point) float64 {
	min := math.Inf(1)
	for i := range a {
		for j := range b {
			d := pointSegmentDistance(a[i], b[j], b[(j+1)%len(b)])
			if d < min {
				min = d
			}
			d = pointSegmentDistance(b[j], a[i], a[(i+1)%len(a)])
			if d < min {
				min = d
			}
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

// pointSegmentDistance returns the distance from p to the segment (s1, s2).
func pointSegmentDistance(p, s1, s2 geom.Point) float64 {
	d := s2.Sub(s1)
	if d.X == 0 && d.Y == 0 {
		return p.Dist(s1)
	}

	t := ((p.X-s1.X)*d.X + (p.Y-s1.Y)*d.Y) / (d.X*d.X + d.Y*d.Y)
	t = math.Max(0, math.Min(1, t))
	closest := geom.Pt(s1.X+t*d.X, s1.Y+t*d.Y)
	return p.Dist(closest)
}

// MinGap records the smallest gap found among non-interfering pairs and the
// pair that produced it.
type MinGap struct {
	Gap  float64    `json:"gap"`
	Pair PairResult `json:"pair"`
}

// Summary aggregates a full pairwise evaluation.
type Summary struct {
	// Pairs holds every evaluated pair, C(n,2) of them.
	Pairs []PairResult `json:"pairs"`
	// Interferences holds the pairs whose status is Interference.
	Interferences []PairResult `json:"interferences"`
	// SmallGaps holds non-interfering pairs whose gap is at or below the
	// threshold.
	SmallGaps []PairResult `json:"small_gaps"`
	// Min is the global minimum gap among non-interfering pairs, nil when
	// every pair interferes or fewer than two footprints were evaluated.
	Min *MinGap `json:"min_gap,omitempty"`
	// Threshold is the small-gap threshold the evaluation used.
	Threshold float64 `json:"threshold"`
}

// Option configures Evaluate.
type Option func(*config)

type config struct {
	threshold float64
}

// WithGapThreshold sets the small-gap review threshold in millimeters.
func WithGapThreshold(mm float64) Option {
	return func(c *config) { c.threshold = mm }
}

// Evaluate runs the pairwise spacing test over every unordered pair of
// footprints and aggregates the results.
func Evaluate(fps []*footprint.Footprint, opts ...Option) Summary {
	cfg := config{threshold: DefaultGapThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := Summary{Threshold: cfg.threshold}
	for i := 0; i < len(fps); i++ {
		for j := i + 1; j < len(fps); j++ {
			res := Pair(fps[i], fps[j])
			s.Pairs = append(s.Pairs, res)

			if res.Status == Interference {
				s.Interferences = append(s.Interferences, res)
				continue
			}
			if s.Min == nil || res.Gap < s.Min.Gap {
				s.Min = &MinGap{Gap: res.Gap, Pair: res}
			}
			if res.Gap <= cfg.threshold {
				s.SmallGaps = append(s.SmallGaps, res)
			}
		}
	}
	return s
}
