package render

import (
	"math"

	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
)

// rowPalette holds the per-row fill colors, cycled for arrays deeper than
// its length.
var rowPalette = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3",
	"#fdb462", "#b3de69", "#fccde5", "#d9d9d9", "#bc80bd",
}

func rowColor(row int) string {
	return rowPalette[row%len(rowPalette)]
}

// sceneMargin pads the computed bounds on every side, in millimeters.
const sceneMargin = 15.0

// scene is the shared renderer configuration for the SVG and PNG sinks.
type scene struct {
	center      geom.Point
	radii       []float64
	showCircles bool
	showCorners bool
	showLabels  bool
	yUp         bool
	title       string
	scale       float64
}

func defaultScene() scene {
	return scene{showLabels: true, title: "Grin Array Keyboard Layout", scale: 4}
}

// Option configures the SVG and PNG renderers.
type Option func(*scene)

// WithReferenceCircles draws dashed circles of the given radii around the
// arc center, plus a center marker.
func WithReferenceCircles(center geom.Point, radii []float64) Option {
	return func(s *scene) {
		s.center = center
		s.radii = radii
		s.showCircles = true
	}
}

// WithCorners marks the four corners of every key.
func WithCorners() Option {
	return func(s *scene) { s.showCorners = true }
}

// WithoutLabels suppresses the per-key R{row}C{col} labels.
func WithoutLabels() Option {
	return func(s *scene) { s.showLabels = false }
}

// WithYUp flips the vertical axis so larger Y values render higher, for
// layouts computed with y_up = true.
func WithYUp() Option {
	return func(s *scene) { s.yUp = true }
}

// WithScale sets the raster resolution in pixels per millimeter. Only the
// PNG sink reads it; SVG output is resolution independent.
func WithScale(pixelsPerMM float64) Option {
	return func(s *scene) {
		if pixelsPerMM > 0 {
			s.scale = pixelsPerMM
		}
	}
}

// WithTitle overrides the scene title.
func WithTitle(title string) Option {
	return func(s *scene) { s.title = title }
}

func newScene(opts ...Option) scene {
	s := defaultScene()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// bounds returns the scene's bounding box including reference circles and
// the margin. An empty scene gets a small fixed box around the origin.
func (s scene) bounds(fps []*footprint.Footprint) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, fp := range fps {
		for _, p := range fp.Polygon() {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if s.showCircles {
		for _, r := range s.radii {
			minX = math.Min(minX, s.center.X-r)
			minY = math.Min(minY, s.center.Y-r)
			maxX = math.Max(maxX, s.center.X+r)
			maxY = math.Max(maxY, s.center.Y+r)
		}
	}

	if minX > maxX {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}
	return minX - sceneMargin, minY - sceneMargin, maxX + sceneMargin, maxY + sceneMargin
}
