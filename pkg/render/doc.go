// Package render produces output artifacts from a laid-out key array.
//
// # Overview
//
// Three sinks share one scene model (footprint rectangles, optional
// reference circles, labels):
//
//   - SVG: rotated key rectangles with per-row fill colors, via [RenderSVG]
//   - PNG: the same scene rasterized, via [RenderPNG]
//   - JSON: a layout snapshot for external tools, via [WriteJSON]
//
// Basic usage:
//
//	svg := render.RenderSVG(arr.Footprints(),
//	    render.WithReferenceCircles(center, arr.Radii()),
//	    render.WithCorners(),
//	)
//
// Coordinates are in millimeters with Y increasing downward, matching the
// layout engine's default axis convention. [WithYUp] flips the scene for
// configurations laid out with y_up = true.
package render
