// Package pkg provides the core libraries for Grin array layout computation.
//
// # Overview
//
// A Grin array places keyboard keys along concentric arcs so each row curves
// with the fingers. The pkg directory is organized by concern:
//
//  1. [geom] - Arc geometry primitives (circle points, angular steps)
//  2. [footprint] - The key rectangle model (pose, corners, polygons)
//  3. [place] - Placement operators (on-arc, tangent orientation, snapping)
//  4. [layout] - Row division and the full layout pass
//  5. [spacing] - Pairwise gap and interference evaluation
//  6. [kle] - Keyboard Layout Editor JSON import
//  7. [render] - SVG, PNG, and JSON snapshot sinks
//
// # Architecture
//
// The typical data flow:
//
//	Config (TOML) / KLE JSON
//	         ↓
//	    [layout] package (divide rows, place sections)
//	         ↓
//	    [place] + [geom] (per-key transformations)
//	         ↓
//	    [spacing] (clearance checks)
//	         ↓
//	    [render] (SVG/PNG/JSON output)
//
// Supporting packages: [errors] for coded errors, [observability] for
// pluggable instrumentation hooks, [buildinfo] for version stamping.
//
// [geom]: github.com/keebtools/grinarray/pkg/geom
// [footprint]: github.com/keebtools/grinarray/pkg/footprint
// [place]: github.com/keebtools/grinarray/pkg/place
// [layout]: github.com/keebtools/grinarray/pkg/layout
// [spacing]: github.com/keebtools/grinarray/pkg/spacing
// [kle]: github.com/keebtools/grinarray/pkg/kle
// [render]: github.com/keebtools/grinarray/pkg/render
// [errors]: github.com/keebtools/grinarray/pkg/errors
// [observability]: github.com/keebtools/grinarray/pkg/observability
// [buildinfo]: github.com/keebtools/grinarray/pkg/buildinfo
package pkg
