// Package kle imports Keyboard Layout Editor (KLE) JSON layouts.
//
// A KLE document is a JSON array of rows; each row mixes string key labels
// with directive objects. A directive ({"x": .., "y": .., "w": .., "h": ..})
// adjusts the cursor or the size of the next key only, after which the state
// resets to defaults. Distances are in keyboard units of [Unit] millimeters.
package kle

import (
	"encoding/json"
	"os"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
)

// Unit is the KLE keyboard unit in millimeters.
const Unit = footprint.Unit1U

// Key is one parsed KLE key. Coordinates are in keyboard units with the
// origin at the top-left of the layout; X/Y name the key's top-left cell
// corner, matching the KLE convention.
type Key struct {
	Label  string
	Row    int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Xmm returns the top-left x coordinate in millimeters.
func (k Key) Xmm() float64 { return k.X * Unit }

// Ymm returns the top-left y coordinate in millimeters.
func (k Key) Ymm() float64 { return k.Y * Unit }

// WidthMM returns the key width in millimeters.
func (k Key) WidthMM() float64 { return k.Width * Unit }

// HeightMM returns the key height in millimeters.
func (k Key) HeightMM() float64 { return k.Height * Unit }

// CenterXmm returns the key center's x coordinate in millimeters.
func (k Key) CenterXmm() float64 { return (k.X + k.Width/2) * Unit }

// CenterYmm returns the key center's y coordinate in millimeters.
func (k Key) CenterYmm() float64 { return (k.Y + k.Height/2) * Unit }

// Layout is a parsed KLE document, keys grouped by row.
type Layout struct {
	Rows [][]Key
}

// Flat returns every key in row-major order.
func (l Layout) Flat() []Key {
	var out []Key
	for _, row := range l.Rows {
		out = append(out, row...)
	}
	return out
}

// directive carries the cursor/size state for the next key. Fields are
// pointers so an absent field keeps the running value while an explicit one
// overrides it, matching how KLE merges consecutive directives.
type directive struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	W *float64 `json:"w"`
	H *float64 `json:"h"`
}

type state struct {
	x, y, w, h float64
}

func defaultState() state { return state{w: 1, h: 1} }

func (s *state) apply(d directive) {
	if d.X != nil {
		s.x = *d.X
	}
	if d.Y != nil {
		s.y = *d.Y
	}
	if d.W != nil {
		s.w = *d.W
	}
	if d.H != nil {
		s.h = *d.H
	}
}

// Load reads and parses a KLE JSON file.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
		}
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read layout %s", path)
	}
	return Parse(data)
}

// Parse decodes a KLE JSON document. Top-level objects (the optional layout
// metadata block) are skipped; every top-level array is a row. It fails with
// INVALID_FORMAT on anything that is not valid KLE JSON.
func Parse(data []byte) (Layout, error) {
	var doc []json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "layout is not a JSON array")
	}

	var layout Layout
	for _, raw := range doc {
		var meta map[string]json.RawMessage
		if json.Unmarshal(raw, &meta) == nil {
			continue
		}

		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "row %d is not an array", len(layout.Rows))
		}

		row, err := parseRow(len(layout.Rows), items)
		if err != nil {
			return Layout{}, err
		}
		layout.Rows = append(layout.Rows, row)
	}
	return layout, nil
}

// parseRow walks one row, carrying the x cursor in units. Directives update
// the pending state; each label emits a key at the cursor plus the pending x
// offset, advances the cursor past the key, and resets the state.
func parseRow(rowIndex int, items []json.RawMessage) ([]Key, error) {
	var (
		keys    []Key
		xCursor float64
		st      = defaultState()
	)

	for i, raw := range items {
		var d directive
		if err := json.Unmarshal(raw, &d); err == nil {
			st.apply(d)
			continue
		}

		var label string
		if err := json.Unmarshal(raw, &label); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"row %d item %d: expected a key label or a directive object", rowIndex, i)
		}

		xCursor += st.x
		keys = append(keys, Key{
			Label:  label,
			Row:    rowIndex,
			X:      xCursor,
			Y:      float64(rowIndex) + st.y,
			Width:  st.w,
			Height: st.h,
		})
		xCursor += st.w
		st = defaultState()
	}
	return keys, nil
}

// Apply seeds footprint poses and extents from a parsed layout, row/col-wise
// over the overlapping region when the shapes differ. Each footprint's
// center is moved to the key's cell center with zero rotation; an arc layout
// pass afterwards overwrites positions but keeps the seeded sizes.
func Apply(l Layout, grid [][]*footprint.Footprint) {
	rows := min(len(grid), len(l.Rows))
	for r := 0; r < rows; r++ {
		cols := min(len(grid[r]), len(l.Rows[r]))
		for c := 0; c < cols; c++ {
			key := l.Rows[r][c]
			fp := grid[r][c]
			fp.MoveTo(key.CenterXmm(), key.CenterYmm())
			fp.RotateTo(0)
			fp.Width = key.WidthMM()
			fp.Height = key.HeightMM()
		}
	}
}
