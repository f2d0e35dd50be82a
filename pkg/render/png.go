package render

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/keebtools/grinarray/pkg/errors"
	"github.com/keebtools/grinarray/pkg/footprint"
	"github.com/keebtools/grinarray/pkg/geom"
)

// RenderPNG rasterizes the same scene the SVG sink draws, at the resolution
// set by [WithScale].
func RenderPNG(fps []*footprint.Footprint, opts ...Option) ([]byte, error) {
	s := newScene(opts...)
	minX, minY, maxX, maxY := s.bounds(fps)

	w := int((maxX - minX) * s.scale)
	h := int((maxY - minY) * s.scale)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "degenerate scene bounds %dx%d px", w, h)
	}

	// World millimeters to pixel coordinates. A y-up scene flips so larger Y
	// lands higher in the image.
	toPx := func(p geom.Point) (float64, float64) {
		x := (p.X - minX) * s.scale
		y := (p.Y - minY) * s.scale
		if s.yUp {
			y = (maxY - p.Y) * s.scale
		}
		return x, y
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	if s.showCircles {
		drawCircles(dc, s, toPx)
	}
	for _, fp := range fps {
		drawKey(dc, s, fp, toPx)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawCircles(dc *gg.Context, s scene, toPx func(geom.Point) (float64, float64)) {
	cx, cy := toPx(s.center)

	dc.SetHexColor("#d3d3d3")
	dc.SetLineWidth(1)
	dc.SetDash(6, 6)
	for _, r := range s.radii {
		dc.DrawCircle(cx, cy, r*s.scale)
		dc.Stroke()
	}
	dc.SetDash()

	dc.SetHexColor("#ff0000")
	dc.SetLineWidth(1.5)
	dc.DrawLine(cx-5, cy, cx+5, cy)
	dc.DrawLine(cx, cy-5, cx, cy+5)
	dc.Stroke()
}

func drawKey(dc *gg.Context, s scene, fp *footprint.Footprint, toPx func(geom.Point) (float64, float64)) {
	poly := fp.Polygon()

	x0, y0 := toPx(poly[0])
	dc.MoveTo(x0, y0)
	for _, p := range poly[1:] {
		x, y := toPx(p)
		dc.LineTo(x, y)
	}
	dc.ClosePath()

	dc.SetHexColor(rowColor(fp.Row))
	dc.FillPreserve()
	dc.SetHexColor("#000000")
	dc.SetLineWidth(1)
	dc.Stroke()

	if s.showLabels {
		cx, cy := toPx(fp.Center())
		dc.DrawStringAnchored(fmt.Sprintf("R%dC%d", fp.Row, fp.Col), cx, cy, 0.5, 0.5)
	}
	if s.showCorners {
		dc.SetHexColor("#ff0000")
		for _, p := range poly {
			x, y := toPx(p)
			dc.DrawCircle(x, y, 2)
			dc.Fill()
		}
	}
}
