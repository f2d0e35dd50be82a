package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/keebtools/grinarray/pkg/footprint"
)

// RenderSVG renders the footprints as an SVG document. Keys are drawn as
// rotated rectangles filled per row, oldest row first so labels stay on top.
func RenderSVG(fps []*footprint.Footprint, opts ...Option) []byte {
	s := newScene(opts...)
	minX, minY, maxX, maxY := s.bounds(fps)
	width, height := maxX-minX, maxY-minY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, width, height, width, height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", s.title)

	// SVG y grows downward; a y-up scene is flipped around the vertical
	// center of the viewBox.
	if s.yUp {
		fmt.Fprintf(&buf, `  <g transform="translate(0 %.2f) scale(1 -1)">`+"\n", minY+maxY)
	} else {
		buf.WriteString("  <g>\n")
	}

	if s.showCircles {
		renderCircles(&buf, s)
	}
	for _, fp := range fps {
		renderKey(&buf, s, fp)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderCircles(buf *bytes.Buffer, s scene) {
	for _, r := range s.radii {
		fmt.Fprintf(buf,
			`    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="lightgray" stroke-width="0.5" stroke-dasharray="3 3"/>`+"\n",
			s.center.X, s.center.Y, r)
	}
	fmt.Fprintf(buf,
		`    <path d="M %.2f %.2f h 6 m -3 -3 v 6" stroke="red" stroke-width="0.8" fill="none"/>`+"\n",
		s.center.X-3, s.center.Y)
}

func renderKey(buf *bytes.Buffer, s scene, fp *footprint.Footprint) {
	deg := fp.Rotation * 180 / math.Pi

	fmt.Fprintf(buf, `    <g transform="translate(%.3f %.3f) rotate(%.3f)">`+"\n", fp.X, fp.Y, deg)
	fmt.Fprintf(buf,
		`      <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="%s" fill-opacity="0.7" stroke="black" stroke-width="0.4"/>`+"\n",
		-fp.Width/2, -fp.Height/2, fp.Width, fp.Height, rowColor(fp.Row))
	if s.showLabels {
		// Counter-rotate inside a flipped scene so text stays readable.
		if s.yUp {
			fmt.Fprintf(buf, `      <text x="0" y="0" transform="scale(1 -1)" font-size="3.5" text-anchor="middle" dominant-baseline="middle">R%dC%d</text>`+"\n",
				fp.Row, fp.Col)
		} else {
			fmt.Fprintf(buf, `      <text x="0" y="0" font-size="3.5" text-anchor="middle" dominant-baseline="middle">R%dC%d</text>`+"\n",
				fp.Row, fp.Col)
		}
	}
	buf.WriteString("    </g>\n")

	if s.showCorners {
		for _, p := range fp.Polygon() {
			fmt.Fprintf(buf, `    <circle cx="%.3f" cy="%.3f" r="0.8" fill="red" fill-opacity="0.5"/>`+"\n", p.X, p.Y)
		}
	}
}
