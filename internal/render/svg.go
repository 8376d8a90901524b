package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/iburimskiy/video-synth/internal/pattern"
)

// WriteSVG writes ins as an SVG document: a bg rectangle followed by one
// polygon per instruction, in order. Each polygon keeps its local vertices
// under a matrix transform; outlines use a non-scaling stroke.
func WriteSVG(w io.Writer, ins []pattern.Instruction, width, height int, bg color.NRGBA) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fillStyle(bg))

	var xs, ys []int
	for _, in := range ins {
		xs, ys = xs[:0], ys[:0]
		for _, p := range in.Shape.Vertices() {
			xs = append(xs, int(p.X))
			ys = append(ys, int(p.Y))
		}
		canvas.Gtransform(matrixAttr(in))
		if in.Filled {
			canvas.Polygon(xs, ys, fillStyle(in.Color))
		} else {
			canvas.Polygon(xs, ys, strokeStyle(in.Color, in.LineWidth))
		}
		canvas.Gend()
	}
	canvas.End()
}

func matrixAttr(in pattern.Instruction) string {
	m := in.Transform
	return fmt.Sprintf("matrix(%g,%g,%g,%g,%g,%g)", m.A, m.D, m.B, m.E, m.C, m.F)
}

func hexRGB(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func fillStyle(c color.NRGBA) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%g", hexRGB(c), float64(c.A)/0xff)
}

func strokeStyle(c color.NRGBA, width float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%g;stroke-width:%g;vector-effect:non-scaling-stroke",
		hexRGB(c), float64(c.A)/0xff, width)
}
