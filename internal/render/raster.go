// Package render draws pattern instructions off screen: a gogpu/gg software
// raster for PNG output and SVG documents.
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/video-synth/internal/pattern"
)

// Raster draws ins over a bg-filled width x height canvas. The caller owns
// the returned context and must Close it.
func Raster(ins []pattern.Instruction, width, height int, bg color.NRGBA) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(toRGBA(bg))

	// Outlines are one device pixel wide whatever the instance scale, so
	// vertices are mapped here and the context keeps its identity matrix.
	for n, in := range ins {
		for i, p := range in.Points() {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
		c := toRGBA(in.Color)
		dc.SetRGBA(c.R, c.G, c.B, c.A)

		var err error
		if in.Filled {
			err = dc.Fill()
		} else {
			dc.SetLineWidth(in.LineWidth)
			err = dc.Stroke()
		}
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("instruction %d: %w", n, err)
		}
	}
	return dc, nil
}

// WritePNG rasterizes ins and encodes the result as PNG.
func WritePNG(w io.Writer, ins []pattern.Instruction, width, height int, bg color.NRGBA) error {
	dc, err := Raster(ins, width, height, bg)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(float64(c.R)/0xff, float64(c.G)/0xff, float64(c.B)/0xff, float64(c.A)/0xff)
}
