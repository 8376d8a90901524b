package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/video-synth/internal/pattern"
)

// maxBatchVertices keeps a batch addressable by uint16 indices.
const maxBatchVertices = 1<<16 - 256

// patternSink draws instructions with ebiten's vector package. Vertex buffers
// are reused across frames.
type patternSink struct {
	antiAlias bool

	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

// batch is a run of instructions drawn with one fill rule.
type batch struct {
	lo, hi int
	rule   ebiten.FillRule
}

// batches groups consecutive opaque instructions. A translucent instruction
// gets a batch of its own with the nonzero rule so overlapping stroke
// triangles cover each pixel once.
func batches(ins []pattern.Instruction) []batch {
	var bs []batch
	for i, in := range ins {
		if in.Color.A < 0xff {
			bs = append(bs, batch{lo: i, hi: i + 1, rule: ebiten.FillRuleNonZero})
			continue
		}
		if n := len(bs); n > 0 && bs[n-1].rule == ebiten.FillRuleFillAll {
			bs[n-1].hi++
			continue
		}
		bs = append(bs, batch{lo: i, hi: i + 1, rule: ebiten.FillRuleFillAll})
	}
	return bs
}

// draw renders ins onto dst in order.
func (r *patternSink) draw(dst *ebiten.Image, ins []pattern.Instruction) {
	r.vs, r.is = r.vs[:0], r.is[:0]
	for _, b := range batches(ins) {
		for _, in := range ins[b.lo:b.hi] {
			start := len(r.vs)
			r.vs, r.is = appendInstruction(r.vs, r.is, in)

			cr, cg, cb, ca := colorComponents(in.Color)
			for i := start; i < len(r.vs); i++ {
				r.vs[i].SrcX, r.vs[i].SrcY = 1, 1
				r.vs[i].ColorR, r.vs[i].ColorG, r.vs[i].ColorB, r.vs[i].ColorA = cr, cg, cb, ca
			}
			if len(r.vs) >= maxBatchVertices {
				r.flush(dst, b.rule)
			}
		}
		r.flush(dst, b.rule)
	}
}

func (r *patternSink) flush(dst *ebiten.Image, rule ebiten.FillRule) {
	if len(r.is) > 0 {
		if r.white == nil {
			img := ebiten.NewImage(3, 3)
			img.Fill(color.White)
			r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
		}
		dst.DrawTriangles(r.vs, r.is, r.white, &ebiten.DrawTrianglesOptions{
			AntiAlias: r.antiAlias,
			FillRule:  rule,
		})
	}
	r.vs, r.is = r.vs[:0], r.is[:0]
}

func appendInstruction(vs []ebiten.Vertex, is []uint16, in pattern.Instruction) ([]ebiten.Vertex, []uint16) {
	var path vector.Path
	for i, p := range in.Points() {
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
		} else {
			path.LineTo(float32(p.X), float32(p.Y))
		}
	}
	path.Close()

	if in.Filled {
		return path.AppendVerticesAndIndicesForFilling(vs, is)
	}
	return path.AppendVerticesAndIndicesForStroke(vs, is, &vector.StrokeOptions{
		Width:    float32(in.LineWidth),
		LineJoin: vector.LineJoinMiter,
	})
}

func colorComponents(c color.NRGBA) (r, g, b, a float32) {
	return float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff
}
