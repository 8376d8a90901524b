package game

import (
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/video-synth/internal/params"
)

// kaleidoSource mirrors the frame into Sectors wedges around Center
// (normalized), rotated by Angle radians.
const kaleidoSource = `//kage:unit pixels

package main

var Sectors float
var Angle float
var Center vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	c := Center * size
	p := srcPos - origin - c
	r := length(p)
	seg := 2.0 * 3.14159265358979 / Sectors
	a := mod(atan2(p.y, p.x)-Angle, seg)
	if a > seg/2.0 {
		a = seg - a
	}
	a += Angle
	q := c + vec2(cos(a), sin(a))*r
	q = clamp(q, vec2(0.0), size-vec2(1.0))
	return imageSrc0At(origin + q)
}
`

// kaleidoscope is the optional post-effect between the frame buffer and the
// screen. The shader is compiled on first use; a compile failure disables it.
type kaleidoscope struct {
	log    *slog.Logger
	shader *ebiten.Shader
	failed bool
}

// draw renders frame onto dst, mirrored when p enables the effect.
func (k *kaleidoscope) draw(dst, frame *ebiten.Image, p params.Set) {
	if !p.Kaleido || !k.ready() {
		dst.DrawImage(frame, nil)
		return
	}
	sectors := p.KSectors
	if sectors < 1 {
		sectors = 1
	}
	b := frame.Bounds()
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = frame
	op.Uniforms = map[string]any{
		"Sectors": float32(sectors),
		"Angle":   float32(p.KAngle * math.Pi / 180),
		"Center":  []float32{float32(p.KX), float32(p.KY)},
	}
	dst.DrawRectShader(b.Dx(), b.Dy(), k.shader, op)
}

func (k *kaleidoscope) ready() bool {
	if k.shader != nil {
		return true
	}
	if k.failed {
		return false
	}
	s, err := ebiten.NewShader([]byte(kaleidoSource))
	if err != nil {
		k.failed = true
		k.log.Error("kaleidoscope shader", "err", err)
		return false
	}
	k.shader = s
	return true
}
