package render

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/video-synth/internal/params"
	"github.com/iburimskiy/video-synth/internal/pattern"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func centerSquare(filled bool) []pattern.Instruction {
	return []pattern.Instruction{{
		Shape:     pattern.Rectangle,
		Transform: gg.Translate(50, 50).Multiply(gg.Scale(0.4, 0.4)),
		Filled:    filled,
		LineWidth: 1,
		Color:     color.NRGBA{A: 255},
	}}
}

func luma(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return (r + g + b) / 3 >> 8
}

func TestRasterFilled(t *testing.T) {
	dc, err := Raster(centerSquare(true), 100, 100, white)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	defer dc.Close()

	img := dc.Image()
	if l := luma(img.At(50, 50)); l > 20 {
		t.Errorf("center luma = %d, want dark", l)
	}
	if l := luma(img.At(5, 5)); l < 235 {
		t.Errorf("corner luma = %d, want background", l)
	}
}

func TestRasterOutline(t *testing.T) {
	dc, err := Raster(centerSquare(false), 100, 100, white)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	defer dc.Close()

	img := dc.Image()
	if l := luma(img.At(50, 50)); l < 235 {
		t.Errorf("outline interior luma = %d, want background", l)
	}
}

func TestWritePNG(t *testing.T) {
	p := params.Defaults()
	p.CountX = 4
	var buf bytes.Buffer
	if err := WritePNG(&buf, pattern.Generate(p, 64, 48), 64, 48, white); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 64x48", b)
	}
}

func TestWriteSVG(t *testing.T) {
	p := params.Defaults()
	p.CountX = 3
	p.CountY = 1
	ins := pattern.Generate(p, 320, 200)

	var buf bytes.Buffer
	WriteSVG(&buf, ins, 320, 200, white)
	out := buf.String()

	if got := strings.Count(out, "<polygon"); got != len(ins) {
		t.Errorf("polygons = %d, want %d", got, len(ins))
	}
	if !strings.Contains(out, "vector-effect:non-scaling-stroke") {
		t.Error("outline polygons should use a non-scaling stroke")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document not closed")
	}
}

func TestMatrixAttr(t *testing.T) {
	in := pattern.Instruction{Transform: gg.Translate(3, 4).Multiply(gg.Scale(2, 5))}
	if got, want := matrixAttr(in), "matrix(2,0,0,5,3,4)"; got != want {
		t.Errorf("matrixAttr = %q, want %q", got, want)
	}
}

func TestFillStyle(t *testing.T) {
	got := fillStyle(color.NRGBA{R: 0x12, G: 0xab, B: 0xff, A: 0xff})
	if want := "fill:#12abff;fill-opacity:1"; got != want {
		t.Errorf("fillStyle = %q, want %q", got, want)
	}
}
