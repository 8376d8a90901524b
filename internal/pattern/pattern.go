// Package pattern turns a parameter set into the drawing instructions of one
// frame: a grid of rows, each a stripe of triangles or rectangles, every
// instance placed by its own composed affine transform.
package pattern

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/video-synth/internal/params"
)

// Shape is the primitive an Instruction draws.
type Shape int

const (
	Triangle Shape = iota
	Rectangle
)

func (s Shape) String() string {
	if s == Rectangle {
		return "rectangle"
	}
	return "triangle"
}

var (
	triangleVerts  = []gg.Point{{X: 0, Y: 0}, {X: -50, Y: 100}, {X: 50, Y: 100}}
	rectangleVerts = []gg.Point{{X: -50, Y: -50}, {X: 50, Y: -50}, {X: 50, Y: 50}, {X: -50, Y: 50}}
)

// Vertices returns the shape's outline in its local frame. The slice is
// shared and must not be modified.
func (s Shape) Vertices() []gg.Point {
	if s == Rectangle {
		return rectangleVerts
	}
	return triangleVerts
}

// Instruction is one shape with its transform and style.
type Instruction struct {
	Shape     Shape
	Transform gg.Matrix
	Filled    bool
	LineWidth float64
	Color     color.NRGBA
}

// Points returns the shape's vertices mapped through Transform.
func (in Instruction) Points() []gg.Point {
	local := in.Shape.Vertices()
	out := make([]gg.Point, len(local))
	for i, p := range local {
		out[i] = in.Transform.TransformPoint(p)
	}
	return out
}

// OverallScale eases the linear Scale slider into a zoom factor.
func OverallScale(scale float64) float64 {
	return math.Pow(scale, 4)
}

// Base is the global frame every row composes into: origin at the viewport
// center, scaled by OverallScale and rotated by Rotate degrees.
func Base(p params.Set, width, height float64) gg.Matrix {
	k := OverallScale(p.Scale)
	return gg.Translate(width/2, height/2).
		Multiply(gg.Scale(k, k)).
		Multiply(gg.Rotate(radians(p.Rotate)))
}

// Rows is the outer sequence described by p.
func Rows(p params.Set) Sequence {
	return Sequence{
		Count:   p.CountY,
		Step:    p.StepY,
		Axis:    AxisY,
		Twist:   p.TwistY,
		Pinch:   p.PinchY,
		Pinched: true,
		Closed:  true,
	}
}

// Stripe is the inner sequence described by p.
func Stripe(p params.Set) Sequence {
	return Sequence{
		Count:  p.CountX,
		Step:   p.StepX,
		Axis:   AxisX,
		Twist:  p.TwistX,
		Closed: p.ClosedX,
	}
}

// Generate returns the instructions for one frame of a width x height viewport.
func Generate(p params.Set, width, height float64) []Instruction {
	return Instances(p, Base(p, width, height))
}

// Instances runs the row and stripe loops from base. Rows are emitted in
// ascending order, and within a row primitives in ascending order.
func Instances(p params.Set, base gg.Matrix) []Instruction {
	rows, stripe := Rows(p), Stripe(p)
	out := make([]Instruction, 0, rows.Len()*stripe.Len())

	shape := Triangle
	if p.Rectangle {
		shape = Rectangle
	}
	local := gg.Translate(0, p.ShiftY).
		Multiply(gg.Rotate(radians(p.PrimRotate))).
		Multiply(gg.Scale(p.Size.X, p.Size.Y))

	rows.Each(base, func(_ int, row gg.Matrix) {
		stripe.Each(row, func(_ int, m gg.Matrix) {
			out = append(out, Instruction{
				Shape:     shape,
				Transform: m.Multiply(local),
				Filled:    p.Filled,
				LineWidth: 1,
				Color:     p.Color,
			})
		})
	})
	return out
}
