package pattern

import (
	"math"

	"github.com/gogpu/gg"
)

// Axis selects the direction a Sequence steps along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Sequence is one instanced transform loop. Instance i is placed by, in local
// order: an optional uniform pinch scale, a translation of i*Step along Axis
// and a rotation of i*Twist degrees. Every instance starts from the same base
// frame.
type Sequence struct {
	Count   int
	Step    float64
	Axis    Axis
	Twist   float64 // degrees
	Pinch   float64
	Pinched bool // apply the pinch scale when Count > 0
	Closed  bool // include +Count
}

// Bounds returns the first index and one past the last index.
func (s Sequence) Bounds() (lo, hi int) {
	lo, hi = -s.Count, s.Count
	if s.Closed {
		hi++
	}
	return lo, hi
}

// Len is the number of instances.
func (s Sequence) Len() int {
	lo, hi := s.Bounds()
	if hi < lo {
		return 0
	}
	return hi - lo
}

// At returns instance i's frame composed onto base.
func (s Sequence) At(base gg.Matrix, i int) gg.Matrix {
	m := base
	if s.Pinched && s.Count > 0 {
		k := RowScale(i, s.Count, s.Pinch)
		m = m.Multiply(gg.Scale(k, k))
	}
	d := float64(i) * s.Step
	if s.Axis == AxisX {
		m = m.Multiply(gg.Translate(d, 0))
	} else {
		m = m.Multiply(gg.Translate(0, d))
	}
	return m.Multiply(gg.Rotate(radians(float64(i) * s.Twist)))
}

// Each calls fn for every instance in ascending index order.
func (s Sequence) Each(base gg.Matrix, fn func(i int, m gg.Matrix)) {
	lo, hi := s.Bounds()
	for i := lo; i < hi; i++ {
		fn(i, s.At(base, i))
	}
}

// RowScale linearly maps y from [-count, count] to [1-pinch, 1].
func RowScale(y, count int, pinch float64) float64 {
	if count == 0 {
		return 1
	}
	t := float64(y+count) / float64(2*count)
	return (1 - pinch) + t*pinch
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
