package pattern

import (
	"reflect"
	"testing"

	"github.com/gogpu/gg"
)

func TestSequenceBounds(t *testing.T) {
	tests := []struct {
		name   string
		seq    Sequence
		lo, hi int
		n      int
	}{
		{"half open", Sequence{Count: 3}, -3, 3, 6},
		{"closed", Sequence{Count: 3, Closed: true}, -3, 4, 7},
		{"empty", Sequence{}, 0, 0, 0},
		{"closed empty", Sequence{Closed: true}, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.seq.Bounds()
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Bounds() = [%d,%d), want [%d,%d)", lo, hi, tt.lo, tt.hi)
			}
			if got := tt.seq.Len(); got != tt.n {
				t.Errorf("Len() = %d, want %d", got, tt.n)
			}
		})
	}
}

func TestSequenceEachAscending(t *testing.T) {
	var got []int
	Sequence{Count: 2, Closed: true}.Each(gg.Identity(), func(i int, _ gg.Matrix) {
		got = append(got, i)
	})
	if want := []int{-2, -1, 0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("indices = %v, want %v", got, want)
	}
}

func TestSequenceInstancesIndependent(t *testing.T) {
	seq := Sequence{Count: 2, Step: 10, Axis: AxisX, Twist: 90}
	base := gg.Translate(5, 5)

	// Instance 1 must not inherit instance 0's rotation.
	m := seq.At(base, 1)
	if !near(m.C, 15) || !near(m.F, 5) {
		t.Errorf("instance 1 origin = (%v,%v), want (15,5)", m.C, m.F)
	}
	p := m.TransformPoint(gg.Pt(1, 0))
	if !near(p.X, 15) || !near(p.Y, 6) {
		t.Errorf("instance 1 rotated +x to %v, want (15,6)", p)
	}
}

func TestSequencePinchOrder(t *testing.T) {
	// Pinch scales the translation as well: it is applied first.
	seq := Sequence{Count: 1, Step: 100, Axis: AxisY, Pinch: 0.5, Pinched: true}
	m := seq.At(gg.Identity(), -1)
	if !near(m.F, -50) || !near(m.E, 0.5) {
		t.Errorf("row -1 = %+v, want scale 0.5 and y -50", m)
	}
}
