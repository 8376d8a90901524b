package game

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/video-synth/internal/pattern"
)

// TestBatchesIsolateTranslucent verifies opaque runs share a batch and each
// translucent instruction is drawn alone with the nonzero rule
func TestBatchesIsolateTranslucent(t *testing.T) {
	opaque := pattern.Instruction{Color: color.NRGBA{A: 255}}
	glass := pattern.Instruction{Color: color.NRGBA{R: 255, A: 128}}

	tests := []struct {
		name string
		ins  []pattern.Instruction
		want []batch
	}{
		{"empty", nil, nil},
		{"opaque", []pattern.Instruction{opaque, opaque, opaque}, []batch{
			{0, 3, ebiten.FillRuleFillAll},
		}},
		{"translucent", []pattern.Instruction{glass, glass}, []batch{
			{0, 1, ebiten.FillRuleNonZero},
			{1, 2, ebiten.FillRuleNonZero},
		}},
		{"mixed", []pattern.Instruction{opaque, opaque, glass, opaque}, []batch{
			{0, 2, ebiten.FillRuleFillAll},
			{2, 3, ebiten.FillRuleNonZero},
			{3, 4, ebiten.FillRuleFillAll},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := batches(tt.ins); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("batches() = %v, want %v", got, tt.want)
			}
		})
	}
}
