package params

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

func sample() Set {
	s := Defaults()
	s.CountX = 7
	s.StepX = 12.375
	s.TwistX = -3.1
	s.ClosedX = true
	s.CountY = 4
	s.StepY = 33.3
	s.TwistY = 0.1
	s.PinchY = 0.25
	s.Scale = 0.8
	s.Rotate = -90
	s.Background = 17
	s.ShiftY = -250.5
	s.PrimRotate = 45
	s.Size = Vec2{1.5, 19}
	s.Color = color.NRGBA{R: 12, G: 200, B: 255, A: 128}
	s.Filled = true
	s.Rectangle = true
	s.ImageAlpha = 0
	s.VideoAlpha = 255
	s.CameraAlpha = 42
	s.AudioVolume = 0.3
	s.Kaleido = true
	s.KSectors = 6
	s.KAngle = 12
	s.KX, s.KY = 0.1, 0.9
	return s
}

func TestPresetRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		name string
		set  Set
	}{
		{"defaults", Defaults()},
		{"edited", sample()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Save(&buf, tt.set); err != nil {
				t.Fatalf("Save: %v", err)
			}
			var got Set
			if err := Load(&buf, &got); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != tt.set {
				t.Errorf("round trip mismatch\n got %+v\nwant %+v", got, tt.set)
			}
		})
	}
}

func TestSaveWritesRanges(t *testing.T) {
	var buf bytes.Buffer
	if err := Save(&buf, Defaults()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`<param name="countX" group="Parameters" min="0" max="200">50</param>`,
		`<param name="filled" group="Primitive">false</param>`,
		`<param name="size" group="Primitive" min="0" max="20">6,6</param>`,
		`<param name="color" group="Primitive" min="0" max="255">#000000ff</param>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("preset missing %s\n%s", want, out)
		}
	}
}

func TestLoadPartialAndUnknown(t *testing.T) {
	doc := `<preset>
	<param name="countX">3</param>
	<param name="nope">1</param>
	<param name="pinchY">1.5</param>
</preset>`
	s := Defaults()
	if err := Load(strings.NewReader(doc), &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.CountX = 3
	want.PinchY = 1.5 // out of slider range, passed through
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestLoadMalformedLeavesSetUntouched(t *testing.T) {
	doc := `<preset>
	<param name="countX">3</param>
	<param name="stepX">wide</param>
</preset>`
	s := Defaults()
	err := Load(strings.NewReader(doc), &s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "stepX") {
		t.Errorf("error %q does not name the key", err)
	}
	if s != Defaults() {
		t.Errorf("set mutated on failed load: %+v", s)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{A: 255}, false},
		{"#ff8000", color.NRGBA{R: 255, G: 128, A: 255}, false},
		{"0c80ff40", color.NRGBA{R: 12, G: 128, B: 255, A: 64}, false},
		{"#12", color.NRGBA{}, true},
		{"#zz0000", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldsUniqueNames(t *testing.T) {
	s := Defaults()
	seen := map[string]bool{}
	for _, f := range s.Fields() {
		if seen[f.Name] {
			t.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}
}

func TestFieldsAliasSet(t *testing.T) {
	s := Defaults()
	f, ok := s.Lookup("twistY")
	if !ok {
		t.Fatal("twistY not found")
	}
	*f.Float = 9
	if s.TwistY != 9 {
		t.Errorf("TwistY = %v, want 9", s.TwistY)
	}
}
