// Package params holds the synth's Parameter Set and the descriptor table the
// control surface and preset files use to address its fields by name.
package params

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Vec2 is a 2D value such as the primitive size.
type Vec2 struct {
	X, Y float64
}

// Set is the complete, externally editable configuration of one frame.
type Set struct {
	// Parameters
	CountX  int
	StepX   float64
	TwistX  float64
	ClosedX bool
	CountY  int
	StepY   float64
	TwistY  float64
	PinchY  float64

	// Global
	Scale      float64
	Rotate     float64
	Background float64

	// Primitive
	ShiftY     float64
	PrimRotate float64
	Size       Vec2
	Color      color.NRGBA
	Filled     bool
	Rectangle  bool

	// Mixer
	ImageAlpha  float64
	VideoAlpha  float64
	CameraAlpha float64
	AudioVolume float64

	// Kaleidoscope
	Kaleido  bool
	KSectors int
	KAngle   float64
	KX, KY   float64
}

// Defaults returns the startup values.
func Defaults() Set {
	return Set{
		CountX: 50,
		StepX:  20,
		TwistX: 5,
		CountY: 0,
		StepY:  20,

		Scale:      1,
		Background: 255,

		Size:  Vec2{6, 6},
		Color: color.NRGBA{A: 255},

		ImageAlpha:  100,
		VideoAlpha:  200,
		CameraAlpha: 100,
		AudioVolume: 1,

		KSectors: 8,
		KX:       0.5,
		KY:       0.5,
	}
}

// Group names, in control surface order.
const (
	GroupPattern = "Parameters"
	GroupGlobal  = "Global"
	GroupPrim    = "Primitive"
	GroupMixer   = "Mixer"
	GroupKaleido = "Kaleidoscope"
)

// Kind is the value kind of a Field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindVec2
	KindColor
)

// Field binds a named, grouped parameter to its storage in a Set.
// Exactly one of the pointers is non-nil, matching Kind.
type Field struct {
	Name     string
	Group    string
	Kind     Kind
	Min, Max float64

	Int   *int
	Float *float64
	Bool  *bool
	Vec   *Vec2
	Color *color.NRGBA
}

// Fields returns the descriptor table for s. The pointers alias s, so the
// returned slice is only valid while s is.
func (s *Set) Fields() []Field {
	return []Field{
		{Name: "countX", Group: GroupPattern, Kind: KindInt, Min: 0, Max: 200, Int: &s.CountX},
		{Name: "stepX", Group: GroupPattern, Kind: KindFloat, Min: 0, Max: 200, Float: &s.StepX},
		{Name: "twistX", Group: GroupPattern, Kind: KindFloat, Min: -45, Max: 45, Float: &s.TwistX},
		{Name: "closedX", Group: GroupPattern, Kind: KindBool, Bool: &s.ClosedX},
		{Name: "countY", Group: GroupPattern, Kind: KindInt, Min: 0, Max: 50, Int: &s.CountY},
		{Name: "stepY", Group: GroupPattern, Kind: KindFloat, Min: 0, Max: 200, Float: &s.StepY},
		{Name: "twistY", Group: GroupPattern, Kind: KindFloat, Min: -30, Max: 30, Float: &s.TwistY},
		{Name: "pinchY", Group: GroupPattern, Kind: KindFloat, Min: 0, Max: 1, Float: &s.PinchY},

		{Name: "Scale", Group: GroupGlobal, Kind: KindFloat, Min: 0, Max: 1, Float: &s.Scale},
		{Name: "Rotate", Group: GroupGlobal, Kind: KindFloat, Min: -180, Max: 180, Float: &s.Rotate},
		{Name: "Background", Group: GroupGlobal, Kind: KindFloat, Min: 0, Max: 255, Float: &s.Background},

		{Name: "shiftY", Group: GroupPrim, Kind: KindFloat, Min: -1000, Max: 1000, Float: &s.ShiftY},
		{Name: "rotate", Group: GroupPrim, Kind: KindFloat, Min: -180, Max: 180, Float: &s.PrimRotate},
		{Name: "size", Group: GroupPrim, Kind: KindVec2, Min: 0, Max: 20, Vec: &s.Size},
		{Name: "color", Group: GroupPrim, Kind: KindColor, Min: 0, Max: 255, Color: &s.Color},
		{Name: "filled", Group: GroupPrim, Kind: KindBool, Bool: &s.Filled},
		{Name: "type", Group: GroupPrim, Kind: KindBool, Bool: &s.Rectangle},

		{Name: "image", Group: GroupMixer, Kind: KindFloat, Min: 0, Max: 255, Float: &s.ImageAlpha},
		{Name: "video", Group: GroupMixer, Kind: KindFloat, Min: 0, Max: 255, Float: &s.VideoAlpha},
		{Name: "camera", Group: GroupMixer, Kind: KindFloat, Min: 0, Max: 255, Float: &s.CameraAlpha},
		{Name: "audio", Group: GroupMixer, Kind: KindFloat, Min: 0, Max: 1, Float: &s.AudioVolume},

		{Name: "kenabled", Group: GroupKaleido, Kind: KindBool, Bool: &s.Kaleido},
		{Name: "ksectors", Group: GroupKaleido, Kind: KindInt, Min: 1, Max: 32, Int: &s.KSectors},
		{Name: "kangle", Group: GroupKaleido, Kind: KindFloat, Min: -180, Max: 180, Float: &s.KAngle},
		{Name: "kx", Group: GroupKaleido, Kind: KindFloat, Min: 0, Max: 1, Float: &s.KX},
		{Name: "ky", Group: GroupKaleido, Kind: KindFloat, Min: 0, Max: 1, Float: &s.KY},
	}
}

// Lookup returns the field named name.
func (s *Set) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Ranged reports whether the field is slider-backed.
func (f Field) Ranged() bool {
	return f.Kind != KindBool
}

// Format renders the field's current value as preset text.
func (f Field) Format() string {
	switch f.Kind {
	case KindInt:
		return strconv.Itoa(*f.Int)
	case KindFloat:
		return formatFloat(*f.Float)
	case KindBool:
		return strconv.FormatBool(*f.Bool)
	case KindVec2:
		return formatFloat(f.Vec.X) + "," + formatFloat(f.Vec.Y)
	case KindColor:
		return FormatColor(*f.Color)
	}
	return ""
}

// Parse sets the field from preset text. On error the field is unchanged.
func (f Field) Parse(text string) error {
	text = strings.TrimSpace(text)
	switch f.Kind {
	case KindInt:
		v, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Int = v
	case KindFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Float = v
	case KindBool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Bool = v
	case KindVec2:
		xs, ys, ok := strings.Cut(text, ",")
		if !ok {
			return fmt.Errorf("%s: want x,y, got %q", f.Name, text)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Vec = Vec2{x, y}
	case KindColor:
		c, err := ParseColor(text)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		*f.Color = c
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatColor renders c as #rrggbbaa.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor accepts #rrggbb (opaque) or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	var alpha uint8 = 255
	switch len(s) {
	case 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad alpha in %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	default:
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}
