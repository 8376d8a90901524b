package game

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/video-synth/internal/config"
	"github.com/iburimskiy/video-synth/internal/params"
)

// control is one editable scalar: a whole field, or one component of a
// vector or color field.
type control struct {
	field params.Field
	comp  int
	label string
}

// controls expands s's fields into scalar controls.
func controls(s *params.Set) []control {
	var out []control
	for _, f := range s.Fields() {
		switch f.Kind {
		case params.KindVec2:
			out = append(out,
				control{field: f, comp: 0, label: f.Name + ".x"},
				control{field: f, comp: 1, label: f.Name + ".y"})
		case params.KindColor:
			for i, c := range "rgba" {
				out = append(out, control{field: f, comp: i, label: f.Name + "." + string(c)})
			}
		default:
			out = append(out, control{field: f, label: f.Name})
		}
	}
	return out
}

func (c control) isBool() bool { return c.field.Kind == params.KindBool }

func (c control) bounds() (lo, hi float64) {
	if c.isBool() {
		return 0, 1
	}
	return c.field.Min, c.field.Max
}

func (c control) value() float64 {
	f := c.field
	switch f.Kind {
	case params.KindInt:
		return float64(*f.Int)
	case params.KindFloat:
		return *f.Float
	case params.KindBool:
		if *f.Bool {
			return 1
		}
		return 0
	case params.KindVec2:
		if c.comp == 0 {
			return f.Vec.X
		}
		return f.Vec.Y
	case params.KindColor:
		return float64([4]uint8{f.Color.R, f.Color.G, f.Color.B, f.Color.A}[c.comp])
	}
	return 0
}

// set stores v clamped to the control's range. Integer and color controls
// round to the nearest step.
func (c control) set(v float64) {
	lo, hi := c.bounds()
	v = clamp(v, lo, hi)
	f := c.field
	switch f.Kind {
	case params.KindInt:
		*f.Int = int(math.Round(v))
	case params.KindFloat:
		*f.Float = v
	case params.KindBool:
		*f.Bool = v >= 0.5
	case params.KindVec2:
		if c.comp == 0 {
			f.Vec.X = v
		} else {
			f.Vec.Y = v
		}
	case params.KindColor:
		b := uint8(math.Round(v))
		switch c.comp {
		case 0:
			f.Color.R = b
		case 1:
			f.Color.G = b
		case 2:
			f.Color.B = b
		default:
			f.Color.A = b
		}
	}
}

// step is the keyboard increment.
func (c control) step() float64 {
	switch c.field.Kind {
	case params.KindInt, params.KindColor, params.KindBool:
		return 1
	}
	lo, hi := c.bounds()
	return (hi - lo) / 200
}

func (c control) text() string {
	switch c.field.Kind {
	case params.KindBool:
		return strconv.FormatBool(c.value() >= 0.5)
	case params.KindInt, params.KindColor:
		return strconv.Itoa(int(c.value()))
	}
	return strconv.FormatFloat(c.value(), 'f', 2, 64)
}

// fraction is the slider fill, 0..1.
func (c control) fraction() float64 {
	lo, hi := c.bounds()
	if hi <= lo {
		return 0
	}
	return clamp01((c.value() - lo) / (hi - lo))
}

// row is a visible panel line: a group header or a control.
type row struct {
	group  string
	header bool
	ctl    control
}

// panel is the on-screen control surface.
type panel struct {
	collapsed map[string]bool
	selected  int
	dragging  int
}

// newPanel starts with every group collapsed.
func newPanel() *panel {
	p := &panel{collapsed: map[string]bool{}, dragging: -1}
	for _, g := range []string{params.GroupPattern, params.GroupGlobal, params.GroupPrim, params.GroupMixer, params.GroupKaleido} {
		p.collapsed[g] = true
	}
	return p
}

func (p *panel) rows(s *params.Set) []row {
	var out []row
	group := ""
	for _, c := range controls(s) {
		if c.field.Group != group {
			group = c.field.Group
			out = append(out, row{group: group, header: true})
		}
		if !p.collapsed[group] {
			out = append(out, row{group: group, ctl: c})
		}
	}
	return out
}

func rowRect(i int) (x, y, w, h int) {
	return config.PanelX, config.PanelY + (i+1)*config.RowHeight, config.PanelWidth, config.RowHeight
}

// rowAt maps a cursor position to a row index.
func rowAt(mx, my, n int) (int, bool) {
	x, y0, w, h := rowRect(0)
	if mx < x || mx >= x+w || my < y0 {
		return 0, false
	}
	i := (my - y0) / h
	return i, i < n
}

// sliderValue maps a cursor x to a value across the slider track.
func sliderValue(c control, mx int) float64 {
	x, _, w, _ := rowRect(0)
	x0 := float64(x + config.SliderInset)
	span := float64(w - config.SliderInset)
	lo, hi := c.bounds()
	return lo + clamp01((float64(mx)-x0)/span)*(hi-lo)
}

func keyRepeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d > 20 && d%3 == 0)
}

// update applies this tick's keyboard and mouse input to s.
func (p *panel) update(s *params.Set) {
	rows := p.rows(s)
	if len(rows) == 0 {
		return
	}

	if keyRepeat(ebiten.KeyArrowDown) {
		p.selected++
	}
	if keyRepeat(ebiten.KeyArrowUp) {
		p.selected--
	}
	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= len(rows) {
		p.selected = len(rows) - 1
	}

	sel := rows[p.selected]
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		switch {
		case sel.header:
			p.collapsed[sel.group] = !p.collapsed[sel.group]
		case sel.ctl.isBool():
			sel.ctl.set(1 - sel.ctl.value())
		}
	}
	if !sel.header && !sel.ctl.isBool() {
		step := sel.ctl.step()
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			step *= 10
		}
		if keyRepeat(ebiten.KeyArrowRight) {
			sel.ctl.set(sel.ctl.value() + step)
		}
		if keyRepeat(ebiten.KeyArrowLeft) {
			sel.ctl.set(sel.ctl.value() - step)
		}
	}

	p.updateMouse(rows)
}

func (p *panel) updateMouse(rows []row) {
	mx, my := ebiten.CursorPosition()

	if p.dragging >= 0 {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || p.dragging >= len(rows) {
			p.dragging = -1
			return
		}
		c := rows[p.dragging].ctl
		c.set(sliderValue(c, mx))
		return
	}

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	i, ok := rowAt(mx, my, len(rows))
	if !ok {
		return
	}
	p.selected = i
	r := rows[i]
	switch {
	case r.header:
		p.collapsed[r.group] = !p.collapsed[r.group]
	case r.ctl.isBool():
		r.ctl.set(1 - r.ctl.value())
	default:
		r.ctl.set(sliderValue(r.ctl, mx))
		p.dragging = i
	}
}

var (
	panelTitleColor  = color.RGBA{R: 20, G: 20, B: 20, A: 230}
	panelHeaderColor = color.RGBA{R: 60, G: 70, B: 90, A: 230}
	panelRowColor    = color.RGBA{R: 25, G: 30, B: 40, A: 200}
	panelFillColor   = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	panelSelColor    = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	mixerHeaderColor = color.RGBA{R: 139, G: 0, B: 0, A: 230}
)

func (p *panel) draw(screen *ebiten.Image, s *params.Set) {
	x, y, w, h := rowRect(-1)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelTitleColor, false)
	ebitenutil.DebugPrintAt(screen, params.GroupPattern, x+4, y)

	for i, r := range p.rows(s) {
		x, y, w, h := rowRect(i)
		fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)

		if r.header {
			bg := panelHeaderColor
			if r.group == params.GroupMixer {
				bg = mixerHeaderColor
			}
			vector.DrawFilledRect(screen, fx, fy, fw, fh-1, bg, false)
			mark := "-"
			if p.collapsed[r.group] {
				mark = "+"
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s", mark, r.group), x+4, y)
		} else {
			vector.DrawFilledRect(screen, fx, fy, fw, fh-1, panelRowColor, false)
			if !r.ctl.isBool() {
				tx := fx + config.SliderInset
				tw := (fw - config.SliderInset) * float32(r.ctl.fraction())
				vector.DrawFilledRect(screen, tx, fy+2, tw, fh-5, panelFillColor, false)
			} else if r.ctl.value() >= 0.5 {
				vector.DrawFilledRect(screen, fx+fw-14, fy+3, 10, fh-7, panelFillColor, false)
			}
			ebitenutil.DebugPrintAt(screen, r.ctl.label, x+4, y)
			ebitenutil.DebugPrintAt(screen, r.ctl.text(), x+config.SliderInset+4, y)
		}

		if i == p.selected {
			vector.StrokeRect(screen, fx, fy, fw, fh-1, 1, panelSelColor, false)
		}
	}
}
