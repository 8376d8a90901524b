package game

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawLayer stretches src over a w x h rectangle at the origin, blended
// additively at alpha (0..255).
func drawLayer(dst, src *ebiten.Image, w, h, alpha float64) {
	if src == nil {
		return
	}
	b := src.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.ColorScale.ScaleAlpha(float32(clamp(alpha, 0, 255) / 255))
	op.Blend = ebiten.BlendLighter
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(src, op)
}

// stillLayer is a single image. A missing file leaves it empty.
type stillLayer struct {
	img *ebiten.Image
}

func loadStill(log *slog.Logger, path string) *stillLayer {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		log.Warn("image layer unavailable", "path", path, "err", err)
		return &stillLayer{}
	}
	return &stillLayer{img: img}
}

func (l *stillLayer) current() *ebiten.Image { return l.img }

// timeline steps through looped frames of varying duration.
type timeline struct {
	delays  []time.Duration
	total   time.Duration
	elapsed time.Duration
	index   int
}

func newTimeline(delays []time.Duration) timeline {
	t := timeline{delays: delays}
	for _, d := range delays {
		t.total += d
	}
	return t
}

// advance moves the playhead by dt and returns the current frame index.
func (t *timeline) advance(dt time.Duration) int {
	if len(t.delays) == 0 || t.total <= 0 {
		return 0
	}
	t.elapsed = (t.elapsed + dt) % t.total
	acc := time.Duration(0)
	for i, d := range t.delays {
		acc += d
		if t.elapsed < acc {
			t.index = i
			break
		}
	}
	return t.index
}

// gifDelay converts a GIF delay (1/100 s) to a duration. Zero delays, which
// browsers play at 10 fps, get the same treatment.
func gifDelay(centis int) time.Duration {
	if centis <= 0 {
		centis = 10
	}
	return time.Duration(centis) * 10 * time.Millisecond
}

// videoLayer plays an animated GIF in a loop.
type videoLayer struct {
	frames []*ebiten.Image
	clock  timeline
	index  int
}

func loadVideo(log *slog.Logger, path string) *videoLayer {
	frames, delays, err := decodeGIF(path)
	if err != nil {
		log.Warn("video layer unavailable", "path", path, "err", err)
		return &videoLayer{}
	}
	v := &videoLayer{clock: newTimeline(delays)}
	for _, f := range frames {
		v.frames = append(v.frames, ebiten.NewImageFromImage(f))
	}
	log.Debug("video layer loaded", "path", path, "frames", len(frames))
	return v
}

// decodeGIF flattens every frame of the GIF at path onto the full canvas,
// honoring frame disposal.
func decodeGIF(path string) ([]image.Image, []time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, nil, fmt.Errorf("%s: no frames", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))
	delays := make([]time.Duration, 0, len(g.Image))

	for i, frame := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			copy(previous.Pix, canvas.Pix)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)
		frames = append(frames, snapshot)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		delays = append(delays, gifDelay(delay))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, previous.Pix)
		}
	}
	return frames, delays, nil
}

func (v *videoLayer) update(dt time.Duration) {
	if len(v.frames) == 0 {
		return
	}
	v.index = v.clock.advance(dt)
}

func (v *videoLayer) current() *ebiten.Image {
	if len(v.frames) == 0 {
		return nil
	}
	return v.frames[v.index]
}
