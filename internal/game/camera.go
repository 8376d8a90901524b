package game

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// grabber is a camera source.
type grabber interface {
	// setup (re)opens device at the requested mode.
	setup(device, width, height, fps int) error
	// frame returns the latest frame, or nil before setup.
	frame() image.Image
}

// barsGrabber stands in for a camera when no capture backend is built in:
// setup succeeds and every frame is SMPTE color bars at the requested size.
type barsGrabber struct {
	img *image.RGBA
}

func (b *barsGrabber) setup(_, width, height, _ int) error {
	if width <= 0 || height <= 0 {
		return errors.New("invalid camera size")
	}
	b.img = colorBars(width, height)
	return nil
}

func (b *barsGrabber) frame() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

var barColors = [7]color.RGBA{
	{192, 192, 192, 255}, // gray
	{192, 192, 0, 255},   // yellow
	{0, 192, 192, 255},   // cyan
	{0, 192, 0, 255},     // green
	{192, 0, 192, 255},   // magenta
	{192, 0, 0, 255},     // red
	{0, 0, 192, 255},     // blue
}

// colorBars draws seven vertical SMPTE bars.
func colorBars(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	barWidth := width / 7
	if barWidth == 0 {
		barWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := x / barWidth
			if idx >= 7 {
				idx = 6
			}
			img.SetRGBA(x, y, barColors[idx])
		}
	}
	return img
}

// cameraLayer uploads grabber frames. It draws nothing until initialized.
type cameraLayer struct {
	log     *slog.Logger
	src     grabber
	img     *ebiten.Image
	last    image.Image
	started bool
}

func newCameraLayer(log *slog.Logger, src grabber) *cameraLayer {
	return &cameraLayer{log: log, src: src}
}

// start (re)initializes the grabber at the given mode.
func (c *cameraLayer) start(device, width, height, fps int) error {
	if err := c.src.setup(device, width, height, fps); err != nil {
		c.started = false
		return err
	}
	c.started = true
	c.last = nil
	c.log.Info("camera initialized", "device", device, "width", width, "height", height, "fps", fps)
	return nil
}

func (c *cameraLayer) initialized() bool { return c.started }

func (c *cameraLayer) update() {
	if !c.started {
		return
	}
	f := c.src.frame()
	if f == nil || f == c.last {
		return
	}
	c.last = f
	b := f.Bounds()
	if c.img == nil || c.img.Bounds().Size() != b.Size() {
		c.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	c.img.WritePixels(toRGBA(f).Pix)
}

func (c *cameraLayer) current() *ebiten.Image {
	if !c.started {
		return nil
	}
	return c.img
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}
