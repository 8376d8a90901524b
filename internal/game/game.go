// Package game is the live synth: an ebiten game that composites media layers
// and the generated pattern into an off-screen frame and shows it with an
// optional control panel.
package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/video-synth/internal/config"
	"github.com/iburimskiy/video-synth/internal/params"
	"github.com/iburimskiy/video-synth/internal/pattern"
)

// Options configures a Game. Empty paths disable the corresponding layer.
type Options struct {
	Logger         *slog.Logger
	Params         params.Set
	SettingsPath   string
	ImagePath      string
	VideoPath      string
	SoundtrackPath string
}

type Game struct {
	log      *slog.Logger
	params   params.Set
	settings string

	// layers
	frame   *ebiten.Image
	sink    patternSink
	image   *stillLayer
	video   *videoLayer
	camera  *cameraLayer
	audio   *soundtrack
	kaleido kaleidoscope

	// ui
	panel      *panel
	dialogs    dialogs
	showGui    bool
	screenshot bool
	lastErr    error
}

// New loads the media layers named in opts. Missing media leave their layer
// empty.
func New(opts Options) *Game {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	g := &Game{
		log:      log,
		params:   opts.Params,
		settings: opts.SettingsPath,
		frame:    ebiten.NewImage(config.WindowWidth, config.WindowHeight),
		sink:     patternSink{antiAlias: true},
		image:    &stillLayer{},
		video:    &videoLayer{},
		camera:   newCameraLayer(log, &barsGrabber{}),
		audio:    newSoundtrack(log),
		kaleido:  kaleidoscope{log: log},
		panel:    newPanel(),
		dialogs:  zenityDialogs{},
		showGui:  true,
	}
	if opts.ImagePath != "" {
		g.image = loadStill(log, opts.ImagePath)
	}
	if opts.VideoPath != "" {
		g.video = loadVideo(log, opts.VideoPath)
	}
	if opts.SoundtrackPath != "" {
		g.audio.setGain(g.params.AudioVolume)
		if err := g.audio.load(opts.SoundtrackPath); err != nil {
			log.Warn("soundtrack unavailable", "path", opts.SoundtrackPath, "err", err)
		}
	}
	return g
}

// Params returns the current parameter set.
func (g *Game) Params() params.Set { return g.params }

func (g *Game) fail(what string, err error) {
	g.lastErr = fmt.Errorf("%s: %w", what, err)
	g.log.Error(what, "err", err)
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		g.showGui = !g.showGui
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.screenshot = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.savePreset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.loadPreset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.camera.start(config.CameraDevice, config.CameraWidth, config.CameraHeight, config.CameraFPS); err != nil {
			g.fail("camera", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.openSoundtrack()
	}

	if g.showGui {
		g.panel.update(&g.params)
	}

	g.video.update(time.Second / time.Duration(ebiten.TPS()))
	g.camera.update()
	g.audio.setGain(g.params.AudioVolume)
	g.audio.update()
	return nil
}

func (g *Game) savePreset() {
	path, ok, err := g.dialogs.savePreset()
	if err != nil {
		g.fail("save dialog", err)
		return
	}
	if !ok {
		return
	}
	if err := params.SaveFile(path, g.params); err != nil {
		g.fail("save preset", err)
		return
	}
	g.log.Info("preset saved", "path", path)
}

func (g *Game) loadPreset() {
	path, ok, err := g.dialogs.loadPreset()
	if err != nil {
		g.fail("load dialog", err)
		return
	}
	if !ok {
		return
	}
	if err := params.LoadFile(path, &g.params); err != nil {
		g.fail("load preset", err)
		return
	}
	g.log.Info("preset loaded", "path", path)
}

func (g *Game) openSoundtrack() {
	path, ok, err := g.dialogs.openSoundtrack()
	if err != nil {
		g.fail("audio dialog", err)
		return
	}
	if !ok {
		return
	}
	if err := g.audio.load(path); err != nil {
		g.fail("soundtrack", err)
	}
}

// compose renders background, media layers and pattern into dst.
func (g *Game) compose(dst *ebiten.Image) {
	p := g.params
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	dst.Fill(color.Gray{Y: uint8(clamp(p.Background, 0, 255))})

	drawLayer(dst, g.image.current(), w, h, p.ImageAlpha)
	drawLayer(dst, g.video.current(), w, h, p.VideoAlpha)
	if g.camera.initialized() {
		drawLayer(dst, g.camera.current(), h, h, p.CameraAlpha)
	}

	g.sink.draw(dst, pattern.Generate(p, w, h))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.compose(g.frame)
	g.kaleido.draw(screen, g.frame, g.params)

	if g.screenshot {
		g.screenshot = false
		if err := saveScreenshot(screen, config.ScreenshotFile); err != nil {
			g.fail("screenshot", err)
		} else {
			g.log.Info("screenshot saved", "path", config.ScreenshotFile)
		}
	}

	if g.showGui {
		g.panel.draw(screen, &g.params)
		g.drawStatus(screen)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	y := config.WindowHeight - 20
	status := "z: controls  enter: screenshot  s/l: save/load preset  c: camera  m: soundtrack  esc: quit"
	if pos, length, ok := g.audio.position(); ok {
		status = fmt.Sprintf("%s / %s  %s", formatDuration(pos), formatDuration(length), status)
		meter := float32(clamp01(g.audio.level)) * 100
		vector.DrawFilledRect(screen, float32(config.WindowWidth-112), float32(y+4), meter, 8, panelFillColor, false)
		vector.StrokeRect(screen, float32(config.WindowWidth-112), float32(y+4), 100, 8, 1, panelSelColor, false)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, config.PanelX, y)
}

func saveScreenshot(screen *ebiten.Image, path string) error {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	// the frame buffer is opaque; drop alpha left by additive layers
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close stops audio and persists the parameters to the settings file.
func (g *Game) Close() error {
	g.audio.close()
	if g.settings == "" {
		return nil
	}
	if err := params.SaveFile(g.settings, g.params); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	g.log.Info("settings saved", "path", g.settings)
	return nil
}

// Run opens the window and blocks until the synth quits. Parameters are
// persisted on the way out whatever the reason.
func Run(g *Game) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetTPS(config.FrameRate)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return errors.Join(err, g.Close())
}
