package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/iburimskiy/video-synth/internal/config"
	"github.com/iburimskiy/video-synth/internal/game"
	"github.com/iburimskiy/video-synth/internal/params"
)

func main() {
	settings := flag.String("settings", config.SettingsFile, "Parameter file loaded at start and saved on exit")
	imagePath := flag.String("image", config.ImageFile, "Still image layer (PNG or JPEG)")
	videoPath := flag.String("video", config.VideoFile, "Video layer (animated GIF)")
	audioPath := flag.String("audio", "", "Soundtrack to loop (wav, mp3 or flac)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Video synth - generative pattern mixer

Usage:
  video-synth [options]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Keys:
  z       show/hide controls
  enter   screenshot to %s
  s / l   save / load preset
  c       start camera (%dx%d @ %d fps)
  m       open soundtrack
  esc, q  quit (parameters are saved to -settings)
`, config.ScreenshotFile, config.CameraWidth, config.CameraHeight, config.CameraFPS)
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p := params.Defaults()
	if err := params.LoadFile(*settings, &p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("no settings yet, using defaults", "path", *settings)
		} else {
			log.Warn("settings not loaded, using defaults", "err", err)
		}
	}

	g := game.New(game.Options{
		Logger:         log,
		Params:         p,
		SettingsPath:   *settings,
		ImagePath:      *imagePath,
		VideoPath:      *videoPath,
		SoundtrackPath: *audioPath,
	})
	if err := game.Run(g); err != nil {
		log.Error("video synth", "err", err)
		os.Exit(1)
	}
	final := g.Params()
	log.Debug("final parameters", "countX", final.CountX, "countY", final.CountY,
		"scale", final.Scale, "color", params.FormatColor(final.Color))
}
