package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/video-synth/internal/config"
)

// soundtrack loops one audio file under the visuals. Its gain follows the
// mixer's audio slider and a tap feeds the HUD level meter.
type soundtrack struct {
	log *slog.Logger

	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	volume      *effects.Volume
	tap         *levelTap
	gain        float64
	level       float64

	initDone bool
}

func newSoundtrack(log *slog.Logger) *soundtrack {
	return &soundtrack{log: log, gain: 1}
}

func decodeAudio(path string, f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
}

// load replaces the current soundtrack with the file at path and starts it.
func (s *soundtrack) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := decodeAudio(path, f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", path, err)
	}

	t := newLevelTap(beep.Loop(-1, streamer), config.VisualRingSize)
	vol := &effects.Volume{Streamer: t, Base: 2}
	applyGain(vol, s.gain)

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !s.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
		s.initDone = true
	case s.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return err
		}
	default:
		speaker.Clear()
	}
	s.closeFile()

	s.currentFile = f
	s.streamer = streamer
	s.format = format
	s.volume = vol
	s.tap = t
	s.level = 0

	speaker.Play(vol)
	s.log.Info("soundtrack loaded", "path", path, "rate", int(format.SampleRate))
	return nil
}

func applyGain(vol *effects.Volume, gain float64) {
	vol.Silent = gain <= 0
	if !vol.Silent {
		vol.Volume = math.Log2(gain)
	}
}

// setGain follows the mixer slider; the speaker is only locked on change.
func (s *soundtrack) setGain(gain float64) {
	if gain == s.gain {
		return
	}
	s.gain = gain
	if s.volume == nil {
		return
	}
	speaker.Lock()
	applyGain(s.volume, gain)
	speaker.Unlock()
}

// update smooths the meter level; call once per tick.
func (s *soundtrack) update() {
	if s.tap == nil {
		return
	}
	mag := math.Pow(s.tap.rms(config.LevelWindow), 0.3)
	s.level = config.SmoothingFactor*s.level + (1-config.SmoothingFactor)*mag
}

// position reports the playback position within the file.
func (s *soundtrack) position() (pos, length time.Duration, ok bool) {
	if s.streamer == nil {
		return 0, 0, false
	}
	speaker.Lock()
	p, n := s.streamer.Position(), s.streamer.Len()
	speaker.Unlock()
	return s.format.SampleRate.D(p), s.format.SampleRate.D(n), true
}

func (s *soundtrack) closeFile() {
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.currentFile != nil {
		_ = s.currentFile.Close()
		s.currentFile = nil
	}
}

func (s *soundtrack) close() {
	if s.initDone {
		speaker.Clear()
	}
	s.closeFile()
	s.volume, s.tap = nil, nil
}
