package game

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/video-synth/internal/config"
)

var (
	presetFilters = zenity.FileFilters{{
		Name:     "Presets",
		Patterns: []string{"*.xml"},
	}}
	audioFilters = zenity.FileFilters{{
		Name:     "Audio",
		Patterns: []string{"*.wav", "*.mp3", "*.flac"},
	}}
)

// dialogs asks the user for file paths. ok is false when the user cancels.
type dialogs interface {
	savePreset() (path string, ok bool, err error)
	loadPreset() (path string, ok bool, err error)
	openSoundtrack() (path string, ok bool, err error)
}

type zenityDialogs struct{}

func canceled(path string, err error) (string, bool, error) {
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}

func (zenityDialogs) savePreset() (string, bool, error) {
	return canceled(zenity.SelectFileSave(
		zenity.Title("Saving Preset"),
		zenity.Filename(config.PresetFile),
		zenity.ConfirmOverwrite(),
		presetFilters,
	))
}

func (zenityDialogs) loadPreset() (string, bool, error) {
	return canceled(zenity.SelectFile(
		zenity.Title("Loading Preset"),
		presetFilters,
	))
}

func (zenityDialogs) openSoundtrack() (string, bool, error) {
	return canceled(zenity.SelectFile(
		zenity.Title("Open Audio File"),
		audioFilters,
	))
}
