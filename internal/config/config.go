package config

const (
	WindowTitle  = "Video synth"
	WindowWidth  = 1280
	WindowHeight = 720
	FrameRate    = 60

	// Files, relative to the working directory
	SettingsFile   = "settings.xml"
	PresetFile     = "preset.xml"
	ImageFile      = "collage.png"
	VideoFile      = "flowing.gif"
	ScreenshotFile = "screenshot.png"

	// Camera mode requested on (re)initialization
	CameraDevice = 0
	CameraWidth  = 1280
	CameraHeight = 720
	CameraFPS    = 30

	// Control panel layout
	PanelX      = 10
	PanelY      = 10
	PanelWidth  = 260
	RowHeight   = 16
	SliderInset = 110

	// Soundtrack level meter
	VisualRingSize  = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6
)
