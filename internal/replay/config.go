package replay

import (
	"github.com/okian/courtside/internal/domain/model"
)

// Config holds configuration for a replay run.
type Config struct {
	Input       string  // JSON-lines frame file; "-" reads stdin
	Synthetic   bool    // generate frames instead of reading Input
	Shots       int     // number of synthetic shots
	MissEvery   int     // every n-th synthetic shot misses; 0 never misses
	Orientation string  // default orientation for frames that omit one
	Preset      string  // default capture preset for frames that omit one
	Width       float64 // default display width in points
	Height      float64 // default display height in points
	Cooldown    int64   // made-shot cooldown in frames; negative keeps the engine default
	Verbose     bool    // print every frame with events
}

// Defaults returns a Config for a portrait phone display.
func Defaults() Config {
	return Config{
		Shots:       5,
		Orientation: "portrait",
		Preset:      "video",
		Width:       375,
		Height:      812,
		Cooldown:    -1,
	}
}

// Stats holds replay totals.
type Stats struct {
	Frames     int
	Degraded   int
	Skipped    int
	Attempts   int
	Made       int
	Score      string
	Percentage int
}

// FrameDefaults fills fields a frame line leaves out.
type FrameDefaults struct {
	Orientation model.Orientation
	Preset      model.Preset
	Display     model.Size
}

func (c Config) frameDefaults() (FrameDefaults, error) {
	preset, err := model.ParsePreset(c.Preset)
	if err != nil {
		return FrameDefaults{}, err
	}
	return FrameDefaults{
		Orientation: model.ParseOrientation(c.Orientation),
		Preset:      preset,
		Display:     model.Size{Width: c.Width, Height: c.Height},
	}, nil
}
