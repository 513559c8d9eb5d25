package model

import (
	"fmt"
	"math"
	"strings"
)

// Detection is one object reported by the detector for one frame.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// Valid reports whether the detection can safely enter the pipeline: a finite
// box with non-negative size and a confidence in [0,1].
func (d Detection) Valid() bool {
	if math.IsNaN(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return false
	}
	return d.Box.Valid()
}

// Orientation is the physical device orientation at capture time.
type Orientation int

const (
	Portrait Orientation = iota
	PortraitUpsideDown
	LandscapeLeft
	LandscapeRight
	UnknownOrientation
)

var orientationNames = map[Orientation]string{
	Portrait:           "portrait",
	PortraitUpsideDown: "portrait_upside_down",
	LandscapeLeft:      "landscape_left",
	LandscapeRight:     "landscape_right",
	UnknownOrientation: "unknown",
}

func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return "unknown"
}

// ParseOrientation maps a name to an Orientation. Unrecognized names yield
// UnknownOrientation rather than an error: the pipeline degrades instead of failing.
func ParseOrientation(s string) Orientation {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	for o, name := range orientationNames {
		if name == key {
			return o
		}
	}
	return UnknownOrientation
}

// Preset is the capture aspect-ratio class.
type Preset int

const (
	// Video16x9 covers every video capture preset.
	Video16x9 Preset = iota
	// Photo4x3 is the still-photo resolution preset.
	Photo4x3
)

// SourceAspectRatio returns the long/short side ratio of frames captured with p.
func (p Preset) SourceAspectRatio() float64 {
	if p == Photo4x3 {
		return 4.0 / 3.0
	}
	return 16.0 / 9.0
}

func (p Preset) String() string {
	if p == Photo4x3 {
		return "photo"
	}
	return "video"
}

// ParsePreset maps "photo" (or "4:3") to Photo4x3 and anything else to Video16x9.
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "photo", "4:3", "4x3":
		return Photo4x3, nil
	case "", "video", "16:9", "16x9":
		return Video16x9, nil
	default:
		return Video16x9, fmt.Errorf("unknown capture preset %q", s)
	}
}

// Frame is everything the pipeline consumes for one captured video frame.
type Frame struct {
	Index       int64
	Orientation Orientation
	Preset      Preset
	Display     Size
	Detections  []Detection
}
