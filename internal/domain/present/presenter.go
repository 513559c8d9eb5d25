// Package present turns mapped detections into draw instructions.
package present

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/okian/courtside/internal/domain/model"
)

// Display threshold constants for annotation opacity.
const (
	alphaFloor = 0.2
	alphaMax   = 0.9
)

// Presenter builds annotations and owns the per-session label color cache.
// It is not safe for concurrent use.
type Presenter struct {
	rng    *rand.Rand
	colors map[string]model.Color
}

// NewPresenter creates a Presenter with configuration options.
func NewPresenter(opts ...Option) *Presenter {
	p := &Presenter{colors: make(map[string]model.Color)}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // display colors only
	}
	return p
}

// Present returns the annotation for d drawn at rect.
func (p *Presenter) Present(d model.Detection, rect model.Rect) model.Annotation {
	return model.Annotation{
		Rect:  rect,
		Text:  Label(d),
		Color: p.Color(d.Label),
		Alpha: Alpha(d.Confidence),
	}
}

// Color returns the cached color for label, assigning a random one on first use.
func (p *Presenter) Color(label string) model.Color {
	if c, ok := p.colors[label]; ok {
		return c
	}
	c := toModel(colorful.Hsv(p.rng.Float64()*360, 0.5+p.rng.Float64()*0.5, 0.6+p.rng.Float64()*0.4))
	p.colors[label] = c
	return c
}

// Label formats "<label> <confidence percent to one decimal>".
func Label(d model.Detection) string {
	return fmt.Sprintf("%s %.1f", d.Label, d.Confidence*100)
}

// Alpha maps confidence to opacity: 0 at or below 0.2, rising linearly to 0.9.
func Alpha(confidence float64) float64 {
	a := (confidence - alphaFloor) / (1 - alphaFloor) * alphaMax
	return math.Max(0, math.Min(alphaMax, a))
}

func toModel(c colorful.Color) model.Color {
	c = c.Clamped()
	r, g, b := c.RGB255()
	return model.Color{R: r, G: g, B: b, Hex: c.Hex()}
}
