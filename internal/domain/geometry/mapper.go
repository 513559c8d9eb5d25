// Package geometry maps normalized detector boxes into display space.
//
// The detector reports boxes relative to the sensor image, origin lower-left.
// The display shows that image rotated by the device orientation and cropped
// to fill a surface of a different aspect ratio (aspect-fill), origin top-left.
// Mapper undoes both so overlays land on the objects they describe.
package geometry

import (
	"fmt"

	"github.com/okian/courtside/internal/domain/model"
)

const defaultHeightDivisor = 1.0

// Mapper converts normalized boxes to display rectangles. It holds only
// configuration; Map is pure and safe for concurrent use.
type Mapper struct {
	heightDivisor float64
}

// NewMapper creates a Mapper with configuration options.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{heightDivisor: defaultHeightDivisor}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Map re-expresses b in display pixels. The returned flag is true when the
// orientation was unknown and the Portrait transform was used instead.
func (m *Mapper) Map(b model.Box, o model.Orientation, p model.Preset, display model.Size) (model.Rect, bool, error) {
	if !b.Valid() {
		return model.Rect{}, false, fmt.Errorf("box %+v: %w", b, ErrMalformedGeometry)
	}
	if !display.Valid() {
		return model.Rect{}, false, fmt.Errorf("display %+v: %w", display, ErrInvalidDisplay)
	}

	oriented, degraded := Orient(b, o)
	ratio := Ratio(p, display)

	var unit model.Box
	if ratio >= 1 {
		unit = fillWide(oriented, ratio)
	} else {
		unit = fillTall(oriented, ratio, m.heightDivisor)
	}

	return denormalize(unit, display), degraded, nil
}

// Ratio compares the display aspect (height/width) with the capture aspect.
// Values >= 1 mean the display is relatively taller than the source.
func Ratio(p model.Preset, display model.Size) float64 {
	return (display.Height / display.Width) / p.SourceAspectRatio()
}

// Orient applies the fixed axis permutation for o. Unknown orientations fall
// back to Portrait and report degraded=true.
func Orient(b model.Box, o model.Orientation) (model.Box, bool) {
	switch o {
	case model.Portrait:
		return b, false
	case model.PortraitUpsideDown:
		return model.Box{X: 1 - b.X - b.W, Y: 1 - b.Y - b.H, W: b.W, H: b.H}, false
	case model.LandscapeLeft:
		return model.Box{X: b.Y, Y: 1 - b.X - b.W, W: b.H, H: b.W}, false
	case model.LandscapeRight:
		return model.Box{X: 1 - b.Y - b.H, Y: b.X, W: b.H, H: b.W}, false
	default:
		return b, true
	}
}

// Unorient inverts Orient. The landscape transforms are each other's inverse.
func Unorient(b model.Box, o model.Orientation) model.Box {
	switch o {
	case model.LandscapeLeft:
		out, _ := Orient(b, model.LandscapeRight)
		return out
	case model.LandscapeRight:
		out, _ := Orient(b, model.LandscapeLeft)
		return out
	default:
		out, _ := Orient(b, o)
		return out
	}
}

// fillWide handles ratio >= 1: the source is cropped left and right, so x is
// pulled toward the center and the width stretched. The Y axis is flipped to a
// top-left origin.
func fillWide(b model.Box, ratio float64) model.Box {
	offset := (1 - ratio) * (0.5 - b.MinX())
	return model.Box{
		X: b.X + offset,
		Y: 1 - b.MaxY(),
		W: b.W * ratio,
		H: b.H,
	}
}

// fillTall handles ratio < 1: the source is cropped top and bottom.
func fillTall(b model.Box, ratio, divisor float64) model.Box {
	offset := (ratio - 1) * (0.5 - b.MaxY())
	return model.Box{
		X: b.X,
		Y: 1 - offset - b.MaxY(),
		W: b.W,
		H: b.H / ratio / divisor,
	}
}

func denormalize(b model.Box, display model.Size) model.Rect {
	return model.Rect{
		X: b.X * display.Width,
		Y: b.Y * display.Height,
		W: b.W * display.Width,
		H: b.H * display.Height,
	}
}
