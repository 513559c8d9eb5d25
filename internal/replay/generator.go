package replay

import (
	"github.com/okian/courtside/internal/domain/geometry"
	"github.com/okian/courtside/internal/domain/model"
)

// Normalized portrait-space geometry of the synthetic court. The rim sits
// near the top of the frame; ball heights are the box bottoms.
var (
	syntheticRim = model.Box{X: 0.4, Y: 0.85, W: 0.2, H: 0.05}
	ballSize     = 0.1
	ballX        = 0.45
	ballLow      = 0.6
	ballHigh     = 0.9
	ballThrough  = 0.83
	ballWide     = 0.1 // x of a ball that misses the rim sideways
)

// Synthetic builds frames for a sequence of shots. Each shot is a ball
// resting low, rising above the rim, then either dropping through it or
// missing to the side, followed by enough low frames to clear the cooldown.
// Boxes are expressed in the sensor orientation of d, so the pipeline's
// orientation mapping brings them back to the same court.
func Synthetic(shots, missEvery int, cooldown int64, d FrameDefaults) []model.Frame {
	if cooldown < 0 {
		cooldown = 5
	}
	gap := int(cooldown)

	frames := make([]model.Frame, 0, shots*(4+gap))
	var idx int64
	add := func(ball *model.Box) {
		idx++
		dets := []model.Detection{{Label: "rim", Confidence: 0.9, Box: geometry.Unorient(syntheticRim, d.Orientation)}}
		if ball != nil {
			dets = append(dets, model.Detection{Label: "ball", Confidence: 0.8, Box: geometry.Unorient(*ball, d.Orientation)})
		}
		frames = append(frames, model.Frame{
			Index:       idx,
			Orientation: d.Orientation,
			Preset:      d.Preset,
			Display:     d.Display,
			Detections:  dets,
		})
	}
	ballAt := func(x, y float64) *model.Box {
		return &model.Box{X: x, Y: y, W: ballSize, H: ballSize}
	}

	for s := 1; s <= shots; s++ {
		miss := missEvery > 0 && s%missEvery == 0
		add(ballAt(ballX, ballLow))
		add(ballAt(ballX, ballHigh))
		if miss {
			add(ballAt(ballWide, ballThrough))
		} else {
			add(ballAt(ballX, ballThrough))
		}
		for i := 0; i < gap; i++ {
			add(ballAt(ballX, ballLow))
		}
		add(nil)
	}
	return frames
}
