// Package rim tracks the single rim location trusted for the current frame.
package rim

import (
	"github.com/okian/courtside/internal/domain/geometry"
	"github.com/okian/courtside/internal/domain/model"
)

const defaultLabel = "rim"

// Tracked is the most recently accepted rim location.
type Tracked struct {
	Rect  model.Rect `json:"rect"`
	Frame int64      `json:"frame"`
}

// Tracker selects one rim per frame and holds it across frames without a rim
// detection. It is not safe for concurrent use.
type Tracker struct {
	label  string
	mapper *geometry.Mapper
	// maxStale expires a held rim after that many frames without a sighting; 0 never expires.
	maxStale int64

	current *Tracked
}

// NewTracker creates a Tracker with configuration options.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{label: defaultLabel}
	for _, opt := range opts {
		opt(t)
	}
	if t.mapper == nil {
		t.mapper = geometry.NewMapper()
	}
	return t
}

// Update maps every valid rim detection and keeps the one lowest on screen
// (largest Y origin), which is the rim nearest the camera. Without a rim this
// frame the previous one is returned unchanged. ok is false when no rim has
// been accepted yet or the held one expired.
func (t *Tracker) Update(detections []model.Detection, o model.Orientation, p model.Preset, display model.Size, frame int64) (Tracked, bool) {
	var (
		best  model.Rect
		found bool
	)
	for _, d := range detections {
		if d.Label != t.label || !d.Valid() {
			continue
		}
		r, _, err := t.mapper.Map(d.Box, o, p, display)
		if err != nil {
			continue
		}
		if !found || r.Y > best.Y {
			best, found = r, true
		}
	}

	if found {
		t.current = &Tracked{Rect: best, Frame: frame}
		return *t.current, true
	}

	if t.current != nil && t.maxStale > 0 && frame-t.current.Frame > t.maxStale {
		t.current = nil
	}
	return t.Current()
}

// Current returns the held rim without updating it.
func (t *Tracker) Current() (Tracked, bool) {
	if t.current == nil {
		return Tracked{}, false
	}
	return *t.current, true
}

// Reset forgets the held rim.
func (t *Tracker) Reset() {
	t.current = nil
}
