// Package shot derives attempt and made-shot events from the ball and rim
// geometry of consecutive frames.
package shot

import (
	"github.com/okian/courtside/internal/domain/model"
)

// Default engine configuration constants.
const (
	defaultCooldownFrames = 5
	defaultAttemptMargin  = 0
)

// State is a snapshot of the engine's debounce state.
type State struct {
	// Armed means the next above-rim ball position starts an attempt.
	Armed bool `json:"armed"`
	// LastMadeAt is the frame of the last ShotMade, nil before the first make.
	LastMadeAt *int64 `json:"last_made_at,omitempty"`
}

// Engine is the attempt/made state machine. It is not safe for concurrent use.
type Engine struct {
	cooldownFrames int64
	attemptMargin  float64

	armed      bool
	lastMadeAt int64
	hasMade    bool
}

// NewEngine creates an armed Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		cooldownFrames: defaultCooldownFrames,
		attemptMargin:  defaultAttemptMargin,
		armed:          true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Update advances both sub-machines for one frame. A nil ball or nil rim is a
// no-op, as is malformed geometry: no events and no state change.
func (e *Engine) Update(ball, rim *model.Rect, frame int64) []model.Event {
	if ball == nil || rim == nil || !ball.Valid() || !rim.Valid() {
		return nil
	}

	var events []model.Event

	_, cy := ball.Center()
	if cy < rim.Y-e.attemptMargin {
		if e.armed {
			e.armed = false
			events = append(events, model.Event{Kind: model.AttemptStarted, Frame: frame})
		}
	} else {
		e.armed = true
	}

	if ball.Intersects(*rim) && (!e.hasMade || frame-e.lastMadeAt >= e.cooldownFrames) {
		e.lastMadeAt = frame
		e.hasMade = true
		events = append(events, model.Event{Kind: model.ShotMade, Frame: frame})
	}

	return events
}

// State returns a copy of the current debounce state.
func (e *Engine) State() State {
	s := State{Armed: e.armed}
	if e.hasMade {
		at := e.lastMadeAt
		s.LastMadeAt = &at
	}
	return s
}

// Reset re-arms the engine and clears the made cooldown.
func (e *Engine) Reset() {
	e.armed = true
	e.hasMade = false
	e.lastMadeAt = 0
}
