package shot

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCooldownFrames sets how many frames must pass after a ShotMade before
// another one can fire. Negative values are ignored.
func WithCooldownFrames(n int64) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.cooldownFrames = n
		}
	}
}

// WithAttemptMargin requires the ball center to be this many pixels above the
// rim's top edge before an attempt starts. Negative values are ignored.
func WithAttemptMargin(px float64) Option {
	return func(e *Engine) {
		if px >= 0 {
			e.attemptMargin = px
		}
	}
}
