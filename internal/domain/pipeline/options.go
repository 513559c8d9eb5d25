package pipeline

import (
	"github.com/okian/courtside/internal/domain/present"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the Session.
type Option func(*Session)

// WithMaxDetections caps how many detections are considered per frame.
func WithMaxDetections(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxDetections = n
		}
	}
}

// WithLabels sets the class labels for the ball and the rim.
func WithLabels(ball, rim string) Option {
	return func(s *Session) {
		if ball != "" {
			s.ballLabel = ball
		}
		if rim != "" {
			s.rimLabel = rim
		}
	}
}

// WithSuppressWhenDegraded skips event detection on frames mapped with an
// unknown orientation. Annotations are still produced.
func WithSuppressWhenDegraded(suppress bool) Option {
	return func(s *Session) {
		s.suppressWhenDegraded = suppress
	}
}

// WithHeightDivisor forwards a calibration divisor to the geometry mapper.
func WithHeightDivisor(d float64) Option {
	return func(s *Session) {
		s.heightDivisor = d
	}
}

// WithRimMaxStaleFrames expires the tracked rim after n frames unseen.
func WithRimMaxStaleFrames(n int64) Option {
	return func(s *Session) {
		s.rimMaxStale = n
	}
}

// WithCooldownFrames sets the made-shot cooldown.
func WithCooldownFrames(n int64) Option {
	return func(s *Session) {
		s.cooldownFrames = n
	}
}

// WithAttemptMargin sets the pixels the ball must clear above the rim.
func WithAttemptMargin(px float64) Option {
	return func(s *Session) {
		s.attemptMargin = px
	}
}

// WithPresenterOptions configures label colors.
func WithPresenterOptions(opts ...present.Option) Option {
	return func(s *Session) {
		s.presenterOpts = append(s.presenterOpts, opts...)
	}
}

// WithBoard sets the scoreboard the session records into.
func WithBoard(b *scoring.Board) Option {
	return func(s *Session) {
		if b != nil {
			s.board = b
		}
	}
}

// WithLogger sets a custom logger for the session.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}
