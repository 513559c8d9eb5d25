package rim

import "github.com/okian/courtside/internal/domain/geometry"

// Option applies a configuration option to the Tracker.
type Option func(*Tracker)

// WithLabel sets the class label treated as a rim.
func WithLabel(label string) Option {
	return func(t *Tracker) {
		if label != "" {
			t.label = label
		}
	}
}

// WithMaxStaleFrames expires the held rim after n frames without a rim
// detection. Zero or negative keeps it forever.
func WithMaxStaleFrames(n int64) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxStale = n
		}
	}
}

// WithMapper sets the geometry mapper used for rim boxes.
func WithMapper(m *geometry.Mapper) Option {
	return func(t *Tracker) {
		if m != nil {
			t.mapper = m
		}
	}
}
