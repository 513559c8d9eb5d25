package dedupe

// Option applies a configuration option to the in-memory sequencer.
type Option func(*inMemorySequencer)

// WithMaxStreams bounds the number of tracked streams.
// If n > 0 the oldest stream is evicted once the bound is reached.
// If n <= 0 the sequencer is unbounded.
func WithMaxStreams(n int) Option {
	return func(s *inMemorySequencer) {
		s.maxStreams = n
	}
}
