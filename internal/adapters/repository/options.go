package repository

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithCapacity bounds the number of retained sessions. Once full, the
// session that ended earliest is evicted.
func WithCapacity(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}
