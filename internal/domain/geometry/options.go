package geometry

// Option applies a configuration option to the Mapper.
type Option func(*Mapper)

// WithHeightDivisor sets an extra divisor applied to box heights when the
// display is relatively wider than the source. Non-positive values are ignored.
func WithHeightDivisor(d float64) Option {
	return func(m *Mapper) {
		if d > 0 {
			m.heightDivisor = d
		}
	}
}
