package present

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Option applies a configuration option to the Presenter.
type Option func(*Presenter)

// WithSeed makes generated label colors reproducible.
func WithSeed(seed int64) Option {
	return func(p *Presenter) {
		p.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // display colors only
	}
}

// WithPalette pins colors for known labels, given as "#rrggbb" hex strings.
// Unparseable entries are skipped and fall back to generated colors.
func WithPalette(palette map[string]string) Option {
	return func(p *Presenter) {
		for label, hex := range palette {
			c, err := colorful.Hex(hex)
			if err != nil {
				continue
			}
			p.colors[label] = toModel(c)
		}
	}
}
