package wfc

import (
	"math/rand/v2"

	"wavecollapse/pkg/engine/rng"
)

// Option configures a Model during creation.
//
//	m, err := wfc.New(catalog, 40, 25, wfc.WithSeed(42))
type Option func(*options)

type options struct {
	rand *rand.Rand
}

func defaultOptions() options {
	return options{}
}

// WithRand sets the random source used for shuffling, collapsing and
// tie-breaking. The model takes exclusive use of r.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithSeed makes the model deterministic for the given seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rand = rng.New(seed)
	}
}
