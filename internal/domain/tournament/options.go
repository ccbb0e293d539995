package tournament

import "math/rand"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSeed makes the pair shuffle reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // presentation order only
	}
}

// WithRand sets the random source used for the shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}
