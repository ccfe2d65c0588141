package ffnn

import (
	"math/rand"
	"time"

	"github.com/born-ml/ffnn/internal/parallel"
)

// Option configures a Network.
type Option func(*options)

type options struct {
	rng *rand.Rand
	par parallel.Config
}

// WithSeed seeds the generator used for weight initialization and for the
// per-epoch shuffles. Two networks built and trained with the same seed,
// topology, data and hyperparameters follow bit-identical trajectories.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // Not security-critical.
	}
}

// WithRand uses rng for weight initialization and shuffling. The network
// takes ownership of rng.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithParallel lets the activation kernels split work across goroutines.
// The default is sequential execution.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.par = cfg
	}
}

func newOptions(opts []Option) *options {
	o := &options{par: parallel.Sequential()}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // Not security-critical.
	}
	return o
}
