package nn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/tensor"
)

// Xavier (Glorot) initialization for an out×in weight matrix.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// This keeps activation variance roughly constant across layers for
// sigmoid, tanh and identity units.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform(fanOut, fanIn, -bound, bound, rng)
}

// He initialization for an out×in weight matrix: N(0, 2/fan_in).
// Suited to ReLU-family units.
func He(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	w := tensor.Randn(fanOut, fanIn, rng)
	w.Scale(math.Sqrt(2.0/float64(fanIn)), w)
	return w
}

// initWeights picks the initializer matching the layer activation.
func initWeights(act Activation, fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	switch act {
	case ReLU, LeakyReLU:
		return He(fanIn, fanOut, rng)
	default:
		return Xavier(fanIn, fanOut, rng)
	}
}
