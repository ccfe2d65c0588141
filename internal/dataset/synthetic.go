package dataset

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// Sine draws n samples x ~ N(0, 1) with target sin(x).
func Sine(n int, rng *rand.Rand) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.Wrapf(nn.ErrInvalidConfiguration, "dataset: sample count must be positive, got %d", n)
	}
	x := tensor.Randn(1, n, rng)
	y := mat.NewDense(1, n, nil)
	y.Apply(func(_, _ int, v float64) float64 { return math.Sin(v) }, x)
	return Dataset{X: x, Y: y}, nil
}

// Line draws n samples x ~ U(-1, 1) with target slope·x + intercept.
func Line(n int, slope, intercept float64, rng *rand.Rand) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.Wrapf(nn.ErrInvalidConfiguration, "dataset: sample count must be positive, got %d", n)
	}
	x := tensor.Uniform(1, n, -1, 1, rng)
	y := mat.NewDense(1, n, nil)
	y.Apply(func(_, _ int, v float64) float64 { return slope*v + intercept }, x)
	return Dataset{X: x, Y: y}, nil
}

// Franke draws n points (x, y) uniformly from the unit square with target
// FrankeFunction(x, y) plus N(0, sigma²) noise.
func Franke(n int, sigma float64, rng *rand.Rand) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, errors.Wrapf(nn.ErrInvalidConfiguration, "dataset: sample count must be positive, got %d", n)
	}
	if sigma < 0 {
		return Dataset{}, errors.Wrapf(nn.ErrInvalidConfiguration, "dataset: noise must be >= 0, got %g", sigma)
	}

	x := tensor.Uniform(2, n, 0, 1, rng)
	z := mat.NewDense(1, n, nil)
	for j := 0; j < n; j++ {
		z.Set(0, j, FrankeFunction(x.At(0, j), x.At(1, j))+sigma*rng.NormFloat64())
	}
	return Dataset{X: x, Y: z}, nil
}

// FrankeFunction is the sum of four Gaussian bumps on the unit square.
func FrankeFunction(x, y float64) float64 {
	t1 := 0.75 * math.Exp(-(sq(9*x-2)/4 + sq(9*y-2)/4))
	t2 := 0.75 * math.Exp(-(sq(9*x+1)/49 + (9*y+1)/10))
	t3 := 0.5 * math.Exp(-(sq(9*x-7)/4 + sq(9*y-3)/4))
	t4 := -0.2 * math.Exp(-(sq(9*x-4) + sq(9*y-7)))
	return t1 + t2 + t3 + t4
}

func sq(v float64) float64 { return v * v }
