package nn

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/parallel"
)

// Activation selects the nonlinearity applied after a layer's affine map.
//
// The set is closed: names are resolved once, at configuration time, with
// ParseActivation, and the training loop only ever switches on the value.
type Activation uint8

// Supported activations.
const (
	// Identity is f(x) = x.
	Identity Activation = iota
	// ReLU is f(x) = max(0, x). The derivative at 0 is taken as 0.
	ReLU
	// Sigmoid is σ(x) = 1 / (1 + exp(-x)).
	Sigmoid
	// Tanh is the hyperbolic tangent.
	Tanh
	// LeakyReLU is x for x > 0 and LeakySlope·x otherwise.
	LeakyReLU
	// Softmax normalizes each column into a probability distribution.
	// It is not elementwise and is only valid on a classification output
	// layer, where its gradient is fused with the cross-entropy loss.
	Softmax

	numActivations
)

// LeakySlope is the negative-side slope of LeakyReLU.
const LeakySlope = 0.01

var activationNames = [numActivations]string{
	Identity:  "identity",
	ReLU:      "relu",
	Sigmoid:   "sigmoid",
	Tanh:      "tanh",
	LeakyReLU: "leaky_relu",
	Softmax:   "softmax",
}

var activationAliases = map[string]Activation{
	"identity":   Identity,
	"linear":     Identity,
	"none":       Identity,
	"relu":       ReLU,
	"sigmoid":    Sigmoid,
	"logistic":   Sigmoid,
	"tanh":       Tanh,
	"leaky_relu": LeakyReLU,
	"leakyrelu":  LeakyReLU,
	"leaky-relu": LeakyReLU,
	"softmax":    Softmax,
}

// ParseActivation resolves an activation by name (case-insensitive).
func ParseActivation(name string) (Activation, error) {
	a, ok := activationAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidConfiguration, "unknown activation %q", name)
	}
	return a, nil
}

// String returns the canonical name.
func (a Activation) String() string {
	if a < numActivations {
		return activationNames[a]
	}
	return fmt.Sprintf("Activation(%d)", uint8(a))
}

// Validate reports whether a is one of the supported activations.
func (a Activation) Validate() error {
	if a >= numActivations {
		return errors.Wrapf(ErrInvalidConfiguration, "unknown activation %v", a)
	}
	return nil
}

// Elementwise reports whether the activation acts on each element
// independently (everything except Softmax).
func (a Activation) Elementwise() bool {
	return a != Softmax
}

// Forward writes act(src) into dst. dst and src must have the same shape and
// may be the same matrix.
func (a Activation) Forward(dst, src *mat.Dense, cfg parallel.Config) {
	rows, cols := src.Dims()

	switch a {
	case Identity:
		if dst != src {
			dst.Copy(src)
		}
	case ReLU:
		mapRows(dst, src, cfg, func(x float64) float64 {
			if x > 0 {
				return x
			}
			return 0
		})
	case LeakyReLU:
		mapRows(dst, src, cfg, func(x float64) float64 {
			if x > 0 {
				return x
			}
			return LeakySlope * x
		})
	case Sigmoid:
		mapRows(dst, src, cfg, sigmoid)
	case Tanh:
		mapRows(dst, src, cfg, math.Tanh)
	case Softmax:
		parallel.ForWork(cols, rows*cols, func(j int) {
			softmaxColumn(dst, src, j, rows)
		}, cfg)
	default:
		panic(fmt.Sprintf("nn: forward of unknown activation %v", a))
	}
}

// Derivative writes act'(pre) into dst, using out = act(pre) where the
// conventional formula is expressed in terms of the output (sigmoid, tanh).
//
// Softmax has no elementwise derivative and panics; its gradient is fused
// with the cross-entropy loss instead.
func (a Activation) Derivative(dst, pre, out *mat.Dense, cfg parallel.Config) {
	switch a {
	case Identity:
		rows, _ := dst.Dims()
		for i := 0; i < rows; i++ {
			row := dst.RawRowView(i)
			for j := range row {
				row[j] = 1
			}
		}
	case ReLU:
		mapRows(dst, pre, cfg, func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		})
	case LeakyReLU:
		mapRows(dst, pre, cfg, func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return LeakySlope
		})
	case Sigmoid:
		mapRows(dst, out, cfg, func(y float64) float64 {
			return y * (1 - y)
		})
	case Tanh:
		mapRows(dst, out, cfg, func(y float64) float64 {
			return 1 - y*y
		})
	default:
		panic(fmt.Sprintf("nn: %v has no elementwise derivative", a))
	}
}

func sigmoid(x float64) float64 {
	// Branch keeps exp from overflowing for large |x|.
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// mapRows applies f elementwise from src to dst, one row per work item.
func mapRows(dst, src *mat.Dense, cfg parallel.Config, f func(float64) float64) {
	rows, cols := src.Dims()
	parallel.ForWork(rows, rows*cols, func(i int) {
		in := src.RawRowView(i)
		out := dst.RawRowView(i)
		for j, x := range in {
			out[j] = f(x)
		}
	}, cfg)
}

// softmaxColumn computes a numerically stable softmax of column j.
func softmaxColumn(dst, src *mat.Dense, j, rows int) {
	col := make([]float64, rows)
	mat.Col(col, j, src)
	maxV := floats.Max(col)
	var sum float64
	for i, x := range col {
		e := math.Exp(x - maxV)
		col[i] = e
		sum += e
	}
	for i, e := range col {
		dst.Set(i, j, e/sum)
	}
}
