package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/tensor"
)

// Loss scores a batch of predictions against targets and supplies the
// gradient that starts backpropagation.
//
// Predictions and targets share the shape [outputs, batch]. Gradients are
// returned unscaled by the batch size; Dense divides by the batch when it
// forms the parameter gradients.
type Loss interface {
	// Forward returns the mean loss over the batch.
	Forward(pred, target *mat.Dense) float64

	// Gradient writes the per-sample gradient into dst (reused per
	// tensor.Reuse) and returns it.
	Gradient(dst, pred, target *mat.Dense) *mat.Dense

	// Fused reports whether Gradient is taken w.r.t. the output layer's
	// pre-activation (Dense.BackwardPre) rather than its output
	// (Dense.Backward).
	Fused() bool
}

// MSELoss computes the halved mean squared error.
//
// Loss = 0.5 · Σ (pred - target)² / batch
//
// The sum runs over all outputs of a sample, the mean over samples, so the
// per-sample gradient w.r.t. the prediction is simply pred - target. This
// differs from the element mean 0.5 · mean((pred - target)²) by a factor of
// outputs; the two agree for single-output regression. With several outputs
// the loss and gradients are outputs times larger, which acts as a learning
// rate scaled by the output count.
type MSELoss struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return &MSELoss{}
}

// Forward computes the loss.
func (MSELoss) Forward(pred, target *mat.Dense) float64 {
	mustMatch("MSELoss", pred, target)
	var diff mat.Dense
	diff.Sub(pred, target)
	_, batch := pred.Dims()
	return 0.5 * mat.Sum(squared(&diff)) / float64(batch)
}

// Gradient returns pred - target.
func (MSELoss) Gradient(dst, pred, target *mat.Dense) *mat.Dense {
	mustMatch("MSELoss", pred, target)
	r, c := pred.Dims()
	dst = tensor.Reuse(dst, r, c)
	dst.Sub(pred, target)
	return dst
}

// Fused is false: the gradient is w.r.t. the (identity) output.
func (MSELoss) Fused() bool { return false }

// CrossEntropyLoss computes cross-entropy on probabilities produced by a
// sigmoid (one output) or softmax (several outputs) output layer.
//
// Mathematical formulation, mean over the batch:
//
//	binary:      L = -Σ [y·log(p) + (1-y)·log(1-p)]
//	categorical: L = -Σ y·log(p)
//
// Probabilities are clamped to [Epsilon, 1-Epsilon] before the log. In both
// cases the gradient w.r.t. the output pre-activation is p - y, which is
// what Gradient returns.
type CrossEntropyLoss struct{}

// Epsilon is the probability clamp used by CrossEntropyLoss.
const Epsilon = 1e-12

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward computes the loss.
func (CrossEntropyLoss) Forward(pred, target *mat.Dense) float64 {
	mustMatch("CrossEntropyLoss", pred, target)
	rows, batch := pred.Dims()
	binary := rows == 1

	var sum float64
	for i := 0; i < rows; i++ {
		p := pred.RawRowView(i)
		y := target.RawRowView(i)
		for j := range p {
			pj := math.Min(math.Max(p[j], Epsilon), 1-Epsilon)
			sum -= y[j] * math.Log(pj)
			if binary {
				sum -= (1 - y[j]) * math.Log(1-pj)
			}
		}
	}
	return sum / float64(batch)
}

// Gradient returns pred - target.
func (CrossEntropyLoss) Gradient(dst, pred, target *mat.Dense) *mat.Dense {
	mustMatch("CrossEntropyLoss", pred, target)
	r, c := pred.Dims()
	dst = tensor.Reuse(dst, r, c)
	dst.Sub(pred, target)
	return dst
}

// Fused is true: the gradient is w.r.t. the output pre-activation.
func (CrossEntropyLoss) Fused() bool { return true }

func squared(m *mat.Dense) *mat.Dense {
	m.MulElem(m, m)
	return m
}

func mustMatch(op string, pred, target *mat.Dense) {
	if p, t := tensor.ShapeOf(pred), tensor.ShapeOf(target); !p.Equal(t) {
		panic(fmt.Sprintf("%s: predictions %v and targets %v must have the same shape", op, p, t))
	}
}
