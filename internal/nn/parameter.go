package nn

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/tensor"
)

// Parameter represents a trainable matrix in a network.
//
// The gradient slot has the same shape as the value and is allocated up
// front; the owning layer overwrites it on every backward pass and the
// optimizer reads it on every step.
//
// Example:
//
//	weight := nn.NewParameter("dense0.weight", w)
//	w := weight.Value()
//	g := weight.Grad() // valid after Dense.Backward
type Parameter struct {
	name  string     // Parameter name (e.g., "dense0.weight")
	value *mat.Dense // The parameter values
	grad  *mat.Dense // Gradient of the loss w.r.t. value
}

// NewParameter creates a new trainable parameter around value.
func NewParameter(name string, value *mat.Dense) *Parameter {
	r, c := value.Dims()
	return &Parameter{
		name:  name,
		value: value,
		grad:  mat.NewDense(r, c, nil),
	}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Value returns the parameter matrix. Mutating it changes the model.
func (p *Parameter) Value() *mat.Dense {
	return p.value
}

// Grad returns the gradient matrix from the last backward pass.
func (p *Parameter) Grad() *mat.Dense {
	return p.grad
}

// Shape returns the parameter shape.
func (p *Parameter) Shape() tensor.Shape {
	return tensor.ShapeOf(p.value)
}

// ZeroGrad clears the gradient.
func (p *Parameter) ZeroGrad() {
	p.grad.Zero()
}
