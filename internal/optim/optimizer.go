// Package optim implements the parameter update rules used by the training
// loop.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//
// Optimizers read the gradient slot of each nn.Parameter, which the owning
// layer fills during its backward pass (including any L2 penalty), and
// update the parameter values in place.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
//	for _, batch := range batches {
//	    forward(batch)
//	    backward(batch) // fills p.Grad() for every parameter
//	    opt.Step(params)
//	}
package optim

import "github.com/born-ml/ffnn/internal/nn"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter from its current gradient.
	//
	// Callers must only invoke Step once the gradients of all parameters
	// belong to the same mini-batch.
	Step(params []*nn.Parameter)

	// Reset drops all optimizer state (e.g. momentum buffers), as at the
	// start of a new training run.
	Reset()

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate.
	SetLR(lr float64)
}
