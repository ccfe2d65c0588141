package optim

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with momentum.
//
// Update rule, per parameter tensor:
//
//	velocity = momentum * velocity - lr * gradient
//	param    = param + velocity
//
// With momentum 0 this is plain gradient descent. Velocity buffers have the
// shape of their parameter, start at zero and live until Reset.
//
// Example:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	sgd.Step(layer.Parameters())
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter]*mat.Dense
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// Validate checks the configuration ranges.
func (c SGDConfig) Validate() error {
	if c.LR < 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "learning rate must be >= 0, got %g", c.LR)
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "momentum must be in [0, 1), got %g", c.Momentum)
	}
	return nil
}

// NewSGD creates a new SGD optimizer. A zero LR selects the default.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter]*mat.Dense),
	}
}

// Step performs a single optimization step over params.
func (s *SGD) Step(params []*nn.Parameter) {
	for _, p := range params {
		v := s.velocity(p)
		value := p.Value()
		grad := p.Grad()

		rows, _ := value.Dims()
		for i := 0; i < rows; i++ {
			vr := v.RawRowView(i)
			floats.Scale(s.momentum, vr)
			floats.AddScaled(vr, -s.lr, grad.RawRowView(i))
			floats.Add(value.RawRowView(i), vr)
		}
	}
}

// velocity returns the momentum buffer of p, allocating a zero buffer on
// first use.
func (s *SGD) velocity(p *nn.Parameter) *mat.Dense {
	v, ok := s.velocities[p]
	if !ok {
		shape := p.Shape()
		v = tensor.Zeros(shape.Rows, shape.Cols)
		s.velocities[p] = v
	}
	return v
}

// Reset clears all velocity buffers.
func (s *SGD) Reset() {
	clear(s.velocities)
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// Momentum returns the momentum coefficient.
func (s *SGD) Momentum() float64 {
	return s.momentum
}

// StateDict returns copies of the velocity buffers, keyed
// "velocity.{param_index}" by position in params.
func (s *SGD) StateDict(params []*nn.Parameter) map[string]*mat.Dense {
	state := make(map[string]*mat.Dense)
	for i, p := range params {
		v, ok := s.velocities[p]
		if !ok {
			continue // Not stepped yet.
		}
		state[fmt.Sprintf("velocity.%d", i)] = mat.DenseCopyOf(v)
	}
	return state
}

// LoadStateDict restores velocity buffers exported by StateDict.
//
// Missing entries start from zero. Shapes are validated before any buffer
// is replaced.
func (s *SGD) LoadStateDict(params []*nn.Parameter, state map[string]*mat.Dense) error {
	loaded := make(map[*nn.Parameter]*mat.Dense, len(params))
	for i, p := range params {
		key := fmt.Sprintf("velocity.%d", i)
		v, ok := state[key]
		if !ok {
			continue
		}
		if got := tensor.ShapeOf(v); !got.Equal(p.Shape()) {
			return errors.Wrapf(nn.ErrShapeMismatch, "%s for %s: shape %v, want %v", key, p.Name(), got, p.Shape())
		}
		loaded[p] = mat.DenseCopyOf(v)
	}
	s.velocities = loaded
	return nil
}
