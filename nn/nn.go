// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
)

// Errors

// Sentinel errors. Match them with errors.Is.
var (
	ErrShapeMismatch        = nn.ErrShapeMismatch
	ErrInvalidConfiguration = nn.ErrInvalidConfiguration
	ErrDegenerateMetric     = nn.ErrDegenerateMetric
	ErrNonFinite            = nn.ErrNonFinite
)

// Activations

// Activation selects the nonlinearity applied by a layer.
type Activation = nn.Activation

// Supported activations.
const (
	Identity  = nn.Identity
	ReLU      = nn.ReLU
	Sigmoid   = nn.Sigmoid
	Tanh      = nn.Tanh
	LeakyReLU = nn.LeakyReLU
	Softmax   = nn.Softmax
)

// ParseActivation resolves an activation by name, e.g. "relu" or "tanh".
func ParseActivation(name string) (Activation, error) {
	return nn.ParseActivation(name)
}

// Layers

// Dense is a fully connected layer computing act(W·x + b).
type Dense = nn.Dense

// Parameter is a trainable matrix with its gradient.
type Parameter = nn.Parameter

// NewDense creates a layer mapping inDim inputs to outDim outputs.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	layer, err := nn.NewDense("hidden", 100, 1, nn.ReLU, rng)
func NewDense(name string, outDim, inDim int, act Activation, rng *rand.Rand) (*Dense, error) {
	return nn.NewDense(name, outDim, inDim, act, rng)
}

// Initialization

// Xavier returns an (out × in) matrix with Xavier/Glorot uniform values.
func Xavier(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	return nn.Xavier(fanIn, fanOut, rng)
}

// He returns an (out × in) matrix with He normal values.
func He(fanIn, fanOut int, rng *rand.Rand) *mat.Dense {
	return nn.He(fanIn, fanOut, rng)
}

// Loss functions

// Loss scores predictions against targets.
type Loss = nn.Loss

// MSELoss is the halved mean squared error used for regression.
type MSELoss = nn.MSELoss

// CrossEntropyLoss is binary or categorical cross-entropy on probabilities.
type CrossEntropyLoss = nn.CrossEntropyLoss

// NewMSELoss creates a new MSE loss function.
func NewMSELoss() *MSELoss {
	return nn.NewMSELoss()
}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return nn.NewCrossEntropyLoss()
}
