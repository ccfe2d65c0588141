// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the optimizer used to train ffnn networks.
//
// SGD with momentum applies, for every parameter p with gradient g:
//
//	v ← γ·v − η·g
//	p ← p + v
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//	optimizer.Step(layer.Parameters())
package optim

import (
	"github.com/born-ml/ffnn/internal/optim"
)

// Optimizer is the interface for parameter update rules.
type Optimizer = optim.Optimizer

// SGD is stochastic gradient descent with momentum.
type SGD = optim.SGD

// SGDConfig configures SGD.
type SGDConfig = optim.SGDConfig

// NewSGD creates an SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
