// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and building blocks of ffnn networks.
//
// # Overview
//
// This package contains:
//   - Layers: Dense
//   - Activations: Identity, ReLU, Sigmoid, Tanh, LeakyReLU, Softmax
//   - Loss functions: MSELoss, CrossEntropyLoss
//   - Initialization: Xavier, He
//   - Errors: ErrShapeMismatch, ErrInvalidConfiguration, ErrDegenerateMetric, ErrNonFinite
//
// Most users do not need this package directly: ffnn.Network builds and
// trains the layers. It is useful for inspecting trained layers and for
// choosing the hidden activation.
//
// # Layers
//
// Dense: fully connected layer, y = act(W·x + b), one sample per column
//
//	layer, err := nn.NewDense("hidden", 100, 1, nn.ReLU, rng)
//	out, err := layer.Forward(x) // x is (1 × batch), out is (100 × batch)
//
// # Activations
//
// Activations are a closed set, parsed once from configuration:
//
//	act, err := nn.ParseActivation("tanh")
//
// Softmax is only valid on the output layer of a classification network.
package nn
