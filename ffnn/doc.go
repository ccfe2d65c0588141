// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ffnn trains feed-forward neural networks for regression and
// classification on the CPU.
//
// # Overview
//
// A Network is an ordered stack of dense layers. Hidden layers share one
// activation; the output layer is chosen by the task:
//   - Regression: identity output, halved mean squared error, scored with R²
//   - Classification: sigmoid (one output) or softmax output, cross-entropy,
//     scored with accuracy
//
// Training is mini-batch gradient descent with momentum (γ) and L2 weight
// decay (λ). Data is passed as gonum matrices with one sample per column.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ffnn/ffnn"
//	    "github.com/born-ml/ffnn/nn"
//	)
//
//	func main() {
//	    net, err := ffnn.New(1, 1, ffnn.Regression, 0, 0, nn.ReLU, ffnn.WithSeed(1))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    net.AddLayer(100, 1) // hidden layer
//	    net.AddLayer(1, 100) // output layer
//
//	    net.InitData(xTrain, yTrain)         // (1 × n) features, (1 × n) targets
//	    net.Fit(1000, 1000, 0.001)           // epochs, batch size, learning rate
//	    r2, err := net.Evaluate(xTest, yTest)
//	}
//
// # Lifecycle
//
//	Unconfigured → LayersAdded → DataBound → Trained
//
// Layers can only be added before the first Fit. Predict and Evaluate work
// as soon as the layer stack is complete, which is useful for measuring an
// untrained baseline.
//
// # Reproducibility
//
// With WithSeed, two networks built from the same topology, data and
// hyperparameters follow bit-identical training trajectories.
//
// # Errors
//
// Errors wrap the sentinels of package nn and are matched with errors.Is:
//
//	if errors.Is(err, nn.ErrDegenerateMetric) {
//	    // constant targets: R² is undefined
//	}
package ffnn
