// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides helpers for building the matrices consumed by
// ffnn networks.
//
// # Layout
//
// Matrices are gonum *mat.Dense values in the "batch of column vectors"
// layout: rows are feature (or neuron) channels and columns are samples.
//
//   - features: (features × samples)
//   - targets:  (outputs × samples)
//   - weights:  (out × in), biases (out × 1)
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/ffnn/tensor"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//
//	    // 1000 one-dimensional samples drawn from N(0, 1)
//	    x := tensor.Randn(1, 1000, rng)
//	    fmt.Println(tensor.ShapeOf(x)) // (1×1000)
//	}
package tensor
