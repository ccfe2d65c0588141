// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/tensor"
)

// Shape describes the dimensions of a matrix: (rows × cols).
type Shape = tensor.Shape

// ShapeOf returns the shape of m.
func ShapeOf(m mat.Matrix) Shape {
	return tensor.ShapeOf(m)
}

// Zeros creates a rows×cols matrix filled with zeros.
func Zeros(rows, cols int) *mat.Dense {
	return tensor.Zeros(rows, cols)
}

// Full creates a rows×cols matrix with every element set to v.
func Full(rows, cols int, v float64) *mat.Dense {
	return tensor.Full(rows, cols, v)
}

// FromColumns builds a matrix with one sample per column.
//
// Example:
//
//	X, err := tensor.FromColumns([][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}})
//	// X is (2 × 3): two features, three samples.
func FromColumns(samples [][]float64) (*mat.Dense, error) {
	return tensor.FromColumns(samples)
}

// Randn creates a matrix with values drawn from N(0, 1).
func Randn(rows, cols int, rng *rand.Rand) *mat.Dense {
	return tensor.Randn(rows, cols, rng)
}

// Uniform creates a matrix with values drawn from U(lo, hi).
func Uniform(rows, cols int, lo, hi float64, rng *rand.Rand) *mat.Dense {
	return tensor.Uniform(rows, cols, lo, hi, rng)
}
