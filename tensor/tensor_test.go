// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnn/tensor"
)

func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromColumns([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Rows: 2, Cols: 3}, tensor.ShapeOf(x))
	assert.Equal(t, 4.0, x.At(1, 1))

	assert.Equal(t, 7.0, tensor.Full(2, 2, 7).At(1, 0))
	assert.Equal(t, 0.0, tensor.Zeros(1, 1).At(0, 0))

	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, tensor.Shape{Rows: 3, Cols: 5}, tensor.ShapeOf(tensor.Randn(3, 5, rng)))
	u := tensor.Uniform(1, 100, 2, 3, rng)
	for j := 0; j < 100; j++ {
		assert.GreaterOrEqual(t, u.At(0, j), 2.0)
		assert.Less(t, u.At(0, j), 3.0)
	}
}
