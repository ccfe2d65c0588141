// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ffnn_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/ffnn"
	"github.com/born-ml/ffnn/nn"
	"github.com/born-ml/ffnn/tensor"
)

func ExampleNew() {
	net, err := ffnn.New(1, 1, ffnn.Regression, 0, 0, nn.ReLU, ffnn.WithSeed(1))
	if err != nil {
		panic(err)
	}
	if err := net.AddLayer(1, 1); err != nil {
		panic(err)
	}

	// y = 2x + 1 on [-1, 1].
	x := mat.NewDense(1, 21, nil)
	y := mat.NewDense(1, 21, nil)
	for j := 0; j < 21; j++ {
		v := -1 + float64(j)/10
		x.Set(0, j, v)
		y.Set(0, j, 2*v+1)
	}

	if err := net.InitData(x, y); err != nil {
		panic(err)
	}
	if err := net.Fit(2000, 21, 0.1); err != nil {
		panic(err)
	}

	layer := net.Layers()[0]
	fmt.Printf("w=%.2f b=%.2f\n", layer.Weight().Value().At(0, 0), layer.Bias().Value().At(0, 0))
	// Output: w=2.00 b=1.00
}

func TestPublicAPI(t *testing.T) {
	task, err := ffnn.ParseTask("classification")
	require.NoError(t, err)

	net, err := ffnn.NewUniform(1, 2, 4, 3, task, 0, 0, nn.Tanh,
		ffnn.WithSeed(3), ffnn.WithParallel(ffnn.DefaultParallel()))
	require.NoError(t, err)
	assert.Equal(t, ffnn.LayersAdded, net.State())

	x, err := tensor.FromColumns([][]float64{{0, 1}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	probs, err := net.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Rows: 3, Cols: 3}, tensor.ShapeOf(probs))
	for j := 0; j < 3; j++ {
		assert.InDelta(t, 1.0, mat.Sum(probs.ColView(j)), 1e-12)
	}

	err = net.AddLayer(3, 5)
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))
}

func TestPublicMetrics(t *testing.T) {
	y := mat.NewDense(1, 3, []float64{1, 2, 3})
	r2, err := ffnn.R2(y, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r2)

	_, err = ffnn.R2(y, tensor.Full(1, 3, 2))
	assert.True(t, errors.Is(err, nn.ErrDegenerateMetric))

	assert.InDelta(t, 2.0/3.0, ffnn.MeanSquaredError(tensor.Zeros(1, 3), mat.NewDense(1, 3, []float64{1, -1, 0})), 1e-12)
	assert.Equal(t, 1.0, ffnn.Accuracy(mat.NewDense(1, 2, []float64{0.9, 0.1}), mat.NewDense(1, 2, []float64{1, 0})))
}
