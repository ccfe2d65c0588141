// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ffnn

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/ffnn"
	"github.com/born-ml/ffnn/internal/parallel"
	"github.com/born-ml/ffnn/nn"
)

// Network is a stack of dense layers trained with mini-batch SGD.
type Network = ffnn.Network

// Task selects the loss, output activation and evaluation metric.
type Task = ffnn.Task

// Supported tasks.
const (
	Regression     = ffnn.Regression
	Classification = ffnn.Classification
)

// State is the lifecycle stage of a Network.
type State = ffnn.State

// Lifecycle stages.
const (
	Unconfigured = ffnn.Unconfigured
	LayersAdded  = ffnn.LayersAdded
	DataBound    = ffnn.DataBound
	Trained      = ffnn.Trained
)

// Option configures a Network.
type Option = ffnn.Option

// ParallelConfig controls intra-operation parallelism of the activation
// kernels.
type ParallelConfig = parallel.Config

// ParseTask resolves a task by name: "regression" or "classification".
func ParseTask(name string) (Task, error) {
	return ffnn.ParseTask(name)
}

// New creates a network with an empty layer stack; append layers with
// AddLayer.
//
// Example:
//
//	net, err := ffnn.New(1, 1, ffnn.Regression, 0, 0, nn.ReLU, ffnn.WithSeed(1))
//	net.AddLayer(100, 1)
//	net.AddLayer(1, 100)
func New(features, outputs int, task Task, lambda, gamma float64, hidden nn.Activation, opts ...Option) (*Network, error) {
	return ffnn.New(features, outputs, task, lambda, gamma, hidden, opts...)
}

// NewUniform creates a network with hiddenLayers hidden layers of
// nodesPerHidden units each, followed by the output layer.
func NewUniform(hiddenLayers, features, nodesPerHidden, outputs int, task Task, lambda, gamma float64, hidden nn.Activation, opts ...Option) (*Network, error) {
	return ffnn.NewUniform(hiddenLayers, features, nodesPerHidden, outputs, task, lambda, gamma, hidden, opts...)
}

// WithSeed seeds weight initialization and shuffling.
func WithSeed(seed int64) Option {
	return ffnn.WithSeed(seed)
}

// WithRand uses rng for weight initialization and shuffling.
func WithRand(rng *rand.Rand) Option {
	return ffnn.WithRand(rng)
}

// WithParallel enables parallel activation kernels.
func WithParallel(cfg ParallelConfig) Option {
	return ffnn.WithParallel(cfg)
}

// DefaultParallel returns a ParallelConfig sized to the machine.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// Metrics

// R2 returns the coefficient of determination of pred against target.
func R2(pred, target *mat.Dense) (float64, error) {
	return ffnn.R2(pred, target)
}

// Accuracy returns the fraction of samples classified correctly.
func Accuracy(pred, target *mat.Dense) float64 {
	return ffnn.Accuracy(pred, target)
}

// MeanSquaredError returns the mean of the squared residuals.
func MeanSquaredError(pred, target *mat.Dense) float64 {
	return ffnn.MeanSquaredError(pred, target)
}
