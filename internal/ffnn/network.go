// Package ffnn implements a feed-forward neural network trained with
// mini-batch gradient descent.
//
// A Network owns an ordered stack of nn.Dense layers, the bound training
// data and an SGD optimizer with momentum. Data uses the "batch of column
// vectors" layout: features are (features × samples), targets are
// (outputs × samples).
//
// Typical use:
//
//	net, err := ffnn.New(1, 1, ffnn.Regression, 0, 0, nn.ReLU, ffnn.WithSeed(1))
//	net.AddLayer(100, 1)
//	net.AddLayer(1, 100)
//	net.InitData(xTrain, yTrain)
//	net.Fit(1000, 100, 0.001)
//	r2, err := net.Evaluate(xTest, yTest)
//
// Training is synchronous and single-threaded; see WithParallel for the
// opt-in intra-operation parallelism.
package ffnn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/optim"
	"github.com/born-ml/ffnn/internal/parallel"
	"github.com/born-ml/ffnn/internal/tensor"
)

// Network is a stack of dense layers together with its training state.
//
// A Network is not safe for concurrent use.
type Network struct {
	features int
	outputs  int
	task     Task
	lambda   float64
	gamma    float64
	hidden   nn.Activation

	layers    []*nn.Dense
	params    []*nn.Parameter
	loss      nn.Loss
	optimizer *optim.SGD
	rng       *rand.Rand
	par       parallel.Config

	// Training data, owned copies.
	x *mat.Dense
	y *mat.Dense

	// Per-batch buffers reused across mini-batches.
	perm   []int
	batchX *mat.Dense
	batchY *mat.Dense
	grad   *mat.Dense

	history []float64
	started bool
	trained bool
}

// New creates a network with an empty layer stack.
//
// Parameters:
//   - features: number of input features (rows of the feature matrix)
//   - outputs: number of outputs (rows of the target matrix)
//   - task: Regression or Classification
//   - lambda: L2 penalty strength, >= 0
//   - gamma: momentum coefficient, in [0, 1)
//   - hidden: activation of every layer but the last
//
// Layers must be appended with AddLayer before Fit.
func New(features, outputs int, task Task, lambda, gamma float64, hidden nn.Activation, opts ...Option) (*Network, error) {
	if features <= 0 || outputs <= 0 {
		return nil, errors.Wrapf(nn.ErrInvalidConfiguration,
			"features and outputs must be positive, got %d and %d", features, outputs)
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := hidden.Validate(); err != nil {
		return nil, errors.Wrap(err, "hidden activation")
	}
	if !hidden.Elementwise() {
		return nil, errors.Wrapf(nn.ErrInvalidConfiguration, "%v cannot be used as a hidden activation", hidden)
	}
	if lambda < 0 {
		return nil, errors.Wrapf(nn.ErrInvalidConfiguration, "lambda must be >= 0, got %g", lambda)
	}
	sgdCfg := optim.SGDConfig{Momentum: gamma}
	if err := sgdCfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "gamma")
	}

	o := newOptions(opts)
	return &Network{
		features:  features,
		outputs:   outputs,
		task:      task,
		lambda:    lambda,
		gamma:     gamma,
		hidden:    hidden,
		loss:      task.loss(),
		optimizer: optim.NewSGD(sgdCfg),
		rng:       o.rng,
		par:       o.par,
	}, nil
}

// NewUniform creates a network with hiddenLayers hidden layers of
// nodesPerHidden units each, followed by the output layer.
//
// The result is the same as calling New and then AddLayer for every layer.
func NewUniform(hiddenLayers, features, nodesPerHidden, outputs int, task Task, lambda, gamma float64, hidden nn.Activation, opts ...Option) (*Network, error) {
	if hiddenLayers < 0 {
		return nil, errors.Wrapf(nn.ErrInvalidConfiguration, "hidden layer count must be >= 0, got %d", hiddenLayers)
	}
	if hiddenLayers > 0 && nodesPerHidden <= 0 {
		return nil, errors.Wrapf(nn.ErrInvalidConfiguration, "nodes per hidden layer must be positive, got %d", nodesPerHidden)
	}

	n, err := New(features, outputs, task, lambda, gamma, hidden, opts...)
	if err != nil {
		return nil, err
	}

	in := features
	for i := 0; i < hiddenLayers; i++ {
		if err := n.AddLayer(nodesPerHidden, in); err != nil {
			return nil, err
		}
		in = nodesPerHidden
	}
	if err := n.AddLayer(outputs, in); err != nil {
		return nil, err
	}
	return n, nil
}

// AddLayer appends a layer mapping inputDim to outputDim.
//
// inputDim must equal the previous layer's output dimension, or the
// feature count for the first layer. The layer structure is frozen once
// Fit has been called.
func (n *Network) AddLayer(outputDim, inputDim int) error {
	if n.started {
		return errors.Wrap(nn.ErrInvalidConfiguration, "cannot add layers after training has started")
	}

	want := n.features
	if len(n.layers) > 0 {
		want = n.layers[len(n.layers)-1].OutDim()
	}
	if inputDim != want {
		return errors.Wrapf(nn.ErrShapeMismatch,
			"layer %d: input dimension %d does not match previous output dimension %d",
			len(n.layers), inputDim, want)
	}

	layer, err := nn.NewDense(fmt.Sprintf("layers.%d", len(n.layers)), outputDim, inputDim, n.hidden, n.rng)
	if err != nil {
		return err
	}
	layer.SetLambda(n.lambda)
	layer.SetParallel(n.par)

	n.layers = append(n.layers, layer)
	n.params = append(n.params, layer.Parameters()...)
	return nil
}

// InitData binds the training set.
//
// X has shape (features × samples) and y has shape (outputs × samples),
// and both must be finite. On error nothing is bound; on success the
// network keeps its own copies.
func (n *Network) InitData(X, y *mat.Dense) error {
	if X == nil || y == nil {
		return errors.Wrap(nn.ErrShapeMismatch, "training data must not be nil")
	}
	xs, ys := tensor.ShapeOf(X), tensor.ShapeOf(y)
	if xs.Rows != n.features {
		return errors.Wrapf(nn.ErrShapeMismatch, "features %v: expected %d rows", xs, n.features)
	}
	if ys.Rows != n.outputs {
		return errors.Wrapf(nn.ErrShapeMismatch, "targets %v: expected %d rows", ys, n.outputs)
	}
	if xs.Cols != ys.Cols {
		return errors.Wrapf(nn.ErrShapeMismatch, "features have %d samples, targets have %d", xs.Cols, ys.Cols)
	}
	if err := checkFinite(X, y); err != nil {
		return err
	}

	n.x = mat.DenseCopyOf(X)
	n.y = mat.DenseCopyOf(y)
	n.perm = make([]int, xs.Cols)
	for i := range n.perm {
		n.perm[i] = i
	}
	return nil
}

// validateStack checks that the layer stack can produce the declared
// outputs and installs the hidden/output activations.
func (n *Network) validateStack() error {
	if len(n.layers) == 0 {
		return errors.Wrap(nn.ErrInvalidConfiguration, "network has no layers")
	}
	last := n.layers[len(n.layers)-1]
	if last.OutDim() != n.outputs {
		return errors.Wrapf(nn.ErrInvalidConfiguration,
			"last layer has %d outputs, network declares %d", last.OutDim(), n.outputs)
	}

	for _, l := range n.layers[:len(n.layers)-1] {
		if l.Activation() != n.hidden {
			if err := l.SetActivation(n.hidden); err != nil {
				return err
			}
		}
	}
	if out := n.task.outputActivation(n.outputs); last.Activation() != out {
		if err := last.SetActivation(out); err != nil {
			return err
		}
	}
	return nil
}

// forward runs input through every layer. The result is the last layer's
// output cache.
func (n *Network) forward(input *mat.Dense) (*mat.Dense, error) {
	out := input
	for _, l := range n.layers {
		var err error
		out, err = l.Forward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Layers returns the layer stack. The slice must not be modified.
func (n *Network) Layers() []*nn.Dense {
	return n.layers
}

// Parameters returns every trainable parameter, layer by layer.
func (n *Network) Parameters() []*nn.Parameter {
	return n.params
}

// Features returns the declared feature count.
func (n *Network) Features() int {
	return n.features
}

// Outputs returns the declared output count.
func (n *Network) Outputs() int {
	return n.outputs
}

// Task returns the network task.
func (n *Network) Task() Task {
	return n.task
}

// Lambda returns the L2 penalty strength.
func (n *Network) Lambda() float64 {
	return n.lambda
}

// Gamma returns the momentum coefficient.
func (n *Network) Gamma() float64 {
	return n.gamma
}

// HiddenActivation returns the activation of the hidden layers.
func (n *Network) HiddenActivation() nn.Activation {
	return n.hidden
}

// History returns the mean training loss of every epoch of the last Fit.
func (n *Network) History() []float64 {
	return append([]float64(nil), n.history...)
}

// State returns the lifecycle stage.
func (n *Network) State() State {
	switch {
	case n.trained:
		return Trained
	case len(n.layers) > 0 && n.x != nil:
		return DataBound
	case len(n.layers) > 0:
		return LayersAdded
	default:
		return Unconfigured
	}
}

// StateDict returns copies of all parameters keyed "layers.{i}.weight" and
// "layers.{i}.bias".
func (n *Network) StateDict() map[string]*mat.Dense {
	state := make(map[string]*mat.Dense, 2*len(n.layers))
	for _, p := range n.params {
		state[p.Name()] = mat.DenseCopyOf(p.Value())
	}
	return state
}

// LoadStateDict restores parameters exported by StateDict. Every entry is
// validated before any parameter is written.
func (n *Network) LoadStateDict(state map[string]*mat.Dense) error {
	for _, p := range n.params {
		v, ok := state[p.Name()]
		if !ok {
			return errors.Wrapf(nn.ErrInvalidConfiguration, "missing %s in state dict", p.Name())
		}
		if got := tensor.ShapeOf(v); !got.Equal(p.Shape()) {
			return errors.Wrapf(nn.ErrShapeMismatch, "%s: shape %v, want %v", p.Name(), got, p.Shape())
		}
	}
	for _, p := range n.params {
		p.Value().Copy(state[p.Name()])
	}
	return nil
}

func (n *Network) String() string {
	return fmt.Sprintf("Network(%s, %d -> %d, %d layers, hidden=%v, lambda=%g, gamma=%g)",
		n.task, n.features, n.outputs, len(n.layers), n.hidden, n.lambda, n.gamma)
}
