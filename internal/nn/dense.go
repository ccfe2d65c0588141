package nn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/parallel"
	"github.com/born-ml/ffnn/internal/tensor"
)

// Dense implements a fully connected layer.
//
// Performs the transformation: y = act(W · x + b)
// where:
//   - x is the input with shape [in, batch]
//   - W is the weight matrix with shape [out, in]
//   - b is the bias column with shape [out, 1], broadcast over the batch
//   - y is the output with shape [out, batch]
//
// Forward caches x, the pre-activation and y; Backward consumes them. The
// caches and gradient buffers are owned by the layer and reused in place
// from one mini-batch to the next, so they are only valid until the next
// call.
type Dense struct {
	name   string
	inDim  int
	outDim int
	act    Activation
	lambda float64
	par    parallel.Config

	weight *Parameter // [out, in]
	bias   *Parameter // [out, 1]

	// Forward cache.
	input *mat.Dense // [in, batch]
	pre   *mat.Dense // [out, batch]
	out   *mat.Dense // [out, batch]

	// Backward scratch.
	deriv   *mat.Dense // [out, batch]
	gradPre *mat.Dense // [out, batch]
	gradIn  *mat.Dense // [in, batch]
}

// NewDense creates a layer mapping inDim inputs to outDim outputs.
//
// Weights are drawn from rng (He for the ReLU family, Xavier otherwise);
// biases start at zero.
func NewDense(name string, outDim, inDim int, act Activation, rng *rand.Rand) (*Dense, error) {
	if outDim <= 0 || inDim <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "%s: dimensions must be positive, got out=%d in=%d", name, outDim, inDim)
	}
	if err := act.Validate(); err != nil {
		return nil, errors.Wrap(err, name)
	}

	return &Dense{
		name:   name,
		inDim:  inDim,
		outDim: outDim,
		act:    act,
		weight: NewParameter(name+".weight", initWeights(act, inDim, outDim, rng)),
		bias:   NewParameter(name+".bias", mat.NewDense(outDim, 1, nil)),
	}, nil
}

// Forward computes the layer output for a batch.
//
// Input shape: [in, batch]
// Output shape: [out, batch]
//
// The returned matrix is the layer's output cache.
func (d *Dense) Forward(input *mat.Dense) (*mat.Dense, error) {
	rows, batch := input.Dims()
	if rows != d.inDim {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: expected input with %d rows, got %v",
			d.name, d.inDim, tensor.ShapeOf(input))
	}

	d.input = tensor.Reuse(d.input, d.inDim, batch)
	d.input.Copy(input)

	d.pre = tensor.Reuse(d.pre, d.outDim, batch)
	d.pre.Mul(d.weight.value, d.input)
	tensor.AddColumn(d.pre, d.bias.value)

	d.out = tensor.Reuse(d.out, d.outDim, batch)
	d.act.Forward(d.out, d.pre, d.par)

	return d.out, nil
}

// Backward propagates ∂Loss/∂output through the layer.
//
// gradOutput must have shape [out, batch] for the batch of the last
// Forward. The gradient w.r.t. the pre-activation is gradOutput ⊙ act'(pre);
// see BackwardPre for the rest.
func (d *Dense) Backward(gradOutput *mat.Dense) (*mat.Dense, error) {
	if err := d.checkGrad(gradOutput); err != nil {
		return nil, err
	}
	if !d.act.Elementwise() {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"%s: %v output requires a gradient w.r.t. the pre-activation", d.name, d.act)
	}

	_, batch := gradOutput.Dims()
	d.deriv = tensor.Reuse(d.deriv, d.outDim, batch)
	d.act.Derivative(d.deriv, d.pre, d.out, d.par)

	d.gradPre = tensor.Reuse(d.gradPre, d.outDim, batch)
	d.gradPre.MulElem(gradOutput, d.deriv)

	return d.backwardPre(d.gradPre), nil
}

// BackwardPre propagates ∂Loss/∂pre-activation through the layer. Losses
// whose gradient is fused with the output activation enter here.
//
// Computes and stores:
//
//	∂W = gradPre · inputᵀ / batch + λ·W
//	∂b = rowmean(gradPre)
//
// and returns ∂input = Wᵀ · gradPre with shape [in, batch].
func (d *Dense) BackwardPre(gradPre *mat.Dense) (*mat.Dense, error) {
	if err := d.checkGrad(gradPre); err != nil {
		return nil, err
	}
	return d.backwardPre(gradPre), nil
}

func (d *Dense) backwardPre(gradPre *mat.Dense) *mat.Dense {
	_, batch := gradPre.Dims()

	gw := d.weight.grad
	gw.Mul(gradPre, d.input.T())
	gw.Scale(1/float64(batch), gw)
	if d.lambda != 0 {
		tensor.AddScaled(gw, d.lambda, d.weight.value)
	}

	tensor.RowMeans(d.bias.grad, gradPre)

	d.gradIn = tensor.Reuse(d.gradIn, d.inDim, batch)
	d.gradIn.Mul(d.weight.value.T(), gradPre)

	return d.gradIn
}

func (d *Dense) checkGrad(g *mat.Dense) error {
	if d.pre == nil {
		return errors.Wrapf(ErrInvalidConfiguration, "%s: backward called before forward", d.name)
	}
	want := tensor.ShapeOf(d.pre)
	if got := tensor.ShapeOf(g); !got.Equal(want) {
		return errors.Wrapf(ErrShapeMismatch, "%s: gradient shape %v, want %v", d.name, got, want)
	}
	return nil
}

// Parameters returns the trainable parameters of this layer: [weight, bias].
func (d *Dense) Parameters() []*Parameter {
	return []*Parameter{d.weight, d.bias}
}

// Weight returns the weight parameter.
func (d *Dense) Weight() *Parameter {
	return d.weight
}

// Bias returns the bias parameter.
func (d *Dense) Bias() *Parameter {
	return d.bias
}

// Name returns the layer name.
func (d *Dense) Name() string {
	return d.name
}

// InDim returns the number of input features.
func (d *Dense) InDim() int {
	return d.inDim
}

// OutDim returns the number of output features.
func (d *Dense) OutDim() int {
	return d.outDim
}

// Activation returns the layer activation.
func (d *Dense) Activation() Activation {
	return d.act
}

// SetActivation changes the layer activation. Caches from a previous
// forward pass are invalidated.
func (d *Dense) SetActivation(act Activation) error {
	if err := act.Validate(); err != nil {
		return errors.Wrap(err, d.name)
	}
	d.act = act
	d.pre = nil
	return nil
}

// SetLambda sets the L2 penalty strength added to the weight gradient.
func (d *Dense) SetLambda(lambda float64) {
	d.lambda = lambda
}

// SetParallel sets the parallelism used by the activation kernels.
func (d *Dense) SetParallel(cfg parallel.Config) {
	d.par = cfg
}

// StateDict returns copies of the parameters keyed "weight" and "bias".
func (d *Dense) StateDict() map[string]*mat.Dense {
	return map[string]*mat.Dense{
		"weight": mat.DenseCopyOf(d.weight.value),
		"bias":   mat.DenseCopyOf(d.bias.value),
	}
}

// LoadStateDict copies parameters from a state dictionary.
//
// Every entry is validated before any parameter is written.
func (d *Dense) LoadStateDict(state map[string]*mat.Dense) error {
	w, ok := state["weight"]
	if !ok {
		return errors.Wrapf(ErrInvalidConfiguration, "%s: missing weight in state dict", d.name)
	}
	b, ok := state["bias"]
	if !ok {
		return errors.Wrapf(ErrInvalidConfiguration, "%s: missing bias in state dict", d.name)
	}
	if got, want := tensor.ShapeOf(w), d.weight.Shape(); !got.Equal(want) {
		return errors.Wrapf(ErrShapeMismatch, "%s: weight shape %v, want %v", d.name, got, want)
	}
	if got, want := tensor.ShapeOf(b), d.bias.Shape(); !got.Equal(want) {
		return errors.Wrapf(ErrShapeMismatch, "%s: bias shape %v, want %v", d.name, got, want)
	}

	d.weight.value.Copy(w)
	d.bias.value.Copy(b)
	return nil
}

func (d *Dense) String() string {
	return fmt.Sprintf("Dense(%s: %d -> %d, %v)", d.name, d.inDim, d.outDim, d.act)
}
