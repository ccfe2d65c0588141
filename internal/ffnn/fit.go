package ffnn

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// Fit trains the network on the bound data.
//
// Every epoch reshuffles the sample order with the network's generator and
// walks it in mini-batches of batchSize samples. The last batch of an epoch
// holds the remaining samples when batchSize does not divide the sample
// count; a batchSize larger than the sample count trains full-batch.
//
// Momentum buffers are reset at the start of every call. Parameters only
// change after the backward pass of the whole network succeeded for a
// mini-batch, so when Fit returns an error the parameters are those after
// the last successful mini-batch.
func (n *Network) Fit(epochs, batchSize int, learningRate float64) error {
	if err := n.validateStack(); err != nil {
		return err
	}
	if n.x == nil {
		return errors.Wrap(nn.ErrInvalidConfiguration, "no training data bound, call InitData first")
	}
	if epochs <= 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "epochs must be positive, got %d", epochs)
	}
	if batchSize <= 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "batch size must be positive, got %d", batchSize)
	}
	if !(learningRate > 0) || math.IsInf(learningRate, 0) {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "learning rate must be positive and finite, got %g", learningRate)
	}

	samples := len(n.perm)
	batchSize = min(batchSize, samples)

	n.started = true
	n.optimizer.SetLR(learningRate)
	n.optimizer.Reset()
	n.history = n.history[:0]
	bounds := batchBounds(samples, batchSize)

	for epoch := 0; epoch < epochs; epoch++ {
		n.rng.Shuffle(samples, func(i, j int) {
			n.perm[i], n.perm[j] = n.perm[j], n.perm[i]
		})

		var total float64
		for _, b := range bounds {
			loss, err := n.step(n.perm[b[0]:b[1]])
			if err != nil {
				return errors.Wrapf(err, "epoch %d, batch at sample %d", epoch, b[0])
			}
			total += loss * float64(b[1]-b[0])
		}
		n.history = append(n.history, total/float64(samples))
	}

	n.trained = true
	return nil
}

// step runs forward, backward and the parameter update for one mini-batch
// and returns its loss.
func (n *Network) step(idx []int) (float64, error) {
	n.batchX = tensor.GatherColumns(n.batchX, n.x, idx)
	n.batchY = tensor.GatherColumns(n.batchY, n.y, idx)

	out, err := n.forward(n.batchX)
	if err != nil {
		return 0, err
	}

	loss := n.loss.Forward(out, n.batchY)
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return 0, errors.Wrapf(nn.ErrNonFinite, "loss is %v", loss)
	}

	if err := n.backward(out); err != nil {
		return 0, err
	}

	for _, p := range n.params {
		if !tensor.AllFinite(p.Grad()) {
			return 0, errors.Wrapf(nn.ErrNonFinite, "gradient of %s", p.Name())
		}
	}

	n.optimizer.Step(n.params)
	return loss, nil
}

// backward propagates the loss gradient from the last layer to the first.
func (n *Network) backward(out *mat.Dense) error {
	n.grad = n.loss.Gradient(n.grad, out, n.batchY)

	last := len(n.layers) - 1
	var (
		g   *mat.Dense
		err error
	)
	if n.loss.Fused() {
		g, err = n.layers[last].BackwardPre(n.grad)
	} else {
		g, err = n.layers[last].Backward(n.grad)
	}
	if err != nil {
		return err
	}

	for i := last - 1; i >= 0; i-- {
		g, err = n.layers[i].Backward(g)
		if err != nil {
			return err
		}
	}
	return nil
}

// batchBounds splits [0, samples) into consecutive [start, end) ranges of
// batchSize elements; the last range holds the remainder.
func batchBounds(samples, batchSize int) [][2]int {
	bounds := make([][2]int, 0, (samples+batchSize-1)/batchSize)
	for start := 0; start < samples; start += batchSize {
		bounds = append(bounds, [2]int{start, min(start+batchSize, samples)})
	}
	return bounds
}
