package ffnn

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// Predict runs a forward pass over X (features × samples) and returns the
// predictions (outputs × samples). Parameters are not modified.
//
// Predict is allowed on an untrained network, e.g. to measure a baseline.
func (n *Network) Predict(X *mat.Dense) (*mat.Dense, error) {
	if err := n.validateStack(); err != nil {
		return nil, err
	}
	if X == nil {
		return nil, errors.Wrap(nn.ErrShapeMismatch, "features must not be nil")
	}
	if rows, _ := X.Dims(); rows != n.features {
		return nil, errors.Wrapf(nn.ErrShapeMismatch, "features %v: expected %d rows", tensor.ShapeOf(X), n.features)
	}

	out, err := n.forward(X)
	if err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(out), nil
}

// Evaluate scores the network on (X, y).
//
// Regression networks return the coefficient of determination R² (see R2,
// including its zero-variance rule). Classification networks return the
// accuracy (see Accuracy).
func (n *Network) Evaluate(X, y *mat.Dense) (float64, error) {
	pred, err := n.checkedPredict(X, y)
	if err != nil {
		return 0, err
	}
	if n.task == Classification {
		return Accuracy(pred, y), nil
	}
	return R2(pred, y)
}

// Loss returns the training loss on (X, y) without updating anything.
func (n *Network) Loss(X, y *mat.Dense) (float64, error) {
	pred, err := n.checkedPredict(X, y)
	if err != nil {
		return 0, err
	}
	return n.loss.Forward(pred, y), nil
}

func (n *Network) checkedPredict(X, y *mat.Dense) (*mat.Dense, error) {
	if X == nil || y == nil {
		return nil, errors.Wrap(nn.ErrShapeMismatch, "evaluation data must not be nil")
	}
	xs, ys := tensor.ShapeOf(X), tensor.ShapeOf(y)
	if ys.Rows != n.outputs {
		return nil, errors.Wrapf(nn.ErrShapeMismatch, "targets %v: expected %d rows", ys, n.outputs)
	}
	if xs.Cols != ys.Cols {
		return nil, errors.Wrapf(nn.ErrShapeMismatch, "features have %d samples, targets have %d", xs.Cols, ys.Cols)
	}
	if err := checkFinite(X, y); err != nil {
		return nil, err
	}
	return n.Predict(X)
}

func checkFinite(X, y *mat.Dense) error {
	if !tensor.AllFinite(X) {
		return errors.Wrap(nn.ErrNonFinite, "features contain NaN or Inf")
	}
	if !tensor.AllFinite(y) {
		return errors.Wrap(nn.ErrNonFinite, "targets contain NaN or Inf")
	}
	return nil
}
