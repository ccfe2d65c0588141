// Package dataset builds feature/target matrices for training and
// evaluating networks.
//
// Every Dataset uses the column-sample layout of the engine: X is
// (features × samples) and Y is (outputs × samples).
package dataset

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
)

// Dataset pairs features with targets.
type Dataset struct {
	X *mat.Dense // [features, samples]
	Y *mat.Dense // [outputs, samples]
}

// New checks that X and Y describe the same samples.
func New(X, Y *mat.Dense) (Dataset, error) {
	if X == nil || Y == nil {
		return Dataset{}, errors.Wrap(nn.ErrShapeMismatch, "dataset: nil matrix")
	}
	_, xc := X.Dims()
	_, yc := Y.Dims()
	if xc != yc {
		return Dataset{}, errors.Wrapf(nn.ErrShapeMismatch, "dataset: %d feature columns, %d target columns", xc, yc)
	}
	return Dataset{X: X, Y: Y}, nil
}

// Samples returns the number of samples.
func (d Dataset) Samples() int {
	_, c := d.X.Dims()
	return c
}

// Features returns the number of feature rows.
func (d Dataset) Features() int {
	r, _ := d.X.Dims()
	return r
}

// Outputs returns the number of target rows.
func (d Dataset) Outputs() int {
	r, _ := d.Y.Dims()
	return r
}

// Slice returns the samples [from, to) as views on d.
func (d Dataset) Slice(from, to int) Dataset {
	return Dataset{
		X: d.X.Slice(0, d.Features(), from, to).(*mat.Dense),
		Y: d.Y.Slice(0, d.Outputs(), from, to).(*mat.Dense),
	}
}

// Splits holds the three partitions used by a training run.
type Splits struct {
	Train      Dataset
	Validation Dataset
	Test       Dataset
}

// Split partitions d into consecutive train, validation and test blocks.
//
// train and validation are fractions of the sample count, truncated to
// whole samples; the test block gets the rest. Validation may be empty, the
// train and test blocks may not. Samples are not shuffled: generate or load
// them in random order.
func Split(d Dataset, train, validation float64) (Splits, error) {
	if train <= 0 || validation < 0 || train+validation >= 1 {
		return Splits{}, errors.Wrapf(nn.ErrInvalidConfiguration,
			"dataset: split fractions train=%g validation=%g must leave room for a test set", train, validation)
	}

	n := d.Samples()
	nTrain := blockSize(train, n)
	nVal := blockSize(validation, n)
	if nTrain == 0 || nTrain+nVal >= n {
		return Splits{}, errors.Wrapf(nn.ErrInvalidConfiguration,
			"dataset: %d samples are too few for split train=%g validation=%g", n, train, validation)
	}

	s := Splits{
		Train: d.Slice(0, nTrain),
		Test:  d.Slice(nTrain+nVal, n),
	}
	if nVal > 0 {
		s.Validation = d.Slice(nTrain, nTrain+nVal)
	}
	return s, nil
}

// blockSize truncates frac·n to whole samples, tolerating rounding error in
// the product.
func blockSize(frac float64, n int) int {
	return int(math.Floor(frac*float64(n) + 1e-9))
}

// Empty reports whether d holds no matrices.
func (d Dataset) Empty() bool {
	return d.X == nil
}
