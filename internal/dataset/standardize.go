package dataset

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/ffnn/internal/nn"
)

// Standardizer rescales every feature row to zero mean and unit variance
// using statistics of the data it was fitted on.
type Standardizer struct {
	Mean []float64
	Std  []float64
}

// FitStandardizer computes per-row statistics of X. Rows with zero variance
// keep a scale of 1.
func FitStandardizer(X *mat.Dense) *Standardizer {
	rows, _ := X.Dims()
	s := &Standardizer{
		Mean: make([]float64, rows),
		Std:  make([]float64, rows),
	}
	for i := 0; i < rows; i++ {
		mean, std := stat.MeanStdDev(X.RawRowView(i), nil)
		if !(std > 0) {
			std = 1
		}
		s.Mean[i], s.Std[i] = mean, std
	}
	return s
}

// Transform returns a standardized copy of X.
func (s *Standardizer) Transform(X *mat.Dense) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if rows != len(s.Mean) {
		return nil, errors.Wrapf(nn.ErrShapeMismatch, "standardizer fitted on %d rows, got %d", len(s.Mean), rows)
	}
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, _ int, v float64) float64 {
		return (v - s.Mean[i]) / s.Std[i]
	}, X)
	return out, nil
}

// Inverse maps standardized values back to the original scale.
func (s *Standardizer) Inverse(X *mat.Dense) (*mat.Dense, error) {
	rows, cols := X.Dims()
	if rows != len(s.Mean) {
		return nil, errors.Wrapf(nn.ErrShapeMismatch, "standardizer fitted on %d rows, got %d", len(s.Mean), rows)
	}
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(i, _ int, v float64) float64 {
		return v*s.Std[i] + s.Mean[i]
	}, X)
	return out, nil
}
