package ffnn

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// R2 returns the coefficient of determination of pred against target:
//
//	R² = 1 - SS_res / SS_tot
//	SS_res = Σ (y - ŷ)²
//	SS_tot = Σ (y - mean(y))²
//
// With several outputs the mean is taken per output row and the sums run
// over all elements.
//
// When the target has zero variance (SS_tot == 0) R² is undefined: exact
// predictions return 1, anything else returns ErrDegenerateMetric. NaN or
// infinite sums return ErrNonFinite.
func R2(pred, target *mat.Dense) (float64, error) {
	mustMatch(pred, target)
	rows, _ := target.Dims()

	var ssRes, ssTot float64
	for i := 0; i < rows; i++ {
		y := target.RawRowView(i)
		yHat := pred.RawRowView(i)
		mean := stat.Mean(y, nil)
		for j, v := range y {
			r := v - yHat[j]
			d := v - mean
			ssRes += r * r
			ssTot += d * d
		}
	}

	if math.IsNaN(ssRes) || math.IsInf(ssRes, 0) || math.IsNaN(ssTot) || math.IsInf(ssTot, 0) {
		return 0, errors.Wrapf(nn.ErrNonFinite, "R² sums SS_res=%g SS_tot=%g", ssRes, ssTot)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, errors.Wrapf(nn.ErrDegenerateMetric, "R² of a constant target (SS_res=%g)", ssRes)
	}
	return 1 - ssRes/ssTot, nil
}

// MeanSquaredError returns Σ (ŷ - y)² / elements.
func MeanSquaredError(pred, target *mat.Dense) float64 {
	mustMatch(pred, target)
	var diff mat.Dense
	diff.Sub(pred, target)
	r, c := diff.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		row := diff.RawRowView(i)
		sum += floats.Dot(row, row)
	}
	return sum / float64(r*c)
}

// Accuracy returns the fraction of samples classified correctly.
//
// With a single output a sample is positive when its value is >= 0.5; with
// several outputs the class is the row holding the column maximum (first
// one on ties).
func Accuracy(pred, target *mat.Dense) float64 {
	mustMatch(pred, target)
	rows, cols := target.Dims()

	var correct int
	if rows == 1 {
		for j := 0; j < cols; j++ {
			if (pred.At(0, j) >= 0.5) == (target.At(0, j) >= 0.5) {
				correct++
			}
		}
		return float64(correct) / float64(cols)
	}

	p := make([]float64, rows)
	y := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(p, j, pred)
		mat.Col(y, j, target)
		if floats.MaxIdx(p) == floats.MaxIdx(y) {
			correct++
		}
	}
	return float64(correct) / float64(cols)
}

func mustMatch(pred, target *mat.Dense) {
	if p, t := tensor.ShapeOf(pred), tensor.ShapeOf(target); !p.Equal(t) {
		panic(fmt.Sprintf("ffnn: predictions %v and targets %v must have the same shape", p, t))
	}
}
