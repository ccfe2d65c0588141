package tensor

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Zeros creates a rows×cols matrix filled with zeros.
//
// Panics if either dimension is not positive, as mat.NewDense does.
func Zeros(rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

// Full creates a rows×cols matrix with every element set to v.
func Full(rows, cols int, v float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(rows, cols, data)
}

// FromColumns builds a matrix with one sample per column.
//
// All samples must have the same non-zero length.
func FromColumns(samples [][]float64) (*mat.Dense, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("tensor: no samples")
	}
	rows := len(samples[0])
	if rows == 0 {
		return nil, fmt.Errorf("tensor: sample 0 is empty")
	}
	m := mat.NewDense(rows, len(samples), nil)
	for j, s := range samples {
		if len(s) != rows {
			return nil, fmt.Errorf("tensor: sample %d has %d values, want %d", j, len(s), rows)
		}
		m.SetCol(j, s)
	}
	return m, nil
}

// Randn creates a matrix with values drawn from N(0, 1).
func Randn(rows, cols int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(rows, cols, data)
}

// Uniform creates a matrix with values drawn from U(lo, hi).
func Uniform(rows, cols int, lo, hi float64, rng *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = lo + (hi-lo)*rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

// Reuse returns m reshaped to rows×cols, allocating only when m is nil or
// its backing slice is too small.
//
// When the shape already matches, m is returned untouched; otherwise the
// contents are zeroed. Callers are expected to overwrite every element.
func Reuse(m *mat.Dense, rows, cols int) *mat.Dense {
	if m == nil {
		return mat.NewDense(rows, cols, nil)
	}
	if r, c := m.Dims(); r == rows && c == cols {
		return m
	}
	m.Reset()
	m.ReuseAs(rows, cols)
	return m
}
