package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GatherColumns copies the columns of src listed in idx, in order, into dst
// and returns it. dst is reused per Reuse.
func GatherColumns(dst, src *mat.Dense, idx []int) *mat.Dense {
	rows, cols := src.Dims()
	dst = Reuse(dst, rows, len(idx))
	for i := 0; i < rows; i++ {
		from := src.RawRowView(i)
		to := dst.RawRowView(i)
		for k, j := range idx {
			if j < 0 || j >= cols {
				panic(fmt.Sprintf("tensor: column index %d out of range [0, %d)", j, cols))
			}
			to[k] = from[j]
		}
	}
	return dst
}

// AddColumn adds the column vector col (rows×1) to every column of m.
func AddColumn(m, col *mat.Dense) {
	rows, _ := m.Dims()
	if r, c := col.Dims(); r != rows || c != 1 {
		panic(fmt.Sprintf("tensor: cannot broadcast %v over %v", ShapeOf(col), ShapeOf(m)))
	}
	for i := 0; i < rows; i++ {
		floats.AddConst(col.At(i, 0), m.RawRowView(i))
	}
}

// RowMeans writes the mean of each row of m into dst (rows×1).
func RowMeans(dst, m *mat.Dense) {
	rows, cols := m.Dims()
	if r, c := dst.Dims(); r != rows || c != 1 {
		panic(fmt.Sprintf("tensor: row means of %v do not fit %v", ShapeOf(m), ShapeOf(dst)))
	}
	n := float64(cols)
	for i := 0; i < rows; i++ {
		dst.Set(i, 0, floats.Sum(m.RawRowView(i))/n)
	}
}

// AddScaled performs dst += alpha * src elementwise.
func AddScaled(dst *mat.Dense, alpha float64, src *mat.Dense) {
	rows, _ := dst.Dims()
	if !ShapeOf(dst).Equal(ShapeOf(src)) {
		panic(fmt.Sprintf("tensor: shape mismatch %v vs %v", ShapeOf(dst), ShapeOf(src)))
	}
	for i := 0; i < rows; i++ {
		floats.AddScaled(dst.RawRowView(i), alpha, src.RawRowView(i))
	}
}

// AllFinite reports whether m contains neither NaN nor ±Inf.
func AllFinite(m *mat.Dense) bool {
	rows, _ := m.Dims()
	for i := 0; i < rows; i++ {
		for _, v := range m.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
