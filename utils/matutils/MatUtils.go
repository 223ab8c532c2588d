// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MaxVec finds and returns the index of the maximum value in a vector.
// If multiple equal max values exist, only the first one is returned.
func MaxVec(values mat.Vector) int {
	max, idx := values.AtVec(0), 0

	for i := 0; i < values.Len(); i++ {
		if values.AtVec(i) > max {
			max = values.AtVec(i)
			idx = i
		}
	}
	return idx
}

// RowSums returns the sum of each row of a matrix
func RowSums(matrix mat.Matrix) *mat.VecDense {
	r, c := matrix.Dims()
	sums := mat.NewVecDense(r, nil)

	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, matrix)
		sums.SetVec(i, floats.Sum(row))
	}
	return sums
}

// MaxAbsDiff returns the largest absolute element-wise difference
// between two vectors of equal length
func MaxAbsDiff(a, b mat.Vector) float64 {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("maxAbsDiff: length mismatch %d != %d", a.Len(),
			b.Len()))
	}

	diff := mat.NewVecDense(a.Len(), nil)
	diff.SubVec(a, b)
	return mat.Norm(diff, math.Inf(1))
}
