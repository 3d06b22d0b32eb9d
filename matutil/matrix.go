// Package matutil collects small gonum matrix helpers shared by the
// simulation and inference packages.
package matutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// HasNaNOrInf checks if there are any NaN or Inf entries in matrix.
func HasNaNOrInf(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}

// Row copies row i of matrix into a new vector.
func Row(i int, matrix mat.Matrix) *mat.VecDense {
	_, n := matrix.Dims()
	return mat.NewVecDense(n, mat.Row(nil, i, matrix))
}

// Col copies column j of matrix into a new slice.
func Col(j int, matrix mat.Matrix) []float64 {
	return mat.Col(nil, j, matrix)
}
