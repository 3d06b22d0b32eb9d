// Package summary reduces raw simulator traces to the low-dimensional
// statistics handed to the inference backend. Two hand-crafted statistics are
// provided: the curve value at a few fixed coordinates, and the mean squared
// error against a fixed reference curve.
package summary

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sethaxen/sbi/simulate"
)

// DefaultTimes returns the evaluation coordinates of the coordinate
// statistic. A fresh slice is returned on every call so callers cannot
// corrupt the default.
func DefaultTimes() []float64 {
	return []float64{-0.5, 0, 0.75}
}

// Coordinates evaluates the batch at each of the given times and returns the
// (N x len(times)) statistic matrix; a nil or empty times slice uses
// DefaultTimes. Each time point is an independent EvalAt call, so the columns
// do not share a noise draw even under a fixed source.
func Coordinates(m *simulate.Model, theta mat.Matrix, times []float64, src rand.Source) (*mat.Dense, error) {
	if len(times) == 0 {
		times = DefaultTimes()
	}
	batch, err := simulate.AsBatch(theta)
	if err != nil {
		return nil, err
	}
	n, _ := batch.Dims()

	out := mat.NewDense(n, len(times), nil)
	for k, t := range times {
		col, err := m.EvalAt(batch, t, src)
		if err != nil {
			return nil, err
		}
		out.SetCol(k, col.RawVector().Data)
	}
	return out, nil
}

// MeanSquaredError generates a reference trace from ref and a candidate trace
// from the batch, then reduces each candidate column to the mean over the
// grid of the squared difference against the reference, returned as an
// (N x 1) column of non-negative values.
//
// Both traces consume draws from the same source, one after the other, so
// their noise realizations are independent: seeding the source does NOT make
// the noise cancel between reference and candidate, not even for identical
// parameter vectors. Only a zero noise level gives an exact zero there.
func MeanSquaredError(m *simulate.Model, theta mat.Matrix, ref mat.Vector, src rand.Source) (*mat.Dense, error) {
	if ref.Len() != simulate.NumCoefficients {
		return nil, fmt.Errorf("summary: reference vector has length %v, want %v", ref.Len(), simulate.NumCoefficients)
	}
	refTrace, err := m.Trace(ref, src)
	if err != nil {
		return nil, err
	}
	cand, err := m.Trace(theta, src)
	if err != nil {
		return nil, err
	}

	refCol := mat.Col(nil, 0, refTrace)
	_, n := cand.Dims()
	out := mat.NewDense(n, 1, nil)
	for j := 0; j < n; j++ {
		d := floats.Distance(mat.Col(nil, j, cand), refCol, 2)
		out.Set(j, 0, d*d/float64(len(m.Grid)))
	}
	return out, nil
}
