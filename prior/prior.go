// Package prior describes the bounded region parameter vectors are drawn
// from before simulation: an axis-aligned box with an independent uniform
// distribution per coefficient.
package prior

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sethaxen/sbi/simulate"
)

// Box is a product of closed intervals, one per coefficient of (a, b, c).
type Box struct {
	Lo, Hi [simulate.NumCoefficients]float64
}

// Default returns the unit box [-1, 1]^3.
func Default() *Box {
	return &Box{
		Lo: [simulate.NumCoefficients]float64{-1, -1, -1},
		Hi: [simulate.NumCoefficients]float64{1, 1, 1},
	}
}

// New returns a box with the given per-coefficient bounds.
func New(lo, hi [simulate.NumCoefficients]float64) (*Box, error) {
	for d := range lo {
		if !(lo[d] < hi[d]) {
			return nil, fmt.Errorf("prior: bounds for coefficient %v are [%v, %v], want lo < hi", d, lo[d], hi[d])
		}
	}
	return &Box{Lo: lo, Hi: hi}, nil
}

// Sample draws n parameter vectors uniformly from the box and returns them as
// an n x 3 batch.
func (b *Box) Sample(n int, src rand.Source) *mat.Dense {
	out := mat.NewDense(n, simulate.NumCoefficients, nil)
	for d := 0; d < simulate.NumCoefficients; d++ {
		u := distuv.Uniform{Min: b.Lo[d], Max: b.Hi[d], Src: src}
		for i := 0; i < n; i++ {
			out.Set(i, d, u.Rand())
		}
	}
	return out
}

// LogProb returns the per-row log density of the batch under the box prior:
// the negative log volume inside the box and -Inf outside.
func (b *Box) LogProb(theta mat.Matrix) (*mat.VecDense, error) {
	batch, err := simulate.AsBatch(theta)
	if err != nil {
		return nil, err
	}
	n, _ := batch.Dims()

	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		var lp float64
		for d := 0; d < simulate.NumCoefficients; d++ {
			u := distuv.Uniform{Min: b.Lo[d], Max: b.Hi[d]}
			lp += u.LogProb(batch.At(i, d))
		}
		out.SetVec(i, lp)
	}
	return out, nil
}

// Contains reports whether the vector lies inside the box.
func (b *Box) Contains(theta mat.Vector) bool {
	if theta.Len() != simulate.NumCoefficients {
		return false
	}
	for d := 0; d < simulate.NumCoefficients; d++ {
		if theta.AtVec(d) < b.Lo[d] || theta.AtVec(d) > b.Hi[d] {
			return false
		}
	}
	return true
}
