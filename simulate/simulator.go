// Package simulate generates noisy quadratic traces over a fixed time grid.
// The general idea is that a parameter vector theta = (a, b, c) describes the
// curve a*t^2 + b*t + c; the simulator evaluates a batch of such curves over
// the grid and perturbs every value with zero-mean Gaussian noise. Randomness
// is always consumed from an explicitly passed source so that a fixed seed
// reproduces a run bit for bit; a nil source falls back to ambient
// process randomness.
package simulate

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// NumCoefficients is the dimension of a parameter vector (a, b, c).
	NumCoefficients = 3
	// DefaultGridLen is the number of evaluation points in the default grid.
	DefaultGridLen = 200
	// DefaultSigma is the standard deviation of the observation noise.
	DefaultSigma = 0.01
)

// Model holds the shared time grid and the noise level. The grid is read-only
// for the lifetime of an experiment; every trace call evaluates over the full
// grid.
type Model struct {
	// Grid is the ordered sequence of evaluation times.
	Grid []float64
	// Sigma is the standard deviation of the additive Gaussian noise. Zero
	// disables the noise entirely.
	Sigma float64
}

// NewModel returns a model over the default grid of 200 evenly spaced points
// on [-1, 1] with the default noise level.
func NewModel() *Model {
	grid := make([]float64, DefaultGridLen)
	floats.Span(grid, -1, 1)
	return &Model{Grid: grid, Sigma: DefaultSigma}
}

// AsBatch coerces theta into an N x 3 parameter batch. A single 3-vector,
// supplied either as a 3x1 column or a 1x3 row, is treated as a batch of size
// one; anything whose inner dimension does not resolve to (a, b, c) triples is
// rejected.
func AsBatch(theta mat.Matrix) (*mat.Dense, error) {
	r, c := theta.Dims()
	switch {
	case c == NumCoefficients:
		return mat.DenseCopyOf(theta), nil
	case r == NumCoefficients && c == 1:
		row := mat.NewDense(1, NumCoefficients, nil)
		for i := 0; i < NumCoefficients; i++ {
			row.Set(0, i, theta.At(i, 0))
		}
		return row, nil
	default:
		return nil, fmt.Errorf("simulate: parameter batch must resolve to (a, b, c) triples, got dimensions %dx%d", r, c)
	}
}

// Trace evaluates the batch over the full grid and returns a
// (len(Grid) x N) matrix whose column j is the noisy curve of parameter
// vector j. Noise is drawn independently for every entry. Calls with equal
// inputs and an identically seeded source produce identical output.
func (m *Model) Trace(theta mat.Matrix, src rand.Source) (*mat.Dense, error) {
	batch, err := AsBatch(theta)
	if err != nil {
		return nil, err
	}
	n, _ := batch.Dims()
	noise := distuv.Normal{Mu: 0, Sigma: m.Sigma, Src: src}

	out := mat.NewDense(len(m.Grid), n, nil)
	for j := 0; j < n; j++ {
		a, b, c := batch.At(j, 0), batch.At(j, 1), batch.At(j, 2)
		for i, t := range m.Grid {
			out.Set(i, j, a*t*t+b*t+c+noise.Rand())
		}
	}
	return out, nil
}

// EvalAt evaluates the batch at the single time t and returns the N noisy
// values. Unlike Trace, a single noise draw is made per call and shared by
// the whole batch; repeated calls each make their own draw.
func (m *Model) EvalAt(theta mat.Matrix, t float64, src rand.Source) (*mat.VecDense, error) {
	batch, err := AsBatch(theta)
	if err != nil {
		return nil, err
	}
	n, _ := batch.Dims()
	eps := distuv.Normal{Mu: 0, Sigma: m.Sigma, Src: src}.Rand()

	out := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		a, b, c := batch.At(j, 0), batch.At(j, 1), batch.At(j, 2)
		out.SetVec(j, a*t*t+b*t+c+eps)
	}
	return out, nil
}
