// Package inference is the boundary to the posterior-estimation collaborator.
// The pipeline only ever talks to the narrow Trainer and Posterior
// interfaces, so estimator backends can be swapped without touching the
// simulation or statistic-extraction code. A non-neural rejection backend is
// provided as the reference implementation.
package inference

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/sethaxen/sbi/matutil"
	"github.com/sethaxen/sbi/prior"
	"github.com/sethaxen/sbi/simulate"
)

// TrainingSet pairs a parameter batch with the statistic batch computed from
// it, row for row.
type TrainingSet struct {
	// Theta is the N x 3 parameter batch.
	Theta *mat.Dense
	// Stats is the N x d statistic batch, row i derived from Theta row i.
	Stats *mat.Dense
}

// NewTrainingSet validates the pairing: equal batch sizes, parameter rows
// resolving to (a, b, c) triples, and finite statistics.
func NewTrainingSet(theta, stats *mat.Dense) (TrainingSet, error) {
	tr, tc := theta.Dims()
	sr, _ := stats.Dims()
	if tc != simulate.NumCoefficients {
		return TrainingSet{}, fmt.Errorf("inference: parameter batch has inner dimension %v, want %v", tc, simulate.NumCoefficients)
	}
	if tr != sr {
		return TrainingSet{}, fmt.Errorf("inference: %v parameter rows paired with %v statistic rows", tr, sr)
	}
	if matutil.HasNaNOrInf(stats) {
		return TrainingSet{}, fmt.Errorf("inference: statistic batch contains NaN or Inf entries")
	}
	return TrainingSet{Theta: theta, Stats: stats}, nil
}

// Len returns the number of training pairs.
func (ts TrainingSet) Len() int {
	r, _ := ts.Theta.Dims()
	return r
}

// StatDim returns the dimensionality of the statistic.
func (ts TrainingSet) StatDim() int {
	_, c := ts.Stats.Dims()
	return c
}

// Posterior is a trained conditional model over parameter vectors given an
// observed statistic.
type Posterior interface {
	// Sample draws n parameter vectors conditioned on the observed
	// statistic.
	Sample(n int, observed mat.Vector, src rand.Source) (*mat.Dense, error)
	// LogProb evaluates the conditional log density at each row of theta.
	LogProb(theta mat.Matrix, observed mat.Vector) (*mat.VecDense, error)
}

// Trainer fits a Posterior to a training set drawn from the given prior
// region.
type Trainer interface {
	Train(region *prior.Box, ts TrainingSet) (Posterior, error)
}
