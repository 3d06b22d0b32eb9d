// Package sbi wires the quadratic simulator, a prior region, a summary
// statistic and an inference backend into a single simulation-based inference
// experiment: draw parameters from the prior, simulate, reduce to statistics,
// fit the conditional model and condition it on the statistic of a held-out
// "true" parameter vector.
package sbi

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/sethaxen/sbi/inference"
	"github.com/sethaxen/sbi/prior"
	"github.com/sethaxen/sbi/simulate"
)

// Statistic reduces a parameter batch to its summary-statistic batch, one
// row per parameter vector.
type Statistic func(m *simulate.Model, theta mat.Matrix, src rand.Source) (*mat.Dense, error)

// Experiment contains all relevant components for one inference run.
type Experiment struct {
	// Model is the shared trace simulator.
	Model *simulate.Model
	// Prior is the region parameters are drawn from.
	Prior *prior.Box
	// Trainer fits the posterior to the simulated training pairs.
	Trainer inference.Trainer
	// NumSimulations is the size of the training set.
	NumSimulations int
}

// Result bundles the artifacts of a run.
type Result struct {
	// Theta is the prior parameter batch the model was trained on.
	Theta *mat.Dense
	// Stats is the statistic batch paired with Theta.
	Stats *mat.Dense
	// Observed is the statistic of the true parameter vector.
	Observed *mat.VecDense
	// Posterior is the trained conditional model.
	Posterior inference.Posterior
}

// Run executes the sequential pipeline for one choice of statistic and one
// true parameter vector. All randomness is consumed from src in call order.
func (e *Experiment) Run(stat Statistic, truth mat.Vector, src rand.Source) (*Result, error) {
	if e.NumSimulations <= 0 {
		return nil, fmt.Errorf("sbi: experiment needs a positive number of simulations, got %v", e.NumSimulations)
	}
	if !e.Prior.Contains(truth) {
		return nil, fmt.Errorf("sbi: true parameter vector lies outside the prior region")
	}

	theta := e.Prior.Sample(e.NumSimulations, src)
	stats, err := stat(e.Model, theta, src)
	if err != nil {
		return nil, err
	}
	ts, err := inference.NewTrainingSet(theta, stats)
	if err != nil {
		return nil, err
	}
	post, err := e.Trainer.Train(e.Prior, ts)
	if err != nil {
		return nil, err
	}

	obs, err := stat(e.Model, truth, src)
	if err != nil {
		return nil, err
	}
	observed := mat.NewVecDense(ts.StatDim(), mat.Row(nil, 0, obs))

	return &Result{Theta: theta, Stats: stats, Observed: observed, Posterior: post}, nil
}
