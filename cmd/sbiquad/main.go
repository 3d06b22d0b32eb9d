// Command sbiquad runs the two-statistic comparison: the same quadratic
// simulator and prior are paired once with the three-coordinate statistic and
// once with the mean-squared-error statistic, and the resulting posteriors
// over (a, b, c) are sampled and plotted side by side.
//
// Usage: sbiquad [seed] [numSimulations]
package main

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sethaxen/sbi"
	"github.com/sethaxen/sbi/inference"
	"github.com/sethaxen/sbi/plotting"
	"github.com/sethaxen/sbi/prior"
	"github.com/sethaxen/sbi/simulate"
	"github.com/sethaxen/sbi/summary"
)

func main() {
	seed := uint64(1)
	numSimulations := 1000
	if len(os.Args) > 1 {
		s, err := strconv.ParseUint(os.Args[1], 10, 64)
		if err != nil {
			panic("seed is not an unsigned integer")
		}
		seed = s
	}
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			panic("simulation count is not an integer")
		}
		numSimulations = n
	}
	fmt.Printf("Running with seed %v and %v simulations\n", seed, numSimulations)

	truth := mat.NewVecDense(3, []float64{0.3, -0.2, 0.1})
	trainer, err := inference.NewABC(0.1)
	if err != nil {
		panic(err)
	}
	experiment := &sbi.Experiment{
		Model:          simulate.NewModel(),
		Prior:          prior.Default(),
		Trainer:        trainer,
		NumSimulations: numSimulations,
	}
	src := rand.NewSource(seed)

	fmt.Println("Plotting example prior simulations")
	preview := experiment.Prior.Sample(5, src)
	trace, err := experiment.Model.Trace(preview, src)
	if err != nil {
		panic(err)
	}
	if err := plotting.TraceLines(experiment.Model.Grid, trace, "prior simulations", "traces.png"); err != nil {
		panic(err)
	}

	coordinates := func(m *simulate.Model, theta mat.Matrix, src rand.Source) (*mat.Dense, error) {
		return summary.Coordinates(m, theta, nil, src)
	}
	meanSquaredError := func(m *simulate.Model, theta mat.Matrix, src rand.Source) (*mat.Dense, error) {
		return summary.MeanSquaredError(m, theta, truth, src)
	}

	report(experiment, "coordinate", coordinates, truth, src)
	report(experiment, "mse", meanSquaredError, truth, src)
}

// report runs one statistic, prints its posterior mean and saves the
// statistic histogram and the pairwise posterior marginals.
func report(e *sbi.Experiment, name string, statFn sbi.Statistic, truth mat.Vector, src rand.Source) {
	fmt.Printf("Simulating and training with the %v statistic\n", name)
	res, err := e.Run(statFn, truth, src)
	if err != nil {
		panic(err)
	}

	firstStat := mat.Col(nil, 0, res.Stats)
	if err := plotting.Histogram(firstStat, 30, name+" statistic over the prior", name+"_statistic.png"); err != nil {
		panic(err)
	}

	draws, err := res.Posterior.Sample(2000, res.Observed, src)
	if err != nil {
		panic(err)
	}
	if err := plotting.PairGrid(draws, []string{"a", "b", "c"}, name+"_posterior.png"); err != nil {
		panic(err)
	}

	fmt.Printf("Posterior mean with the %v statistic: ", name)
	for d := 0; d < 3; d++ {
		fmt.Printf("%.3f ", stat.Mean(mat.Col(nil, d, draws), nil))
	}
	fmt.Printf("(truth %.3f %.3f %.3f)\n", truth.AtVec(0), truth.AtVec(1), truth.AtVec(2))
}
