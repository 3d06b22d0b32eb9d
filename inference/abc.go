package inference

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sethaxen/sbi/matutil"
	"github.com/sethaxen/sbi/prior"
	"github.com/sethaxen/sbi/simulate"
)

// ABC is a kernel rejection trainer. Training rows are weighted by a
// Gaussian kernel on the distance between their statistic and the observed
// one; sampling resamples training parameters by weight and the log density
// is a weighted kernel density estimate over them. Crude next to a neural
// estimator, but it needs no training loop and keeps the pipeline runnable
// end to end.
type ABC struct {
	// Bandwidth is the kernel width on statistic distance. Smaller values
	// accept fewer simulations; too small and no simulation reaches the
	// observation at all.
	Bandwidth float64
}

// NewABC returns a trainer with the given statistic-kernel bandwidth.
func NewABC(bandwidth float64) (*ABC, error) {
	if !(bandwidth > 0) {
		return nil, fmt.Errorf("inference: kernel bandwidth is %v, want > 0", bandwidth)
	}
	return &ABC{Bandwidth: bandwidth}, nil
}

// Train checks the training set against the prior region and returns the
// conditional model. All the real work happens lazily per observed
// statistic.
func (a *ABC) Train(region *prior.Box, ts TrainingSet) (Posterior, error) {
	if region == nil {
		return nil, fmt.Errorf("inference: nil prior region")
	}
	if ts.Len() == 0 {
		return nil, fmt.Errorf("inference: empty training set")
	}
	return &abcPosterior{region: region, ts: ts, bw: a.Bandwidth}, nil
}

type abcPosterior struct {
	region *prior.Box
	ts     TrainingSet
	bw     float64
}

// weights returns the normalized kernel weight of every training row for the
// observed statistic.
func (p *abcPosterior) weights(observed mat.Vector) ([]float64, error) {
	if observed.Len() != p.ts.StatDim() {
		return nil, fmt.Errorf("inference: observed statistic has dimension %v, want %v", observed.Len(), p.ts.StatDim())
	}
	n := p.ts.Len()
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		var d2 float64
		for k := 0; k < p.ts.StatDim(); k++ {
			diff := p.ts.Stats.At(i, k) - observed.AtVec(k)
			d2 += diff * diff
		}
		w[i] = math.Exp(-d2 / (2 * p.bw * p.bw))
	}
	sum := floats.Sum(w)
	if sum == 0 {
		return nil, fmt.Errorf("inference: no training statistic within kernel reach of the observation; the prior simulations do not cover it")
	}
	floats.Scale(1/sum, w)
	return w, nil
}

func (p *abcPosterior) Sample(n int, observed mat.Vector, src rand.Source) (*mat.Dense, error) {
	w, err := p.weights(observed)
	if err != nil {
		return nil, err
	}
	cat := distuv.NewCategorical(w, src)
	out := mat.NewDense(n, simulate.NumCoefficients, nil)
	for i := 0; i < n; i++ {
		j := int(cat.Rand())
		out.SetRow(i, mat.Row(nil, j, p.ts.Theta))
	}
	return out, nil
}

func (p *abcPosterior) LogProb(theta mat.Matrix, observed mat.Vector) (*mat.VecDense, error) {
	w, err := p.weights(observed)
	if err != nil {
		return nil, err
	}
	batch, err := simulate.AsBatch(theta)
	if err != nil {
		return nil, err
	}
	kernel, err := p.kernel(w)
	if err != nil {
		return nil, err
	}

	logw := make([]float64, len(w))
	for i, wi := range w {
		logw[i] = math.Log(wi)
	}

	n, _ := batch.Dims()
	out := mat.NewVecDense(n, nil)
	terms := make([]float64, len(w))
	diff := make([]float64, simulate.NumCoefficients)
	for q := 0; q < n; q++ {
		if !p.region.Contains(matutil.Row(q, batch)) {
			out.SetVec(q, math.Inf(-1))
			continue
		}
		for i := range w {
			if w[i] == 0 {
				terms[i] = math.Inf(-1)
				continue
			}
			for d := 0; d < simulate.NumCoefficients; d++ {
				diff[d] = batch.At(q, d) - p.ts.Theta.At(i, d)
			}
			terms[i] = logw[i] + kernel.LogProb(diff)
		}
		out.SetVec(q, floats.LogSumExp(terms))
	}
	return out, nil
}

// kernel builds the zero-mean Gaussian smoothing kernel for the density
// estimate, with a per-coefficient Silverman bandwidth computed from the
// weighted parameter spread. The weights are already normalized to sum 1,
// so the spread is the plain weighted second moment about the weighted mean;
// gonum's unbiased weighted variance is off limits here, its sum(w)-1
// denominator vanishes for normalized weights.
func (p *abcPosterior) kernel(w []float64) (*distmv.Normal, error) {
	neff := 1 / floats.Dot(w, w)
	cov := mat.NewSymDense(simulate.NumCoefficients, nil)
	for d := 0; d < simulate.NumCoefficients; d++ {
		col := matutil.Col(d, p.ts.Theta)
		mean := stat.Mean(col, w)
		var variance float64
		for i, x := range col {
			diff := x - mean
			variance += w[i] * diff * diff
		}
		h := 1.06 * math.Sqrt(variance) * math.Pow(neff, -1.0/5)
		if math.IsNaN(h) || math.IsInf(h, 0) || !(h > 0) {
			// Degenerate spread, e.g. a single effective sample.
			h = 1e-3
		}
		cov.SetSym(d, d, h*h)
	}
	kernel, ok := distmv.NewNormal(make([]float64, simulate.NumCoefficients), cov, nil)
	if !ok {
		return nil, fmt.Errorf("inference: kernel covariance is not positive definite")
	}
	return kernel, nil
}
