package summary_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/sethaxen/sbi/simulate"
	"github.com/sethaxen/sbi/summary"
)

func noiseless() *simulate.Model {
	m := simulate.NewModel()
	m.Sigma = 0
	return m
}

func TestDefaultTimesCannotBeCorrupted(t *testing.T) {
	times := summary.DefaultTimes()
	times[0] = 99
	require.Equal(t, []float64{-0.5, 0, 0.75}, summary.DefaultTimes())
}

func TestCoordinatesShape(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewDense(5, 3, []float64{
		0.1, 0.2, 0.3,
		0.4, 0.5, 0.6,
		-0.1, -0.2, -0.3,
		0.0, 0.0, 0.0,
		0.9, -0.9, 0.9,
	})
	stats, err := summary.Coordinates(m, theta, nil, rand.NewSource(1))
	require.NoError(t, err)
	r, c := stats.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 3, c)
}

// theta = (1, 0, 0) is the pure square t^2, so the noiseless coordinate
// statistic at (-0.5, 0, 0.75) is (0.25, 0, 0.5625).
func TestCoordinatesPureSquare(t *testing.T) {
	theta := mat.NewVecDense(3, []float64{1, 0, 0})
	stats, err := summary.Coordinates(noiseless(), theta, nil, rand.NewSource(1))
	require.NoError(t, err)
	require.Equal(t, 0.25, stats.At(0, 0))
	require.Equal(t, 0.0, stats.At(0, 1))
	require.Equal(t, 0.5625, stats.At(0, 2))
}

// Each time point is a separate call with its own shared draw, so under noise
// the three columns carry three different residuals.
func TestCoordinatesColumnsDrawIndependently(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewVecDense(3, []float64{0, 0, 0})
	stats, err := summary.Coordinates(m, theta, []float64{0, 0, 0}, rand.NewSource(5))
	require.NoError(t, err)
	require.NotEqual(t, stats.At(0, 0), stats.At(0, 1))
	require.NotEqual(t, stats.At(0, 1), stats.At(0, 2))
}

func TestCoordinatesDeterministicUnderSeed(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewDense(2, 3, []float64{0.3, -0.2, 0.5, -0.9, 0.1, 0.0})
	first, err := summary.Coordinates(m, theta, nil, rand.NewSource(99))
	require.NoError(t, err)
	second, err := summary.Coordinates(m, theta, nil, rand.NewSource(99))
	require.NoError(t, err)
	require.True(t, mat.Equal(first, second), "identically seeded statistics differ")
}

func TestMeanSquaredErrorShapeAndSign(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewDense(4, 3, []float64{
		0.1, 0.2, 0.3,
		0.4, 0.5, 0.6,
		-0.1, -0.2, -0.3,
		0.9, -0.9, 0.9,
	})
	ref := mat.NewVecDense(3, []float64{0.2, -0.6, 0.1})
	stats, err := summary.MeanSquaredError(m, theta, ref, rand.NewSource(2))
	require.NoError(t, err)
	r, c := stats.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 1, c)
	for i := 0; i < r; i++ {
		require.GreaterOrEqual(t, stats.At(i, 0), 0.0)
	}
}

func TestMeanSquaredErrorIdenticalNoiseless(t *testing.T) {
	ref := mat.NewVecDense(3, []float64{0.25, -0.3, 0.45})
	stats, err := summary.MeanSquaredError(noiseless(), ref, ref, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, stats.At(0, 0))
}

// Seeding the source does not align the reference and candidate noise: the
// two traces draw independently, so identical parameters still leave a
// strictly positive error whenever sigma > 0.
func TestMeanSquaredErrorNoiseDoesNotCancel(t *testing.T) {
	m := simulate.NewModel()
	ref := mat.NewVecDense(3, []float64{0.25, -0.3, 0.45})
	stats, err := summary.MeanSquaredError(m, ref, ref, rand.NewSource(8))
	require.NoError(t, err)
	require.Greater(t, stats.At(0, 0), 0.0)
}

func TestMeanSquaredErrorRejectsBadReference(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewDense(1, 3, []float64{0.1, 0.2, 0.3})
	_, err := summary.MeanSquaredError(m, theta, mat.NewVecDense(4, nil), rand.NewSource(1))
	require.Error(t, err)
}
