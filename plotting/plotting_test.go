package plotting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/sethaxen/sbi/plotting"
	"github.com/sethaxen/sbi/prior"
	"github.com/sethaxen/sbi/simulate"
)

func requireFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestTraceLines(t *testing.T) {
	m := simulate.NewModel()
	theta := mat.NewDense(2, 3, []float64{0.3, -0.2, 0.5, -0.9, 0.1, 0.0})
	trace, err := m.Trace(theta, rand.NewSource(1))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "traces.png")
	require.NoError(t, plotting.TraceLines(m.Grid, trace, "prior simulations", path))
	requireFile(t, path)
}

func TestTraceLinesRejectsGridMismatch(t *testing.T) {
	err := plotting.TraceLines([]float64{0, 1}, mat.NewDense(3, 1, nil), "", "unused.png")
	require.Error(t, err)
}

func TestHistogram(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i%10) / 10
	}
	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, plotting.Histogram(values, 10, "statistic", path))
	requireFile(t, path)
}

func TestPairGrid(t *testing.T) {
	theta := prior.Default().Sample(100, rand.NewSource(2))
	path := filepath.Join(t.TempDir(), "pairs.png")
	require.NoError(t, plotting.PairGrid(theta, []string{"a", "b", "c"}, path))
	requireFile(t, path)
}

func TestPairGridRejectsNameMismatch(t *testing.T) {
	theta := prior.Default().Sample(10, rand.NewSource(2))
	err := plotting.PairGrid(theta, []string{"a"}, "unused.png")
	require.Error(t, err)
}
