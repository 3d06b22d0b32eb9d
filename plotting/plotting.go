// Package plotting renders traces, statistic histograms and pairwise
// parameter marginals to image files. It is a thin wrapper around
// gonum.org/v1/plot; nothing downstream consumes the rendered output.
package plotting

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// TraceLines plots every column of trace against the grid and saves the
// figure to path. Column j is labeled "sample j".
func TraceLines(grid []float64, trace mat.Matrix, title, path string) error {
	r, c := trace.Dims()
	if r != len(grid) {
		return fmt.Errorf("plotting: trace has %v rows for a grid of %v points", r, len(grid))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "f(t)"

	args := make([]interface{}, 0, 2*c)
	for j := 0; j < c; j++ {
		pts := make(plotter.XYs, r)
		for i := range pts {
			pts[i].X = grid[i]
			pts[i].Y = trace.At(i, j)
		}
		args = append(args, fmt.Sprintf("sample %d", j), pts)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// Histogram bins the values and saves the figure to path.
func Histogram(values []float64, bins int, title, path string) error {
	p := plot.New()
	p.Title.Text = title

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}

// PairGrid renders the pairwise marginals of an N x d parameter batch as a
// d x d panel: histograms on the diagonal, scatters off it. The whole grid
// is drawn onto one PNG at path.
func PairGrid(theta mat.Matrix, names []string, path string) error {
	n, d := theta.Dims()
	if len(names) != d {
		return fmt.Errorf("plotting: %v names for %v parameter dimensions", len(names), d)
	}

	plots := make([][]*plot.Plot, d)
	for i := 0; i < d; i++ {
		plots[i] = make([]*plot.Plot, d)
		for j := 0; j < d; j++ {
			p := plot.New()
			if i == d-1 {
				p.X.Label.Text = names[j]
			}
			if j == 0 {
				p.Y.Label.Text = names[i]
			}
			if i == j {
				h, err := plotter.NewHist(columnValues(theta, i, n), 25)
				if err != nil {
					return err
				}
				p.Add(h)
			} else {
				pts := make(plotter.XYs, n)
				for k := range pts {
					pts[k].X = theta.At(k, j)
					pts[k].Y = theta.At(k, i)
				}
				s, err := plotter.NewScatter(pts)
				if err != nil {
					return err
				}
				s.Radius = vg.Points(1)
				p.Add(s)
			}
			plots[i][j] = p
		}
	}

	img := vgimg.New(9*vg.Inch, 9*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: d,
		Cols: d,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func columnValues(m mat.Matrix, j, n int) plotter.Values {
	vals := make(plotter.Values, n)
	for i := range vals {
		vals[i] = m.At(i, j)
	}
	return vals
}
