package main

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Noofbiz/latent/evaluate"
	"github.com/Noofbiz/latent/latent"
)

// palette cycles through a few distinguishable colours for class labels.
var palette = []color.RGBA{
	{R: 20, G: 80, B: 200, A: 220},
	{R: 200, G: 30, B: 30, A: 220},
	{R: 40, G: 140, B: 40, A: 220},
	{R: 230, G: 140, B: 20, A: 220},
	{R: 130, G: 60, B: 170, A: 220},
	{R: 120, G: 120, B: 120, A: 220},
}

// plotBatch writes a scatter of the first two continuous coordinates of b,
// one colour per label (a single grey series when b has no labels).
func plotBatch(outPath, title string, b *latent.Batch) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "z0"
	p.Y.Label.Text = "z1"

	rows, cols := b.Continuous.Dims()
	series := map[int]plotter.XYs{}
	var all plotter.XYs
	for i := 0; i < rows; i++ {
		pt := plotter.XY{X: b.Continuous.At(i, 0)}
		if cols > 1 {
			pt.Y = b.Continuous.At(i, 1)
		}
		label := -1
		if b.Labels != nil {
			label = b.Labels[i]
		}
		series[label] = append(series[label], pt)
		all = append(all, pt)
	}

	for label := -1; len(series) > 0; label++ {
		xys, ok := series[label]
		if !ok {
			continue
		}
		delete(series, label)
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return err
		}
		if label < 0 {
			sc.GlyphStyle.Color = color.RGBA{R: 120, G: 120, B: 120, A: 180}
		} else {
			sc.GlyphStyle.Color = palette[label%len(palette)]
		}
		sc.GlyphStyle.Radius = vg.Points(1.8)
		p.Add(sc)
	}

	p.Add(plotter.NewGrid())
	xmin, xmax, ymin, ymax := autoRange(all)
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	return save(p, outPath)
}

// plotGap writes the gap statistic against k.
func plotGap(outPath string, res *evaluate.GapResult) error {
	p := plot.New()
	p.Title.Text = "Gap statistic"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "gap"

	xys := make(plotter.XYs, len(res.K))
	for i, k := range res.K {
		xys[i] = plotter.XY{X: float64(k), Y: res.Gap[i]}
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	line.Width = vg.Points(1.2)
	points.Color = line.Color
	p.Add(line, points, plotter.NewGrid())
	return save(p, outPath)
}

func save(p *plot.Plot, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, outPath)
}

// autoRange computes padded min/max for X and Y for a set of points.
func autoRange(xs plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	if len(xs) == 0 {
		return -1, 1, -1, 1
	}
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for _, p := range xs {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	padx := (xmax - xmin) * 0.06
	pady := (ymax - ymin) * 0.06
	if padx == 0 {
		padx = 1.0
	}
	if pady == 0 {
		pady = 1.0
	}
	return xmin - padx, xmax + padx, ymin - pady, ymax + pady
}
