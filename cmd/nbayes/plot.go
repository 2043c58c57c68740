package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ezoic/nbayes/pkg/errors"
)

// savePlot draws held-out accuracy against alpha for both models. The
// image format follows the file extension (.png, .svg, .pdf).
func savePlot(sweep []SweepResult, path string) error {
	if len(sweep) == 0 {
		return errors.NewModelError("savePlot", "empty sweep", errors.ErrEmptyData)
	}

	multinomial := make(plotter.XYs, len(sweep))
	bernoulli := make(plotter.XYs, len(sweep))
	for i, r := range sweep {
		multinomial[i].X, multinomial[i].Y = r.Alpha, r.Multinomial
		bernoulli[i].X, bernoulli[i].Y = r.Alpha, r.Bernoulli
	}

	p := plot.New()
	p.Title.Text = "Held-out accuracy vs smoothing"
	p.X.Label.Text = "alpha"
	p.Y.Label.Text = "accuracy"
	p.Y.Min, p.Y.Max = 0, 1

	mLine, mPoints, err := plotter.NewLinePoints(multinomial)
	if err != nil {
		return errors.Wrap(err, "multinomial series")
	}
	mLine.Color = color.RGBA{B: 200, A: 255}
	mPoints.Color = mLine.Color

	bLine, bPoints, err := plotter.NewLinePoints(bernoulli)
	if err != nil {
		return errors.Wrap(err, "bernoulli series")
	}
	bLine.Color = color.RGBA{R: 200, A: 255}
	bPoints.Color = bLine.Color

	p.Add(plotter.NewGrid(), mLine, mPoints, bLine, bPoints)
	p.Legend.Add("MultinomialNB", mLine, mPoints)
	p.Legend.Add("BernoulliNB", bLine, bPoints)
	p.Legend.Top = false

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot %s", path)
	}
	return nil
}
