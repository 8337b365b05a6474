// Package report renders diagnostic charts for threshold tuning.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"creditrisk/pkg/stats"
)

// PlotOptions controls the F-score chart.
type PlotOptions struct {
	Title  string
	YLabel string
	// YMax fixes the top of the y axis; zero or less autoscales.
	YMax   float64
	Width  vg.Length
	Height vg.Length
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		YLabel: "F3-score",
		YMax:   0.55,
		Width:  10 * vg.Inch,
		Height: 7 * vg.Inch,
	}
}

// Annotation is the label placed at the best threshold.
func Annotation(threshold, score float64, yLabel string) string {
	return fmt.Sprintf("threshold=%.3f, %s=%.3f", threshold, yLabel, score)
}

// The annotation sits at this fraction of the x range and of the y axis top.
const (
	anchorX   = 0.94
	anchorY   = 0.96
	leaderGap = 0.06
)

func annotationAnchor(thresholds []float64, top float64) plotter.XY {
	lo, hi := stats.MinMax(thresholds)
	return plotter.XY{X: lo + anchorX*(hi-lo), Y: anchorY * top}
}

// NewFScorePlot builds the score-vs-threshold chart with the maximum annotated.
func NewFScorePlot(thresholds, scores []float64, opts PlotOptions) (*plot.Plot, error) {
	if len(thresholds) == 0 {
		return nil, errors.New("report: no thresholds to plot")
	}
	if len(thresholds) != len(scores) {
		return nil, fmt.Errorf("report: %d thresholds, %d scores", len(thresholds), len(scores))
	}
	best := stats.Argmax(scores)
	if best < 0 {
		return nil, errors.New("report: scores are all NaN")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Threshold"
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(thresholds))
	for i := range thresholds {
		pts[i].X = thresholds[i]
		pts[i].Y = scores[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	line.Color = color.RGBA{B: 200, A: 255}
	p.Add(line)

	maxPt := plotter.XYs{{X: thresholds[best], Y: scores[best]}}
	marker, err := plotter.NewScatter(maxPt)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	marker.GlyphStyle.Shape = draw.CircleGlyph{}
	marker.GlyphStyle.Radius = vg.Points(4)
	marker.GlyphStyle.Color = color.Black
	p.Add(marker)

	top := scores[best]
	if opts.YMax > 0 {
		top = opts.YMax
	}
	anchor := annotationAnchor(thresholds, top)
	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{anchor},
		Labels: []string{Annotation(thresholds[best], scores[best], opts.YLabel)},
	})
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	label.TextStyle[0].XAlign = draw.XRight
	label.TextStyle[0].YAlign = draw.YTop
	p.Add(label)

	// Leader from just under the label down to the best point.
	leader, err := plotter.NewLine(plotter.XYs{
		{X: anchor.X, Y: anchor.Y - leaderGap*top},
		maxPt[0],
	})
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	leader.Color = color.Black
	leader.Width = vg.Points(0.75)
	p.Add(leader)

	if opts.YMax > 0 {
		p.Y.Min = 0
		p.Y.Max = opts.YMax
	}
	return p, nil
}

// PlotFScore writes the chart to path; the extension picks the image format.
func PlotFScore(thresholds, scores []float64, path string, opts PlotOptions) error {
	p, err := NewFScorePlot(thresholds, scores, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}

// WriteFScore renders the chart in the given format ("png", "svg", "pdf", ...) to w.
func WriteFScore(w io.Writer, format string, thresholds, scores []float64, opts PlotOptions) error {
	p, err := NewFScorePlot(thresholds, scores, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, strings.ToLower(strings.TrimPrefix(format, ".")))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FormatOf returns the image format implied by a file name.
func FormatOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
