// Package render draws the figures of the bandit and gridworld
// experiments
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/samuelfneumann/rlbasics/experiment"
)

const (
	// CurvesTitle is the title of reward curve figures
	CurvesTitle = "10-Armed Bandit: Average Reward over Time"

	curvesXLabel = "Steps"
	curvesYLabel = "Average Reward"
)

// Figure size of reward curve PNGs
var (
	CurvesWidth  = 10 * vg.Inch
	CurvesHeight = 6 * vg.Inch
)

// decayDashes is the dash pattern of curves whose exploration decays
var decayDashes = []vg.Length{vg.Points(6), vg.Points(3)}

// RewardCurves saves a line plot of the average reward on each step of
// every result to path. The image format is taken from the extension
// of path. Results whose exploration decays are drawn dashed.
func RewardCurves(path string, results []experiment.Result) error {
	p, err := rewardPlot(results)
	if err != nil {
		return fmt.Errorf("rewardCurves: %w", err)
	}

	if err := p.Save(CurvesWidth, CurvesHeight, path); err != nil {
		return fmt.Errorf("rewardCurves: could not save plot: %w", err)
	}
	return nil
}

func rewardPlot(results []experiment.Result) (*plot.Plot, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to plot")
	}

	p := plot.New()
	p.Title.Text = CurvesTitle
	p.X.Label.Text = curvesXLabel
	p.Y.Label.Text = curvesYLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, result := range results {
		pts := make(plotter.XYs, len(result.Rewards))
		for t := range result.Rewards {
			pts[t].X = float64(t + 1)
			pts[t].Y = result.Rewards[t]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("could not create line plotter for %v: %w",
				result.Label, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		line.LineStyle.Width = vg.Points(1.5)
		if result.Decay {
			line.LineStyle.Dashes = decayDashes
		}

		p.Add(line)
		p.Legend.Add(result.Label, line)
	}
	return p, nil
}

// RewardCurvesHTML writes an interactive line chart of the average
// reward on each step of every result to w
func RewardCurvesHTML(w io.Writer, results []experiment.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("rewardCurvesHTML: no results to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeInfographic,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    CurvesTitle,
			Subtitle: "ε-greedy exploration",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: curvesXLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: curvesYLabel}),
	)

	steps := 0
	for _, result := range results {
		if len(result.Rewards) > steps {
			steps = len(result.Rewards)
		}
	}
	xAxis := make([]int, steps)
	for i := range xAxis {
		xAxis[i] = i + 1
	}
	line.SetXAxis(xAxis)

	for _, result := range results {
		items := make([]opts.LineData, 0, len(result.Rewards))
		for _, r := range result.Rewards {
			items = append(items, opts.LineData{Value: r})
		}

		var series []charts.SeriesOpts
		if result.Decay {
			series = append(series,
				charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
		}
		line.AddSeries(result.Label, items, series...)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rewardCurvesHTML: %w", err)
	}
	return nil
}
