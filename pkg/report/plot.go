package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
	"github.com/Sumatoshi-tech/lyagushka/pkg/report/plotpage"
)

const (
	plotTitle = "Density segmentation"

	// missingValue is rendered by echarts as an empty bar.
	missingValue = "-"

	scatterSymbolSize = 14
)

// PlotRenderer writes an HTML page with a z-score bar chart and a
// centroid versus span scatter chart.
type PlotRenderer struct {
	Theme plotpage.Theme
}

// Render writes the page.
func (p PlotRenderer) Render(w io.Writer, result *density.Result) error {
	theme := p.Theme
	if theme == "" {
		theme = plotpage.ThemeDark
	}

	page := plotpage.NewPage(plotTitle).WithTheme(theme)
	page.Add(
		buildZScoreChart(result.Segments, theme),
		buildCentroidChart(result.Segments, theme),
	)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("write plot: %w", err)
	}

	return nil
}

func buildZScoreChart(segments []density.Segment, theme plotpage.Theme) *charts.Bar {
	palette := plotpage.GetChartPalette(theme)

	labels := make([]string, len(segments))
	data := make([]plotpage.SeriesData, len(segments))
	colors := make([]string, len(segments))

	for i, seg := range segments {
		labels[i] = fmt.Sprintf("#%d %s", i+1, seg.Kind())

		z, ok := seg.ZScore()
		if !ok {
			data[i] = missingValue
			colors[i] = palette.Neutral

			continue
		}

		data[i] = z
		colors[i] = severityColor(palette, z)
	}

	return plotpage.BuildBarChart(
		plotpage.NewChartOpts(theme),
		"Z-score per segment",
		labels,
		[]plotpage.BarSeries{{Name: "z-score", Data: data, ItemColors: colors}},
		"z",
	)
}

func buildCentroidChart(segments []density.Segment, theme plotpage.Theme) *charts.Scatter {
	palette := plotpage.GetChartPalette(theme)

	var clusters, gaps []plotpage.ScatterPoint

	for _, seg := range segments {
		point := plotpage.ScatterPoint{
			X:    seg.Centroid(),
			Y:    seg.SpanLength(),
			Name: fmt.Sprintf("%d..%d", seg.Start(), seg.End()),
		}

		if seg.Kind() == density.KindGap {
			gaps = append(gaps, point)
		} else {
			clusters = append(clusters, point)
		}
	}

	return plotpage.BuildScatterChart(
		plotpage.NewChartOpts(theme),
		"Centroid vs span",
		[]plotpage.ScatterSeries{
			{Name: "clusters", Points: clusters, Color: palette.Cluster, SymbolSize: scatterSymbolSize},
			{Name: "gaps", Points: gaps, Color: palette.Gap, SymbolSize: scatterSymbolSize},
		},
		"centroid",
		"span",
	)
}

func severityColor(palette plotpage.ChartPalette, z float64) string {
	switch magnitude := math.Abs(z); {
	case magnitude >= zScoreHigh:
		return palette.High
	case magnitude >= zScoreMedium:
		return palette.Medium
	default:
		return palette.Low
	}
}
