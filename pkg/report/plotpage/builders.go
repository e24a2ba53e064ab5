package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// defaultSymbolSize is the scatter marker size when a series does not set one.
const defaultSymbolSize = 12

// SeriesData represents a single numeric value in a chart series.
// We use any to allow both int and float64 (to map to opts.BarData).
type SeriesData any

// BarSeries defines the properties and data for a single bar chart series.
type BarSeries struct {
	Name  string
	Data  []SeriesData
	Color string // Optional, uses theme if empty.

	// ItemColors optionally colors each bar; it overrides Color where set.
	ItemColors []string
}

// ScatterPoint is one (x, y) point with an optional label.
type ScatterPoint struct {
	X    float64
	Y    float64
	Name string
}

// ScatterSeries defines the properties and data for a single scatter series.
type ScatterSeries struct {
	Name       string
	Points     []ScatterPoint
	Color      string // Optional, uses theme if empty.
	SymbolSize int    // Optional, defaults to defaultSymbolSize.
}

// BuildBarChart constructs a fully configured go-echarts Bar chart using ChartOpts.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildBarChart(cOpts *ChartOpts, title string, labels []string, series []BarSeries, yAxisLabel string) *charts.Bar {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithXAxisOpts(cOpts.XAxis("")),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithGridOpts(cOpts.Grid()),
	)

	bar.SetXAxis(labels)

	for _, s := range series {
		barData := make([]opts.BarData, len(s.Data))
		for i, v := range s.Data {
			barData[i] = opts.BarData{Value: v}

			if i < len(s.ItemColors) && s.ItemColors[i] != "" {
				barData[i].ItemStyle = &opts.ItemStyle{Color: s.ItemColors[i]}
			}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		bar.AddSeries(s.Name, barData, seriesOpts...)
	}

	return bar
}

// BuildScatterChart constructs a go-echarts Scatter chart with numeric axes.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildScatterChart(cOpts *ChartOpts, title string, series []ScatterSeries, xAxisLabel, yAxisLabel string) *charts.Scatter {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init(chartWidth, chartHeight)),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("item")),
		charts.WithXAxisOpts(cOpts.ValueXAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
		charts.WithGridOpts(cOpts.Grid()),
	)

	for _, s := range series {
		size := s.SymbolSize
		if size <= 0 {
			size = defaultSymbolSize
		}

		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{
				Name:       p.Name,
				Value:      []any{p.X, p.Y},
				SymbolSize: size,
			}
		}

		var seriesOpts []charts.SeriesOpts
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}

		scatter.AddSeries(s.Name, data, seriesOpts...)
	}

	return scatter
}
