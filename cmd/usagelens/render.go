package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/usagelens/usagelens/engine"
)

// ============================================================================
// HTML PREVIEWS — go-echarts rendering of transform output
// ============================================================================
// Previews exist so transform output can be eyeballed without the dashboard.
// The engine knows nothing about any of this.
// ============================================================================

// renderPivotHTML draws a dense pivot as a stacked bar chart.
func renderPivotHTML(p *engine.Pivot, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s by %s", settings.Product, p.GroupBy)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		labels[i] = row.Group
	}
	bar.SetXAxis(labels)

	for _, split := range p.Splits {
		data := make([]opts.BarData, len(p.Rows))
		for i, row := range p.Rows {
			data[i] = opts.BarData{Value: row.Values[split]}
		}
		bar.AddSeries(split, data, charts.WithBarChartOpts(opts.BarChart{Stack: "total"}))
	}

	return renderToFile(bar, path)
}

// renderScatterHTML draws plotted points, sized by bubble metric.
func renderScatterHTML(result *engine.ScatterResult, xMetric, yMetric, path string) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s vs %s", yMetric, xMetric),
			Subtitle: fmt.Sprintf("%d points, %d dropped by scale", len(result.Points), result.DroppedByScale),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	byQuadrant := make(map[engine.Quadrant][]opts.ScatterData)
	for _, p := range result.Points {
		byQuadrant[p.Quadrant] = append(byQuadrant[p.Quadrant], opts.ScatterData{
			Name:       p.Group,
			Value:      []any{p.X, p.Y},
			SymbolSize: int(p.BubbleSize),
		})
	}
	for _, q := range []engine.Quadrant{engine.Q1, engine.Q2, engine.Q3, engine.Q4} {
		if data, ok := byQuadrant[q]; ok {
			scatter.AddSeries(string(q), data)
		}
	}

	return renderToFile(scatter, path)
}

// renderRadarHTML draws normalized [0,100] axes per entity.
func renderRadarHTML(chart *engine.RadarChart, path string) error {
	radar := charts.NewRadar()

	indicators := make([]*opts.Indicator, len(chart.Axes))
	for i, axis := range chart.Axes {
		indicators[i] = &opts.Indicator{Name: axis, Max: 100}
	}

	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Model comparison"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	for i, entity := range chart.Entities {
		values := make([]float64, len(chart.Scores[i]))
		copy(values, chart.Scores[i])
		radar.AddSeries(entity, []opts.RadarData{{Name: entity, Value: values}})
	}

	return renderToFile(radar, path)
}

type renderable interface {
	Render(w io.Writer) error
}

func renderToFile(chart renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	return nil
}
