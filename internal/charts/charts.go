// Package charts renders decomposition and forecast results as
// self-contained HTML pages using go-echarts.
package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tradescope/schema"
)

const monthFormat = "2006-01"

// monthAxis builds the x-axis labels for a series.
func monthAxis(s *schema.Series) []string {
	labels := make([]string, s.Len())
	for i, p := range s.Points {
		labels[i] = p.Time.Format(monthFormat)
	}
	return labels
}

// lineData converts a float slice to echarts line points.
func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

// componentChart builds one line chart for a single decomposition component.
func componentChart(title string, axis []string, values []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.SetXAxis(axis).
		AddSeries(title, lineData(values),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		)
	return line
}

// RenderDecomposition writes a four-panel page with the observed series and
// its trend, seasonal, and residual components.
func RenderDecomposition(d *schema.Decomposition, w io.Writer) error {
	axis := monthAxis(d.Series)

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Decomposition (%s, period %d)", d.Model, d.Series.Period)
	page.AddCharts(
		componentChart("Observed", axis, d.Series.Values()),
		componentChart("Trend", axis, d.Trend),
		componentChart("Seasonal", axis, d.Seasonal),
		componentChart("Residual", axis, d.Residual),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render decomposition page: %w", err)
	}
	return nil
}

// RenderForecast writes a single chart overlaying the observed series with
// the projected values and their confidence bounds.
func RenderForecast(series *schema.Series, f *schema.Forecast, w io.Writer) error {
	// Observed and forecast points share one axis, with the forecast region
	// padded by nulls on the observed side and vice versa.
	n := series.Len()
	h := len(f.Points)
	axis := make([]string, 0, n+h)
	for _, p := range series.Points {
		axis = append(axis, p.Time.Format(monthFormat))
	}
	for _, p := range f.Points {
		axis = append(axis, p.Time.Format(monthFormat))
	}

	observed := make([]opts.LineData, n+h)
	forecast := make([]opts.LineData, n+h)
	lower := make([]opts.LineData, n+h)
	upper := make([]opts.LineData, n+h)
	for i := range n + h {
		observed[i] = opts.LineData{Value: nil}
		forecast[i] = opts.LineData{Value: nil}
		lower[i] = opts.LineData{Value: nil}
		upper[i] = opts.LineData{Value: nil}
	}
	for i, p := range series.Points {
		observed[i] = opts.LineData{Value: p.Value}
	}
	for i, p := range f.Points {
		forecast[n+i] = opts.LineData{Value: p.Value}
		lower[n+i] = opts.LineData{Value: p.Lower}
		upper[n+i] = opts.LineData{Value: p.Upper}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Forecast",
			Width:     "100%",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Forecast",
			Subtitle: fmt.Sprintf("%s model, %.0f%% confidence, %d month(s) ahead", f.Model, f.Confidence*100, h),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(axis).
		AddSeries("observed", observed).
		AddSeries("forecast", forecast,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}),
		).
		AddSeries("lower", lower,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
		).
		AddSeries("upper", upper,
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render forecast chart: %w", err)
	}
	return nil
}

// WriteDecompositionChart renders the decomposition page into an HTML file.
func WriteDecompositionChart(d *schema.Decomposition, outputPath string) error {
	return writeChartFile(outputPath, func(w io.Writer) error {
		return RenderDecomposition(d, w)
	})
}

// WriteForecastChart renders the forecast overlay into an HTML file.
func WriteForecastChart(series *schema.Series, f *schema.Forecast, outputPath string) error {
	return writeChartFile(outputPath, func(w io.Writer) error {
		return RenderForecast(series, f, w)
	})
}

func writeChartFile(outputPath string, render func(io.Writer) error) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return render(file)
}
